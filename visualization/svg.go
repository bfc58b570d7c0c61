// Package visualization renders petrinet models as SVG.
// Flow arcs use an arrowhead marker; inhibitor arcs use a circle
// marker, matching the pflow.dev diagram style.
package visualization

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pflow-xyz/go-vasm/petrinet"
)

const (
	minWidth    = 400
	minHeight   = 400
	margin      = 60
	placeRadius = 16
	transSide   = 30
)

const svgDefs = `<defs>` +
	`<marker id="markerArrow1" markerWidth="23" markerHeight="13" refX="31" refY="6" orient="auto">` +
	`<rect width="28" height="3" fill="white" stroke="white" x="3" y="5"/><path d="M2,2 L2,11 L10,6 L2,2"/>` +
	`</marker>` +
	`<marker id="markerInhibit1" markerWidth="23" markerHeight="13" refX="31" refY="6" orient="auto">` +
	`<rect width="28" height="3" fill="white" stroke="white" x="3" y="5"/><circle cx="5" cy="6.5" r="4"/>` +
	`</marker>` +
	`</defs>`

// GenerateSVG renders the net as an SVG document.
func GenerateSVG(net *petrinet.PetriNet) string {
	width, height := viewport(net)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, width, height)
	b.WriteString(svgDefs)

	// Arcs first so nodes draw over the line ends.
	for _, arc := range net.Arcs {
		x1, y1, ok1 := nodePosition(net, arc.Source)
		x2, y2, ok2 := nodePosition(net, arc.Target)
		if !ok1 || !ok2 {
			continue
		}
		marker := "markerArrow1"
		if arc.IsInhibitor() {
			marker = "markerInhibit1"
		}
		fmt.Fprintf(&b,
			`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333" marker-end="url(#%s)"/>`,
			x1, y1, x2, y2, marker)
		weight := arc.Weight
		if weight == 0 {
			weight = 1
		}
		if weight > 1 {
			fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="small">%d</text>`,
				(x1+x2)/2, (y1+y2)/2-6, weight)
		}
	}

	for _, label := range placesByOffset(net) {
		p := net.Places[label]
		fmt.Fprintf(&b,
			`<circle cx="%d" cy="%d" r="%d" fill="white" stroke="#333" stroke-width="1.5"/>`,
			p.X, p.Y, placeRadius)
		if p.Initial > 0 {
			fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="small">%d</text>`,
				p.X, p.Y+4, p.Initial)
		}
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="small">%s</text>`,
			p.X, p.Y-placeRadius-6, escape(label))
	}

	for _, label := range transitionsByOffset(net) {
		t := net.Transitions[label]
		fmt.Fprintf(&b,
			`<rect x="%d" y="%d" width="%d" height="%d" fill="white" stroke="#333" stroke-width="1.5"/>`,
			t.X-transSide/2, t.Y-transSide/2, transSide, transSide)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="small">%s</text>`,
			t.X, t.Y-transSide/2-6, escape(label))
	}

	b.WriteString("</svg>")
	return b.String()
}

// SaveSVG renders the net and writes it to a file.
func SaveSVG(net *petrinet.PetriNet, filename string) error {
	return os.WriteFile(filename, []byte(GenerateSVG(net)), 0644)
}

func viewport(net *petrinet.PetriNet) (int, int) {
	width, height := minWidth, minHeight
	for _, p := range net.Places {
		width = max(width, p.X+margin)
		height = max(height, p.Y+margin)
	}
	for _, t := range net.Transitions {
		width = max(width, t.X+margin)
		height = max(height, t.Y+margin)
	}
	return width, height
}

func nodePosition(net *petrinet.PetriNet, label string) (int, int, bool) {
	if p, ok := net.Places[label]; ok {
		return p.X, p.Y, true
	}
	if t, ok := net.Transitions[label]; ok {
		return t.X, t.Y, true
	}
	return 0, 0, false
}

func placesByOffset(net *petrinet.PetriNet) []string {
	labels := make([]string, 0, len(net.Places))
	for label := range net.Places {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return net.Places[labels[i]].Offset < net.Places[labels[j]].Offset
	})
	return labels
}

func transitionsByOffset(net *petrinet.PetriNet) []string {
	labels := make([]string, 0, len(net.Transitions))
	for label := range net.Transitions {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return net.Transitions[labels[i]].Offset < net.Transitions[labels[j]].Offset
	})
	return labels
}

// escape performs minimal escaping for SVG text content.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
