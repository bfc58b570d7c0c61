package parser

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pflow-xyz/go-vasm/petrinet"
)

// netfile is the YAML representation of a net. Places and transitions
// are lists, not maps, so that offsets follow declaration order.
type netfile struct {
	ModelType   string            `yaml:"modelType"`
	Places      []placeEntry      `yaml:"places"`
	Transitions []transitionEntry `yaml:"transitions"`
	Arcs        []arcEntry        `yaml:"arcs"`
}

type placeEntry struct {
	Label    string `yaml:"label"`
	Initial  int    `yaml:"initial,omitempty"`
	Capacity int    `yaml:"capacity,omitempty"`
	X        int    `yaml:"x,omitempty"`
	Y        int    `yaml:"y,omitempty"`
}

type transitionEntry struct {
	Label        string `yaml:"label"`
	Role         string `yaml:"role,omitempty"`
	AllowReentry bool   `yaml:"allowReentry,omitempty"`
	X            int    `yaml:"x,omitempty"`
	Y            int    `yaml:"y,omitempty"`
}

type arcEntry struct {
	Source  string `yaml:"source"`
	Target  string `yaml:"target"`
	Weight  int    `yaml:"weight,omitempty"`
	Inhibit bool   `yaml:"inhibit,omitempty"`
}

// FromYAML parses a net from a YAML net file:
//
//	modelType: petriNet
//	places:
//	  - {label: p0, initial: 1, capacity: 3}
//	transitions:
//	  - {label: t0, role: default}
//	arcs:
//	  - {source: p0, target: t0, weight: 1}
func FromYAML(data []byte) (*petrinet.PetriNet, error) {
	var f netfile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid net file: %w", err)
	}

	net := petrinet.New()
	if f.ModelType != "" {
		net.ModelType = f.ModelType
	}
	for _, p := range f.Places {
		net.AddPlace(p.Label, p.Initial, p.Capacity, p.X, p.Y)
	}
	for _, t := range f.Transitions {
		role := t.Role
		if role == "" {
			role = "default"
		}
		added := net.AddTransition(t.Label, role, t.X, t.Y)
		added.AllowReentry = t.AllowReentry
	}
	for _, a := range f.Arcs {
		arc := &petrinet.Arc{Source: a.Source, Target: a.Target, Weight: a.Weight}
		if a.Inhibit {
			inhibit := true
			arc.Inhibit = &inhibit
		}
		net.AddArc(arc)
	}
	net.PopulateArcAttributes()
	return net, nil
}

// ToYAML serializes a net to a YAML net file with places and
// transitions ordered by offset.
func ToYAML(net *petrinet.PetriNet) ([]byte, error) {
	f := netfile{ModelType: net.ModelType}

	for label, p := range net.Places {
		f.Places = append(f.Places, placeEntry{
			Label:    label,
			Initial:  p.Initial,
			Capacity: p.Capacity,
			X:        p.X,
			Y:        p.Y,
		})
	}
	sort.Slice(f.Places, func(i, j int) bool {
		return net.Places[f.Places[i].Label].Offset < net.Places[f.Places[j].Label].Offset
	})

	for label, t := range net.Transitions {
		f.Transitions = append(f.Transitions, transitionEntry{
			Label:        label,
			Role:         t.Role,
			AllowReentry: t.AllowReentry,
			X:            t.X,
			Y:            t.Y,
		})
	}
	sort.Slice(f.Transitions, func(i, j int) bool {
		return net.Transitions[f.Transitions[i].Label].Offset < net.Transitions[f.Transitions[j].Label].Offset
	})

	for _, a := range net.Arcs {
		f.Arcs = append(f.Arcs, arcEntry{
			Source:  a.Source,
			Target:  a.Target,
			Weight:  a.Weight,
			Inhibit: a.IsInhibitor(),
		})
	}

	return yaml.Marshal(&f)
}
