// Package petrinet implements the declarative bipartite graph that
// vector addition state machines are compiled from.
// A net consists of Places (token slots), Transitions (events), and Arcs
// (directed connections between a place and a transition).
package petrinet

// Model type strings accepted by the compiler.
const (
	ModelPetriNet   = "petriNet"
	ModelElementary = "elementary"
	ModelWorkflow   = "workflow"
)

// Place represents a token slot in the net.
// Offset is the dense index into all compiled vectors, assigned at
// insertion time. Capacity 0 means unbounded.
type Place struct {
	Offset   int `json:"offset"`
	Initial  int `json:"initial,omitempty"`
	Capacity int `json:"capacity,omitempty"`
	X        int `json:"x"`
	Y        int `json:"y"`
}

// Transition represents an event that can fire.
// Offset determines the position of the transition in the compiled
// action list; Role is a capability tag grouping transitions.
type Transition struct {
	Role         string `json:"role,omitempty"`
	Offset       int    `json:"offset"`
	AllowReentry bool   `json:"allowReentry,omitempty"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
}

// Arc represents a directed edge between a place and a transition.
// Consume, Produce, Inhibit, and Read are tri-state: nil means unset,
// to be filled in by PopulateArcAttributes before compilation.
type Arc struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Weight  int    `json:"weight,omitempty"`
	Consume *bool  `json:"consume,omitempty"`
	Produce *bool  `json:"produce,omitempty"`
	Inhibit *bool  `json:"inhibit,omitempty"`
	Read    *bool  `json:"read,omitempty"`
}

// IsInhibitor returns true if the arc is a guard rather than a flow edge.
func (a *Arc) IsInhibitor() bool {
	return a.Inhibit != nil && *a.Inhibit
}

// PetriNet stores the elements of a net during construction.
// The zero value is not usable; call New.
type PetriNet struct {
	ModelType   string                 `json:"modelType"`
	Version     string                 `json:"version"`
	Places      map[string]*Place      `json:"places"`
	Transitions map[string]*Transition `json:"transitions"`
	Arcs        []*Arc                 `json:"arcs"`
}

// New creates an empty petriNet-typed net.
func New() *PetriNet {
	return &PetriNet{
		ModelType:   ModelPetriNet,
		Version:     "v0",
		Places:      make(map[string]*Place),
		Transitions: make(map[string]*Transition),
		Arcs:        make([]*Arc, 0),
	}
}

// AddPlace adds a place with the next dense offset.
func (n *PetriNet) AddPlace(label string, initial, capacity, x, y int) *Place {
	p := &Place{
		Offset:   len(n.Places),
		Initial:  initial,
		Capacity: capacity,
		X:        x,
		Y:        y,
	}
	n.Places[label] = p
	return p
}

// AddTransition adds a transition with the next dense offset.
func (n *PetriNet) AddTransition(label, role string, x, y int) *Transition {
	t := &Transition{
		Role:   role,
		Offset: len(n.Transitions),
		X:      x,
		Y:      y,
	}
	n.Transitions[label] = t
	return t
}

// AddArc appends an arc. Attribute pointers may be nil; they are
// inferred later by PopulateArcAttributes.
func (n *PetriNet) AddArc(a *Arc) *Arc {
	n.Arcs = append(n.Arcs, a)
	return a
}

// PopulateArcAttributes fills in unset arc attributes:
//   - consume defaults to "source is a place"
//   - produce defaults to "source is a transition"
//   - read defaults to "source is a transition and inhibit is set"
func (n *PetriNet) PopulateArcAttributes() {
	for _, arc := range n.Arcs {
		if arc.Consume == nil {
			v := n.hasPlace(arc.Source)
			arc.Consume = &v
		}
		if arc.Produce == nil {
			v := n.hasTransition(arc.Source)
			arc.Produce = &v
		}
		if arc.Read == nil {
			v := n.hasTransition(arc.Source) && arc.IsInhibitor()
			arc.Read = &v
		}
	}
}

func (n *PetriNet) hasPlace(label string) bool {
	_, ok := n.Places[label]
	return ok
}

func (n *PetriNet) hasTransition(label string) bool {
	_, ok := n.Transitions[label]
	return ok
}
