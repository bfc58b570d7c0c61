// Package vasm compiles a petrinet.PetriNet into a dense vector addition
// state machine and evaluates single-step transitions against it.
//
// A compiled StateMachine holds one slot per place, indexed by place
// offset. Each transition carries a delta vector added to the marking
// when it fires, plus a set of guards that can inhibit firing. Three
// model semantics are supported: general Petri net, elementary (single
// active place), and workflow (single active place with reentry).
package vasm

import "sort"

// Vector represents a marking or a delta: one signed 32-bit integer per
// place, indexed by place offset.
type Vector []int32

// Clone returns a fresh copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// ModelType is the closed set of automaton semantics a machine can use.
type ModelType int

const (
	// PetriNetModel is the general multi-token semantics.
	PetriNetModel ModelType = iota
	// ElementaryModel requires exactly one active place after firing.
	ElementaryModel
	// WorkflowModel clamps markings to boolean places and permits
	// explicit reentry.
	WorkflowModel
)

// String returns the declared model type string.
func (t ModelType) String() string {
	switch t {
	case ElementaryModel:
		return "elementary"
	case WorkflowModel:
		return "workflow"
	default:
		return "petriNet"
	}
}

// Guard is a threshold condition owned by a transition.
// Delta is non-zero at exactly one offset, carrying -weight for the
// monitored place. Read guards require the threshold; inhibitor guards
// block while the threshold holds.
type Guard struct {
	Delta Vector
	Read  bool
}

// Transition is the compiled form of a net transition.
type Transition struct {
	Label        string
	Role         string
	Offset       int
	Delta        Vector
	Guards       map[string]Guard // keyed by monitored place label
	AllowReentry bool
}

// StateMachine is the immutable compiled artifact produced by Compile.
// It owns no mutable marking state and is safe for concurrent readers.
type StateMachine struct {
	Type     ModelType
	Initial  Vector
	Capacity Vector
	// Places lists place labels ordered by offset.
	Places      []string
	Transitions map[string]*Transition
	Roles       map[string]struct{}
	// Actions lists transition labels ordered by transition offset.
	Actions []string
}

// EmptyVector returns an all-zero marking of the machine's size.
func (m *StateMachine) EmptyVector() Vector {
	return make(Vector, len(m.Places))
}

// InitialVector returns a copy of the initial marking.
func (m *StateMachine) InitialVector() Vector {
	return m.Initial.Clone()
}

// RoleList returns the role set as a sorted slice.
func (m *StateMachine) RoleList() []string {
	roles := make([]string, 0, len(m.Roles))
	for r := range m.Roles {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

// Transaction is the result of one firing attempt. A failed firing is
// not an error: Ok is false and the reason flags identify the cause.
type Transaction struct {
	Output    Vector `json:"output"`
	Ok        bool   `json:"ok"`
	Role      string `json:"role"`
	Inhibited bool   `json:"inhibited"`
	Overflow  bool   `json:"overflow"`
	Underflow bool   `json:"underflow"`
}

// IsOk reports whether the firing succeeded.
func (t Transaction) IsOk() bool {
	return t.Ok
}
