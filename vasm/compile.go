package vasm

import (
	"fmt"
	"math"
	"sort"

	"github.com/pflow-xyz/go-vasm/petrinet"
)

// Compile translates a net into an immutable StateMachine.
// Unset arc attributes are inferred before compilation. All structural
// problems are reported here; Transform performs no further validation.
func Compile(net *petrinet.PetriNet) (*StateMachine, error) {
	net.PopulateArcAttributes()

	modelType, err := parseModelType(net.ModelType)
	if err != nil {
		return nil, err
	}

	size := len(net.Places)
	if size > math.MaxInt32 || len(net.Transitions) > math.MaxInt32 {
		return nil, ErrOffsetOverflow
	}
	for label, p := range net.Places {
		if p.Offset < 0 || p.Offset >= size {
			return nil, fmt.Errorf("%w: place %q offset %d", ErrOffsetOverflow, label, p.Offset)
		}
		if p.Initial < 0 {
			return nil, fmt.Errorf("%w: place %q initial %d", ErrInvalidInitialMarking, label, p.Initial)
		}
	}

	roles := make(map[string]struct{})
	transitions := make(map[string]*Transition, len(net.Transitions))
	for label, t := range net.Transitions {
		role := t.Role
		if role == "" {
			role = "default"
		}
		roles[role] = struct{}{}
		transitions[label] = &Transition{
			Label:        label,
			Role:         role,
			Offset:       t.Offset,
			Delta:        make(Vector, size),
			Guards:       make(map[string]Guard),
			AllowReentry: t.AllowReentry,
		}
	}

	for _, arc := range net.Arcs {
		if err := compileArc(net, transitions, arc, size); err != nil {
			return nil, err
		}
	}

	initial := make(Vector, size)
	capacity := make(Vector, size)
	places := make([]string, size)
	for label, p := range net.Places {
		switch modelType {
		case PetriNetModel:
			initial[p.Offset] = int32(p.Initial)
			capacity[p.Offset] = int32(p.Capacity)
		default:
			// Elementary and workflow places are boolean.
			if p.Initial > 0 {
				initial[p.Offset] = 1
			}
			capacity[p.Offset] = 1
		}
		places[p.Offset] = label
	}

	actions := make([]string, 0, len(transitions))
	for label := range transitions {
		actions = append(actions, label)
	}
	sort.Slice(actions, func(i, j int) bool {
		return transitions[actions[i]].Offset < transitions[actions[j]].Offset
	})

	return &StateMachine{
		Type:        modelType,
		Initial:     initial,
		Capacity:    capacity,
		Places:      places,
		Transitions: transitions,
		Roles:       roles,
		Actions:     actions,
	}, nil
}

// compileArc classifies one arc as flow or guard and applies it to the
// owning transition.
func compileArc(net *petrinet.PetriNet, transitions map[string]*Transition, arc *petrinet.Arc, size int) error {
	weight := arc.Weight
	if weight == 0 {
		weight = 1
	}
	if arc.IsInhibitor() {
		read := arc.Read != nil && *arc.Read
		produce := arc.Produce != nil && *arc.Produce

		// Read and produce-shaped guards are owned by the source
		// transition; classical inhibitors by the target.
		owner, monitored := arc.Target, arc.Source
		if read || produce {
			owner, monitored = arc.Source, arc.Target
		}

		t, ok := transitions[owner]
		if !ok {
			return fmt.Errorf("%w: guard transition %q", ErrDanglingArc, owner)
		}
		p, ok := net.Places[monitored]
		if !ok {
			return fmt.Errorf("%w: guard place %q", ErrDanglingArc, monitored)
		}

		delta := make(Vector, size)
		delta[p.Offset] = -int32(weight)
		t.Guards[monitored] = Guard{Delta: delta, Read: read}
		return nil
	}

	consume := arc.Consume != nil && *arc.Consume
	produce := arc.Produce != nil && *arc.Produce
	if consume == produce {
		return fmt.Errorf("%w: %s -> %s must be either consume or produce", ErrInvalidArc, arc.Source, arc.Target)
	}
	if consume {
		p, ok := net.Places[arc.Source]
		if !ok {
			return fmt.Errorf("%w: place %q", ErrDanglingArc, arc.Source)
		}
		t, ok := transitions[arc.Target]
		if !ok {
			return fmt.Errorf("%w: transition %q", ErrDanglingArc, arc.Target)
		}
		t.Delta[p.Offset] -= int32(weight)
		return nil
	}
	t, ok := transitions[arc.Source]
	if !ok {
		return fmt.Errorf("%w: transition %q", ErrDanglingArc, arc.Source)
	}
	p, ok := net.Places[arc.Target]
	if !ok {
		return fmt.Errorf("%w: place %q", ErrDanglingArc, arc.Target)
	}
	t.Delta[p.Offset] += int32(weight)
	return nil
}

func parseModelType(s string) (ModelType, error) {
	switch s {
	case petrinet.ModelPetriNet:
		return PetriNetModel, nil
	case petrinet.ModelElementary:
		return ElementaryModel, nil
	case petrinet.ModelWorkflow:
		return WorkflowModel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidModelType, s)
	}
}
