package vasm

import "fmt"

// Transform fires action against state with the given multiple and
// returns the resulting Transaction. The state argument is never
// mutated; Output is freshly allocated on every call.
//
// A failed firing (insufficient tokens, capacity exceeded, guard
// blocking) is a normal Transaction with Ok false; only an unknown
// action name is an error.
func (m *StateMachine) Transform(state Vector, action string, multiple int32) (Transaction, error) {
	t, ok := m.Transitions[action]
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	output, addOk, overflow, underflow := vectorAdd(m.Capacity, state, t.Delta, multiple)
	inhibited := m.guardsInhibit(t, state, multiple)

	txn := Transaction{
		Output:    output,
		Role:      t.Role,
		Inhibited: inhibited,
		Overflow:  overflow,
		Underflow: underflow,
	}

	switch m.Type {
	case ElementaryModel:
		txn.Ok = addOk && !inhibited && activePlaces(output) == 1
	case WorkflowModel:
		// Boolean places: -1 marks an attempted reentry and vacates
		// the place; any other non-zero count becomes 1.
		for i, v := range output {
			switch v {
			case 0, -1:
				output[i] = 0
			default:
				output[i] = 1
			}
		}
		count := activePlaces(output)
		if t.AllowReentry && overflow && count == 1 && !inhibited {
			txn.Ok = true
			txn.Overflow = false
		} else {
			// Overflow and underflow are reported but do not gate
			// ok; only the active-place count and guards do.
			txn.Ok = count == 1 && !inhibited
		}
	default:
		txn.Ok = addOk && !inhibited
	}
	return txn, nil
}

// vectorAdd computes out[i] = state[i] + delta[i]*multiple with bounds
// checking. Capacity 0 at a slot means unbounded. The input state is
// never mutated.
func vectorAdd(capacity, state, delta Vector, multiple int32) (out Vector, ok, overflow, underflow bool) {
	out = make(Vector, len(state))
	ok = true
	for i := range state {
		out[i] = state[i] + delta[i]*multiple
		if out[i] < 0 {
			underflow = true
			ok = false
		}
		if capacity[i] > 0 && out[i] > capacity[i] {
			overflow = true
			ok = false
		}
	}
	return out, ok, overflow, underflow
}

// guardsInhibit reports whether any guard on t inhibits firing from
// state. A guard's threshold is met when subtracting its weight from
// the monitored place stays within bounds.
func (m *StateMachine) guardsInhibit(t *Transition, state Vector, multiple int32) bool {
	for _, g := range t.Guards {
		_, thresholdMet, _, _ := vectorAdd(m.Capacity, state, g.Delta, multiple)
		if g.Read {
			if !thresholdMet {
				return true
			}
		} else if thresholdMet {
			return true
		}
	}
	return false
}

// activePlaces counts the slots holding a positive token count.
func activePlaces(v Vector) int {
	count := 0
	for _, x := range v {
		if x > 0 {
			count++
		}
	}
	return count
}
