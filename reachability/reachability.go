// Package reachability explores the state space of a compiled machine
// by firing actions against markings with the firing engine.
package reachability

import (
	"strconv"
	"strings"

	"github.com/pflow-xyz/go-vasm/vasm"
)

// Analyzer performs reachability analysis on a compiled machine.
type Analyzer struct {
	m         *vasm.StateMachine
	initial   vasm.Vector
	maxStates int
}

// NewAnalyzer creates an analyzer starting from the machine's initial marking.
func NewAnalyzer(m *vasm.StateMachine) *Analyzer {
	return &Analyzer{
		m:         m,
		initial:   m.InitialVector(),
		maxStates: 10000,
	}
}

// WithInitialState sets a custom starting marking.
func (a *Analyzer) WithInitialState(state vasm.Vector) *Analyzer {
	a.initial = state.Clone()
	return a
}

// WithMaxStates sets the maximum number of states to explore.
func (a *Analyzer) WithMaxStates(n int) *Analyzer {
	a.maxStates = n
	return a
}

// Result contains the results of reachability analysis.
type Result struct {
	StateCount  int
	EdgeCount   int
	HasDeadlock bool
	Deadlocks   []vasm.Vector
	Live        bool     // every action fired from some reachable state
	DeadActions []string // actions that never fired in the explored space
	Truncated   bool     // state limit reached before exhausting the space
}

// Enabled returns the actions that fire successfully from the state,
// in action order.
func (a *Analyzer) Enabled(state vasm.Vector) []string {
	var out []string
	for _, action := range a.m.Actions {
		txn, err := a.m.Transform(state, action, 1)
		if err == nil && txn.IsOk() {
			out = append(out, action)
		}
	}
	return out
}

// Explore builds the reachable state space with BFS and reports
// deadlocks and dead actions.
func (a *Analyzer) Explore() *Result {
	result := &Result{}
	fired := make(map[string]bool)

	visited := map[string]bool{key(a.initial): true}
	queue := []vasm.Vector{a.initial}
	result.StateCount = 1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		enabled := a.Enabled(current)
		if len(enabled) == 0 && total(current) > 0 {
			result.HasDeadlock = true
			result.Deadlocks = append(result.Deadlocks, current)
			continue
		}

		for _, action := range enabled {
			txn, err := a.m.Transform(current, action, 1)
			if err != nil {
				continue
			}
			fired[action] = true
			result.EdgeCount++

			hash := key(txn.Output)
			if visited[hash] {
				continue
			}
			if result.StateCount >= a.maxStates {
				result.Truncated = true
				continue
			}
			visited[hash] = true
			result.StateCount++
			queue = append(queue, txn.Output)
		}
	}

	for _, action := range a.m.Actions {
		if !fired[action] {
			result.DeadActions = append(result.DeadActions, action)
		}
	}
	result.Live = !result.Truncated && len(result.DeadActions) == 0
	return result
}

// IsReachable checks whether the target marking is reachable from the
// initial marking.
func (a *Analyzer) IsReachable(target vasm.Vector) bool {
	return a.PathTo(target) != nil
}

// PathTo finds a shortest firing sequence reaching the target marking.
// Returns nil when the target is not reachable within the state limit.
// The initial marking itself yields an empty, non-nil sequence.
func (a *Analyzer) PathTo(target vasm.Vector) []string {
	type item struct {
		state vasm.Vector
		path  []string
	}

	targetHash := key(target)
	visited := map[string]bool{key(a.initial): true}
	queue := []item{{a.initial, []string{}}}

	for len(queue) > 0 && len(visited) < a.maxStates {
		current := queue[0]
		queue = queue[1:]

		if key(current.state) == targetHash {
			return current.path
		}

		for _, action := range a.Enabled(current.state) {
			txn, err := a.m.Transform(current.state, action, 1)
			if err != nil {
				continue
			}
			hash := key(txn.Output)
			if visited[hash] {
				continue
			}
			visited[hash] = true
			path := make([]string, len(current.path)+1)
			copy(path, current.path)
			path[len(current.path)] = action
			queue = append(queue, item{txn.Output, path})
		}
	}
	return nil
}

// key produces a canonical hash of a marking for visited-set lookups.
func key(v vasm.Vector) string {
	var b strings.Builder
	for i, n := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(n), 10))
	}
	return b.String()
}

func total(v vasm.Vector) int {
	sum := 0
	for _, n := range v {
		sum += int(n)
	}
	return sum
}
