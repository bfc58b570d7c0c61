package petrinet

// Builder provides a fluent API for constructing nets.
// Cells are places, Funcs are transitions, Arrows are flow arcs, and
// Guards are inhibitor arcs.
//
// Example:
//
//	net := petrinet.Build().
//	    Cell("water", 1, 0).
//	    Func("boil", "default").
//	    Arrow("water", "boil", 1).
//	    Done()
type Builder struct {
	net   *PetriNet
	nextX int
	cellY int
	funcY int
}

// Build creates a Builder wrapping a fresh net.
func Build() *Builder {
	return &Builder{
		net:   New(),
		nextX: 100,
		cellY: 100,
		funcY: 200,
	}
}

// ModelType sets the declared model type of the net.
func (b *Builder) ModelType(modelType string) *Builder {
	b.net.ModelType = modelType
	return b
}

// Cell adds a place with the given initial token count and capacity.
// Capacity 0 means unbounded.
func (b *Builder) Cell(label string, initial, capacity int) *Builder {
	b.net.AddPlace(label, initial, capacity, b.nextX, b.cellY)
	b.nextX += 100
	return b
}

// CellAt adds a place at an explicit position.
func (b *Builder) CellAt(label string, initial, capacity, x, y int) *Builder {
	b.net.AddPlace(label, initial, capacity, x, y)
	return b
}

// Func adds a transition with the given role.
func (b *Builder) Func(label, role string) *Builder {
	b.net.AddTransition(label, role, b.nextX, b.funcY)
	b.nextX += 100
	return b
}

// FuncAt adds a transition at an explicit position.
func (b *Builder) FuncAt(label, role string, x, y int) *Builder {
	b.net.AddTransition(label, role, x, y)
	return b
}

// Reentry marks a previously added transition as allowing workflow reentry.
func (b *Builder) Reentry(label string) *Builder {
	if t, ok := b.net.Transitions[label]; ok {
		t.AllowReentry = true
	}
	return b
}

// Arrow adds a flow arc from source to target.
// Consume/produce direction is inferred from the endpoint kinds.
func (b *Builder) Arrow(source, target string, weight int) *Builder {
	b.net.AddArc(&Arc{Source: source, Target: target, Weight: weight})
	return b
}

// Guard adds an inhibitor arc from source to target.
// A place-to-transition guard blocks the transition while the place
// holds at least weight tokens; a transition-to-place guard is a read
// arc requiring at least weight tokens.
func (b *Builder) Guard(source, target string, weight int) *Builder {
	inhibit := true
	b.net.AddArc(&Arc{Source: source, Target: target, Weight: weight, Inhibit: &inhibit})
	return b
}

// Done infers arc attributes and returns the completed net.
// The builder must not be used after Done.
func (b *Builder) Done() *PetriNet {
	b.net.PopulateArcAttributes()
	net := b.net
	b.net = nil
	return net
}
