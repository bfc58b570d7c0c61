package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/pflow-xyz/go-vasm/petrinet"
)

// ErrInvalidDiagram is returned when diagram contents cannot be parsed.
var ErrInvalidDiagram = errors.New("invalid diagram")

const diagramGrid = 80

// Parse parses either diagram syntax: contents with a ModelType::
// header use the typed arrow form, anything else is treated as a state
// diagram.
func Parse(contents string) (*petrinet.PetriNet, error) {
	if strings.Contains(contents, "ModelType::") {
		return FromDiagram(contents)
	}
	return FromStateDiagram(contents)
}

// FromDiagram parses the typed arrow syntax:
//
//	ModelType::PetriNet;
//	Water --> boil_water;
//	BoiledWater --> brew_coffee;
//
// Statements are separated by semicolons. Identifiers starting with an
// uppercase letter are places; the other endpoint is a transition.
func FromDiagram(contents string) (*petrinet.PetriNet, error) {
	contents = strings.ReplaceAll(contents, "\n", "")
	lines := splitStatements(contents)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty contents", ErrInvalidDiagram)
	}
	if !strings.HasPrefix(lines[0], "ModelType::") {
		return nil, fmt.Errorf("%w: first statement must declare ModelType::[type]", ErrInvalidDiagram)
	}

	net := petrinet.New()
	switch strings.ToLower(strings.TrimPrefix(lines[0], "ModelType::")) {
	case "petrinet":
		net.ModelType = petrinet.ModelPetriNet
	case "workflow":
		net.ModelType = petrinet.ModelWorkflow
	case "elementary":
		net.ModelType = petrinet.ModelElementary
	default:
		return nil, fmt.Errorf("%w: ModelType must be one of petrinet, workflow, or elementary", ErrInvalidDiagram)
	}

	x := 20
	const y = 200
	for _, line := range lines[1:] {
		first, second, ok := splitArrow(line)
		if !ok {
			continue
		}
		firstIsState := startsUpper(first)
		secondIsState := startsUpper(second)
		if !firstIsState && !secondIsState {
			return nil, fmt.Errorf("%w: %q connects two transitions", ErrInvalidDiagram, line)
		}

		state, action := first, second
		if !firstIsState {
			state, action = second, first
		}

		if _, found := net.Places[state]; !found {
			x += diagramGrid
			net.AddPlace(state, 0, 0, x, y)
		}
		if _, found := net.Transitions[action]; !found {
			x += diagramGrid
			net.AddTransition(action, "default", x, y)
		}

		consume := firstIsState
		produce := secondIsState
		net.AddArc(&petrinet.Arc{
			Source:  first,
			Target:  second,
			Weight:  1,
			Consume: &consume,
			Produce: &produce,
		})
	}
	return net, nil
}

// FromStateDiagram parses the headerless state diagram syntax:
//
//	Still --> Moving;
//	Moving --> Crash;
//
// Both endpoints are places; each statement introduces an implicit
// transition named after the whole statement. The result is a
// workflow net.
func FromStateDiagram(contents string) (*petrinet.PetriNet, error) {
	contents = strings.ReplaceAll(contents, "\n", "")
	contents = strings.ReplaceAll(contents, " ", "")
	lines := splitStatements(contents)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty contents", ErrInvalidDiagram)
	}

	net := petrinet.New()
	net.ModelType = petrinet.ModelWorkflow

	x := 20
	const y = 200
	for _, action := range lines {
		input, output, ok := splitArrow(action)
		if !ok {
			continue
		}

		if _, found := net.Places[input]; !found {
			x += diagramGrid
			net.AddPlace(input, 0, 0, x, y)
		}
		if _, found := net.Transitions[action]; !found {
			x += diagramGrid
			net.AddTransition(action, "default", x, y)
		}
		if _, found := net.Places[output]; !found {
			x += diagramGrid
			net.AddPlace(output, 0, 0, x, y)
		}

		yes, no := true, false
		net.AddArc(&petrinet.Arc{
			Source: input, Target: action,
			Weight: 1, Consume: &yes, Produce: &no,
		})
		net.AddArc(&petrinet.Arc{
			Source: action, Target: output,
			Weight: 1, Consume: &no, Produce: &yes,
		})
	}
	return net, nil
}

func splitStatements(contents string) []string {
	var out []string
	for _, s := range strings.Split(contents, ";") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitArrow(line string) (string, string, bool) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
