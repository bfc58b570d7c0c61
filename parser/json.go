// Package parser loads and saves petrinet models: the pflow model.json
// format, the line-oriented arrow diagram syntax, and a YAML net file
// format.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/pflow-xyz/go-vasm/petrinet"
)

// FromJSON parses a net from model JSON:
//
//	{
//	  "modelType": "petriNet",
//	  "version": "v0",
//	  "places": {"p0": {"offset": 0, "initial": 1, "capacity": 3, "x": 100, "y": 100}},
//	  "transitions": {"t0": {"offset": 0, "role": "default", "x": 200, "y": 100}},
//	  "arcs": [{"source": "p0", "target": "t0", "weight": 1}]
//	}
//
// Unset arc attributes are inferred after decoding.
func FromJSON(data []byte) (*petrinet.PetriNet, error) {
	net := petrinet.New()
	if err := json.Unmarshal(data, net); err != nil {
		return nil, fmt.Errorf("invalid model JSON: %w", err)
	}
	if net.ModelType == "" {
		net.ModelType = petrinet.ModelPetriNet
	}
	if net.Places == nil {
		net.Places = make(map[string]*petrinet.Place)
	}
	if net.Transitions == nil {
		net.Transitions = make(map[string]*petrinet.Transition)
	}
	net.PopulateArcAttributes()
	return net, nil
}

// ToJSON serializes a net to indented model JSON.
func ToJSON(net *petrinet.PetriNet) ([]byte, error) {
	return json.MarshalIndent(net, "", "  ")
}
