package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pflow-xyz/go-vasm/parser"
	"github.com/pflow-xyz/go-vasm/petrinet"
	"github.com/pflow-xyz/go-vasm/vasm"
)

// loadNet reads a model file, choosing the parser by extension:
// .json for model JSON, .yaml/.yml for net files, anything else is
// parsed as diagram text.
func loadNet(path string) (*petrinet.PetriNet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parser.FromJSON(data)
	case ".yaml", ".yml":
		return parser.FromYAML(data)
	default:
		return parser.Parse(string(data))
	}
}

// parseState parses a comma-separated marking like "1,0,2".
func parseState(s string, size int) (vasm.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != size {
		return nil, fmt.Errorf("state has %d slots, model has %d places", len(parts), size)
	}
	out := make(vasm.Vector, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid state slot %d: %w", i, err)
		}
		out[i] = int32(v)
	}
	return out, nil
}
