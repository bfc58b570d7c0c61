package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pflow-xyz/go-vasm/parser"
	"github.com/pflow-xyz/go-vasm/vasm"
	"github.com/pflow-xyz/go-vasm/visualization"
	"github.com/pflow-xyz/go-vasm/zblob"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: vasm validate <model file>")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	net, err := loadNet(fs.Arg(0))
	if err != nil {
		return err
	}
	m, err := vasm.Compile(net)
	if err != nil {
		return err
	}

	fmt.Printf("Model:       %s\n", fs.Arg(0))
	fmt.Printf("Type:        %s\n", m.Type)
	fmt.Printf("Places:      %d\n", len(m.Places))
	fmt.Printf("Transitions: %d\n", len(m.Transitions))
	fmt.Printf("Arcs:        %d\n", len(net.Arcs))
	fmt.Printf("Roles:       %s\n", strings.Join(m.RoleList(), ", "))
	fmt.Printf("Initial:     %v\n", m.Initial)
	fmt.Println("OK")
	return nil
}

func actions(args []string) error {
	fs := flag.NewFlagSet("actions", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: vasm actions <model file>")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	net, err := loadNet(fs.Arg(0))
	if err != nil {
		return err
	}
	m, err := vasm.Compile(net)
	if err != nil {
		return err
	}
	for _, action := range m.Actions {
		t := m.Transitions[action]
		fmt.Printf("%s\trole=%s\tdelta=%v\tguards=%d\n", action, t.Role, t.Delta, len(t.Guards))
	}
	return nil
}

func fire(args []string) error {
	fs := flag.NewFlagSet("fire", flag.ExitOnError)
	action := fs.String("action", "", "Action to fire (required)")
	state := fs.String("state", "", "Comma-separated marking (default: initial)")
	multiple := fs.Int("multiple", 1, "Firing multiple")
	fs.Usage = func() {
		fmt.Println("Usage: vasm fire <model file> --action <name> [--state 1,0,2] [--multiple n]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}
	if *action == "" {
		fs.Usage()
		return fmt.Errorf("--action required")
	}

	net, err := loadNet(fs.Arg(0))
	if err != nil {
		return err
	}
	m, err := vasm.Compile(net)
	if err != nil {
		return err
	}

	marking := m.InitialVector()
	if *state != "" {
		marking, err = parseState(*state, len(m.Places))
		if err != nil {
			return err
		}
	}

	txn, err := m.Transform(marking, *action, int32(*multiple))
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(txn, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	format := fs.String("format", "json", "Output format: json or yaml")
	output := fs.String("output", "", "Output file (default: stdout)")
	fs.Usage = func() {
		fmt.Println("Usage: vasm convert <model file> [--format json|yaml] [--output file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	net, err := loadNet(fs.Arg(0))
	if err != nil {
		return err
	}

	var data []byte
	switch *format {
	case "json":
		data, err = parser.ToJSON(net)
	case "yaml":
		data, err = parser.ToYAML(net)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	if *output == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(*output, data, 0644)
}

func visualize(args []string) error {
	fs := flag.NewFlagSet("visualize", flag.ExitOnError)
	output := fs.String("output", "model.svg", "Output SVG file")
	fs.Usage = func() {
		fmt.Println("Usage: vasm visualize <model file> [--output file.svg]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	net, err := loadNet(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := visualization.SaveSVG(net, *output); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *output)
	return nil
}

func share(args []string) error {
	fs := flag.NewFlagSet("share", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println("Usage: vasm share <model file>")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	net, err := loadNet(fs.Arg(0))
	if err != nil {
		return err
	}
	z, err := zblob.FromNet(net)
	if err != nil {
		return err
	}
	fmt.Printf("CID: %s\n", z.IpfsCid)
	fmt.Printf("URL: %s\n", z.ShareURL())
	return nil
}
