package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "actions":
		if err := actions(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "fire":
		if err := fire(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := convert(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "visualize":
		if err := visualize(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "share":
		if err := share(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("vasm version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vasm - vector addition state machine tool

Usage:
  vasm <command> [options]

Commands:
  validate   Compile a model and report its structure
  actions    List the actions of a compiled model
  fire       Fire a single action against a marking
  convert    Convert a model between json, yaml, and diagram formats
  visualize  Generate an SVG of the model structure
  share      Print the pflow.dev share link and CID for a model
  help       Show this help message
  version    Show version information

Examples:
  # Validate a model
  vasm validate model.json

  # Fire t0 against the initial marking
  vasm fire model.json --action t0

  # Fire from an explicit marking, three at a time
  vasm fire model.json --action t0 --state 1,0,2 --multiple 3

  # Convert a yaml net file to model JSON
  vasm convert model.yaml --format json

  # Render the structure
  vasm visualize model.json --output model.svg

For command-specific help, run:
  vasm <command> --help`)
}
