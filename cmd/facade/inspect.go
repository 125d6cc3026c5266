package main

import (
	"fmt"
	"os"

	"github.com/chazu/facade/artifact"
)

// handleInspectCommand processes the `facade inspect` subcommand: a raw
// dump of an artifact's header and section directory.
func handleInspectCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: facade inspect <file.fmod>")
		os.Exit(2)
	}

	a, err := artifact.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: version %d, flags 0x%x, %d sections\n",
		args[0], a.Version, a.Flags, len(a.Sections))
	for _, s := range a.Sections {
		fmt.Printf("  %-8s %6d bytes\n", s.Name, len(s.Payload))
	}
}
