// Facade CLI - generates metadata-preserving delegation code
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	chdir := flag.String("C", "", "Change to directory before doing anything")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: facade [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  gen                    Generate delegate source from facade.toml\n")
		fmt.Fprintf(os.Stderr, "  docs <module> [f/n]    Print a module's documentation and signatures\n")
		fmt.Fprintf(os.Stderr, "  inspect <file.fmod>    Dump an artifact's header and sections\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  facade gen                  # generate all [[delegate]] blocks\n")
		fmt.Fprintf(os.Stderr, "  facade docs maps            # all documented functions of maps\n")
		fmt.Fprintf(os.Stderr, "  facade docs maps put/3      # one function\n")
		fmt.Fprintf(os.Stderr, "  facade inspect build/maps.fmod\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	if *chdir != "" {
		if err := os.Chdir(*chdir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "gen":
		handleGenCommand(args[1:], *verbose)
	case "docs":
		handleDocsCommand(args[1:])
	case "inspect":
		handleInspectCommand(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}
