package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chazu/facade/delegate"
	"github.com/chazu/facade/loader"
	"github.com/chazu/facade/manifest"
	"github.com/chazu/facade/metadata"
)

// handleDocsCommand processes the `facade docs` subcommand.
// Usage:
//
//	facade docs maps          # every documented function
//	facade docs maps put/3    # one function by name and arity
func handleDocsCommand(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: facade docs <module> [name/arity]")
		os.Exit(2)
	}
	module := args[0]

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}

	var env loader.Env
	if m != nil {
		env = &loader.DirEnv{
			ArtifactDirs: m.ArtifactPaths(),
			SourceDirs:   m.SourcePaths(),
			Compiler:     m.Artifacts.Compiler,
		}
	} else {
		// Without a manifest, look in the working directory.
		env = &loader.DirEnv{ArtifactDirs: []string{"."}}
	}

	art, err := loader.New(env).Load(module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mod := metadata.Decode(art)

	if len(args) == 2 {
		name, arity, err := parseFunctionRef(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		printFunction(mod, module, name, arity)
		return
	}

	printModule(mod, module)
}

// parseFunctionRef splits "put/3" into name and arity.
func parseFunctionRef(ref string) (string, int, error) {
	name, arityStr, ok := strings.Cut(ref, "/")
	if !ok {
		return "", 0, fmt.Errorf("function reference %q must be name/arity", ref)
	}
	arity, err := strconv.Atoi(arityStr)
	if err != nil || arity < 0 {
		return "", 0, fmt.Errorf("bad arity in %q", ref)
	}
	return name, arity, nil
}

func printFunction(mod *metadata.Module, module, name string, arity int) {
	fmt.Printf("%s.%s/%d\n\n", module, name, arity)

	for _, clause := range metadata.FindSpecs(mod.Specs, name, arity, metadata.SpecsOnly) {
		fmt.Printf("  spec %s\n", clause)
	}

	doc, ok := metadata.FindDoc(mod.Docs, name, arity)
	if !ok {
		doc = delegate.NoDocsPlaceholder
	}
	fmt.Printf("\n%s\n", indent(doc))
}

func printModule(mod *metadata.Module, module string) {
	if mod.Meta.Module != "" {
		fmt.Printf("module %s (compiled by %s)\n\n", mod.Meta.Module, mod.Meta.Compiler)
	} else {
		fmt.Printf("module %s\n\n", module)
	}

	if len(mod.Docs) == 0 {
		fmt.Println("No documentation sections in this artifact.")
		return
	}

	records := make([]metadata.DocRecord, len(mod.Docs))
	copy(records, mod.Docs)
	sort.Slice(records, func(i, j int) bool {
		if records[i].Name != records[j].Name {
			return records[i].Name < records[j].Name
		}
		return records[i].Arity < records[j].Arity
	})

	for _, r := range records {
		if r.Hidden {
			continue
		}
		fmt.Printf("%s/%d\n", r.Name, r.Arity)
		for _, clause := range metadata.FindSpecs(mod.Specs, r.Name, r.Arity, metadata.SpecsOnly) {
			fmt.Printf("  spec %s\n", clause)
		}
		if r.Doc != nil {
			fmt.Println(indent(*r.Doc))
		}
		fmt.Println()
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
