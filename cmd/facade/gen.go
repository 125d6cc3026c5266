package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/facade/delegate"
	"github.com/chazu/facade/loader"
	"github.com/chazu/facade/manifest"
)

// handleGenCommand processes the `facade gen` subcommand.
// Usage:
//
//	facade gen             # all [[delegate]] blocks from facade.toml
//	facade gen -n          # dry run, print to stdout instead of writing
func handleGenCommand(args []string, verbose bool) {
	dryRun := false
	for _, arg := range args {
		switch arg {
		case "-n", "--dry-run":
			dryRun = true
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown gen flag %s\n", arg)
			os.Exit(1)
		}
	}

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		fmt.Fprintln(os.Stderr, "Error: no facade.toml found")
		os.Exit(1)
	}
	if len(m.Delegates) == 0 {
		fmt.Fprintln(os.Stderr, "No [[delegate]] blocks configured in facade.toml")
		os.Exit(1)
	}

	env, closeEnv, err := buildEnv(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeEnv()

	gen := delegate.NewGenerator(loader.New(env))

	for _, block := range m.Delegates {
		defs, err := gen.GenerateStrings(block.Patterns, delegate.Options{
			To:               block.To,
			As:               block.As,
			AppendFirst:      block.AppendFirst,
			IncludeCallbacks: block.Callbacks,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating delegates for %s: %v\n", block.To, err)
			os.Exit(1)
		}

		code := delegate.RenderSource(defs)

		if dryRun || block.File == "" {
			fmt.Print(code)
			continue
		}

		out := filepath.Join(m.Dir, block.File)
		if err := os.WriteFile(out, []byte(code), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
			os.Exit(1)
		}
		if verbose {
			fmt.Printf("Wrote %d definitions to %s\n", len(defs), out)
		}
	}
}

// buildEnv assembles the host environment from the manifest: filesystem
// lookup plus compiler, wrapped in the sqlite artifact cache when one is
// configured.
func buildEnv(m *manifest.Manifest) (loader.Env, func(), error) {
	var env loader.Env = &loader.DirEnv{
		ArtifactDirs: m.ArtifactPaths(),
		SourceDirs:   m.SourcePaths(),
		Compiler:     m.Artifacts.Compiler,
	}

	if cache := m.CachePath(); cache != "" {
		store, err := loader.OpenStore(cache, env)
		if err != nil {
			return nil, nil, fmt.Errorf("opening artifact cache: %w", err)
		}
		return store, func() { store.Close() }, nil
	}
	return env, func() {}, nil
}
