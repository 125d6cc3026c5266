// Package manifest handles facade.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a facade.toml project configuration.
type Manifest struct {
	Project   Project    `toml:"project"`
	Artifacts Artifacts  `toml:"artifacts"`
	Delegates []Delegate `toml:"delegate"`

	// Dir is the directory containing the facade.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Artifacts configures where compiled modules live and how missing ones
// get compiled.
type Artifacts struct {
	Paths    []string `toml:"paths"`    // compiled artifact search dirs
	Sources  []string `toml:"sources"`  // module source dirs
	Compiler []string `toml:"compiler"` // compiler argv prefix
	Cache    string   `toml:"cache"`    // artifact cache db, empty disables
}

// Delegate is one delegation block: the patterns to forward and the
// generation options.
type Delegate struct {
	File        string   `toml:"file"` // output source file
	To          string   `toml:"to"`
	As          string   `toml:"as"`
	AppendFirst bool     `toml:"append-first"`
	Callbacks   bool     `toml:"callbacks"`
	Patterns    []string `toml:"patterns"`
}

// Load parses a facade.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "facade.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if len(m.Artifacts.Paths) == 0 {
		m.Artifacts.Paths = []string{"build"}
	}
	if len(m.Artifacts.Sources) == 0 {
		m.Artifacts.Sources = []string{"src"}
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a facade.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "facade.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// ArtifactPaths returns absolute paths for the configured artifact
// directories.
func (m *Manifest) ArtifactPaths() []string {
	return m.absPaths(m.Artifacts.Paths)
}

// SourcePaths returns absolute paths for the configured source directories.
func (m *Manifest) SourcePaths() []string {
	return m.absPaths(m.Artifacts.Sources)
}

// CachePath returns the absolute path of the artifact cache database, or
// empty when caching is disabled.
func (m *Manifest) CachePath() string {
	if m.Artifacts.Cache == "" {
		return ""
	}
	return filepath.Join(m.Dir, m.Artifacts.Cache)
}

func (m *Manifest) absPaths(dirs []string) []string {
	var paths []string
	for _, d := range dirs {
		paths = append(paths, filepath.Join(m.Dir, d))
	}
	return paths
}
