package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/chazu/facade/artifact"
)

// ArtifactExt is the compiled-module file extension.
const ArtifactExt = ".fmod"

// SourceExt is the module source file extension.
const SourceExt = ".fc"

// DirEnv is a host environment backed by the filesystem: compiled
// artifacts are <module>.fmod files in the artifact search paths, sources
// are <module>.fc files in the source paths, and compilation shells out to
// an external compiler command.
type DirEnv struct {
	// ArtifactDirs are searched in order for compiled artifacts. The
	// first directory also receives newly compiled output.
	ArtifactDirs []string

	// SourceDirs are searched in order for module sources.
	SourceDirs []string

	// Compiler is the compiler argv prefix; the source path and
	// "-o <artifact path>" are appended. Empty means no compiler is
	// available and CompileAndLoad always fails.
	Compiler []string
}

// LookupCompiled searches the artifact paths for <module>.fmod.
func (e *DirEnv) LookupCompiled(module string) (*artifact.Artifact, bool) {
	for _, dir := range e.ArtifactDirs {
		path := filepath.Join(dir, module+ArtifactExt)
		a, err := artifact.ReadFile(path)
		if err == nil {
			return a, true
		}
		if !errors.Is(err, os.ErrNotExist) {
			// A present but unreadable artifact is worth surfacing in the
			// log; the loader will fall through to compilation.
			log.Errorf("ignoring unreadable artifact %s: %s", path, err.Error())
		}
	}
	return nil, false
}

// CompileAndLoad locates the module source, invokes the configured
// compiler, and reads the artifact it produced.
func (e *DirEnv) CompileAndLoad(module string) (*artifact.Artifact, error) {
	if len(e.Compiler) == 0 {
		return nil, fmt.Errorf("no compiler configured")
	}

	src, err := e.findSource(module)
	if err != nil {
		return nil, err
	}

	outDir := "."
	if len(e.ArtifactDirs) > 0 {
		outDir = e.ArtifactDirs[0]
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact dir: %w", err)
	}
	out := filepath.Join(outDir, module+ArtifactExt)

	args := append(append([]string{}, e.Compiler[1:]...), src, "-o", out)
	cmd := exec.Command(e.Compiler[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debugf("running %s %s", e.Compiler[0], strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("compiling %s: %s", module, msg)
	}

	return artifact.ReadFile(out)
}

func (e *DirEnv) findSource(module string) (string, error) {
	for _, dir := range e.SourceDirs {
		path := filepath.Join(dir, module+SourceExt)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no source for module %s in %v", module, e.SourceDirs)
}
