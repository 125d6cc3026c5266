// Package loader resolves module identifiers to compiled artifacts. A
// Loader composes the two host-environment primitives — look up an
// already-compiled artifact, or compile on demand — behind a process-wide
// cache that lives for the lifetime of the Loader.
package loader

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/chazu/facade/artifact"
)

var log = commonlog.GetLogger("facade.loader")

// ErrModuleUnavailable indicates the module could not be found in compiled
// form and could not be compiled.
var ErrModuleUnavailable = errors.New("module unavailable")

// Env is the host compilation environment: the two primitives a Loader
// composes. Implementations must be safe for concurrent use.
type Env interface {
	// LookupCompiled returns the already-compiled artifact for the module,
	// or false when none exists. Absence is not an error.
	LookupCompiled(module string) (*artifact.Artifact, bool)

	// CompileAndLoad compiles the module from source and returns the
	// resulting artifact. Compilation is a single attempt; failures are
	// reported once, never retried here.
	CompileAndLoad(module string) (*artifact.Artifact, error)
}

// Loader caches compiled artifacts by module identifier. The cache is
// unbounded and never evicts: module counts are small and static in normal
// use, and artifacts are immutable once loaded.
type Loader struct {
	env Env

	mu    sync.RWMutex
	cache map[string]*artifact.Artifact
}

// New creates a Loader over the given host environment.
func New(env Env) *Loader {
	return &Loader{
		env:   env,
		cache: make(map[string]*artifact.Artifact),
	}
}

// Load returns the compiled artifact for the module, compiling it on
// demand. Concurrent misses for the same module may both reach the
// environment; the cache converges to a single entry and every caller
// receives a valid artifact regardless of which load won.
func (l *Loader) Load(module string) (*artifact.Artifact, error) {
	l.mu.RLock()
	a, ok := l.cache[module]
	l.mu.RUnlock()
	if ok {
		return a, nil
	}

	a, err := l.resolve(module)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if prior, ok := l.cache[module]; ok {
		// Another goroutine loaded it first; keep the entry that won.
		a = prior
	} else {
		l.cache[module] = a
	}
	l.mu.Unlock()

	return a, nil
}

// Cached reports whether the module is already in the cache.
func (l *Loader) Cached(module string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[module]
	return ok
}

func (l *Loader) resolve(module string) (*artifact.Artifact, error) {
	if a, ok := l.env.LookupCompiled(module); ok {
		log.Debugf("found compiled artifact for %s", module)
		return a, nil
	}

	log.Infof("compiling %s", module)
	a, err := l.env.CompileAndLoad(module)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModuleUnavailable, module, err)
	}
	return a, nil
}
