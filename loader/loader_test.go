package loader

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/chazu/facade/artifact"
)

// fakeEnv is a scriptable host environment that counts calls.
type fakeEnv struct {
	compiled map[string]*artifact.Artifact // served by LookupCompiled
	sources  map[string]*artifact.Artifact // served by CompileAndLoad

	lookups  atomic.Int64
	compiles atomic.Int64
}

func (e *fakeEnv) LookupCompiled(module string) (*artifact.Artifact, bool) {
	e.lookups.Add(1)
	a, ok := e.compiled[module]
	return a, ok
}

func (e *fakeEnv) CompileAndLoad(module string) (*artifact.Artifact, error) {
	e.compiles.Add(1)
	a, ok := e.sources[module]
	if !ok {
		return nil, fmt.Errorf("no such source: %s", module)
	}
	return a, nil
}

func testArtifact(t *testing.T, tag string) *artifact.Artifact {
	t.Helper()
	b := artifact.NewBuilder()
	b.AddSection(artifact.SectionMeta, []byte(tag))
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a
}

func TestLoadFromCompiled(t *testing.T) {
	env := &fakeEnv{compiled: map[string]*artifact.Artifact{
		"maps": testArtifact(t, "maps"),
	}}
	l := New(env)

	a, err := l.Load("maps")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a == nil {
		t.Fatal("nil artifact")
	}
	if env.compiles.Load() != 0 {
		t.Errorf("compile count = %d, want 0", env.compiles.Load())
	}
}

func TestLoadCompilesOnDemand(t *testing.T) {
	env := &fakeEnv{sources: map[string]*artifact.Artifact{
		"maps": testArtifact(t, "maps"),
	}}
	l := New(env)

	if _, err := l.Load("maps"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.compiles.Load() != 1 {
		t.Errorf("compile count = %d, want 1", env.compiles.Load())
	}
}

func TestLoadCaches(t *testing.T) {
	env := &fakeEnv{compiled: map[string]*artifact.Artifact{
		"maps": testArtifact(t, "maps"),
	}}
	l := New(env)

	first, err := l.Load("maps")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !l.Cached("maps") {
		t.Error("expected maps to be cached")
	}

	second, err := l.Load("maps")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Error("expected the cached artifact on the second load")
	}
	if env.lookups.Load() != 1 {
		t.Errorf("lookup count = %d, want 1", env.lookups.Load())
	}
}

func TestLoadUnavailable(t *testing.T) {
	l := New(&fakeEnv{})

	_, err := l.Load("missing")
	if !errors.Is(err, ErrModuleUnavailable) {
		t.Fatalf("error = %v, want ErrModuleUnavailable", err)
	}
	// The message names the module and the underlying reason.
	if msg := err.Error(); msg == ErrModuleUnavailable.Error() {
		t.Errorf("error message carries no detail: %q", msg)
	}
}

func TestLoadConcurrent(t *testing.T) {
	env := &fakeEnv{sources: map[string]*artifact.Artifact{
		"maps": testArtifact(t, "maps"),
	}}
	l := New(env)

	const goroutines = 16
	results := make([]*artifact.Artifact, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := l.Load("maps")
			if err != nil {
				t.Errorf("Load: %v", err)
				return
			}
			results[i] = a
		}(i)
	}
	wg.Wait()

	// Concurrent misses may each compile, but the cache converges: every
	// later load returns the single retained entry.
	final, err := l.Load("maps")
	if err != nil {
		t.Fatalf("final Load: %v", err)
	}
	for i, a := range results {
		if a == nil {
			t.Fatalf("goroutine %d got nil artifact", i)
		}
	}
	if again, _ := l.Load("maps"); again != final {
		t.Error("cache did not converge to one entry")
	}
}
