package loader

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chazu/facade/artifact"
)

// Store is a sqlite-backed artifact cache layered over an inner Env.
// Compiled artifacts are persisted keyed by module name with their SHA-256
// content hash, so a later process can reuse them without recompiling.
// Lookup order: inner environment first (an on-disk or freshly compiled
// artifact always wins), then the store.
type Store struct {
	db    *sql.DB
	inner Env
	mu    sync.Mutex
}

// OpenStore opens (or creates) the cache database at path, wrapping inner.
func OpenStore(path string, inner Env) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS artifacts (
		module     TEXT PRIMARY KEY,
		hash       BLOB NOT NULL,
		data       BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating artifacts table: %w", err)
	}

	return &Store{db: db, inner: inner}, nil
}

// Close closes the cache database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LookupCompiled consults the inner environment, then the persisted cache.
func (s *Store) LookupCompiled(module string) (*artifact.Artifact, bool) {
	if a, ok := s.inner.LookupCompiled(module); ok {
		return a, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM artifacts WHERE module = ?", module).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Errorf("artifact cache read for %s: %s", module, err.Error())
		return nil, false
	}

	a, err := artifact.Read(data)
	if err != nil {
		// A corrupt cache entry is dropped, not surfaced: the loader will
		// fall through to compilation and overwrite it.
		log.Errorf("dropping corrupt cache entry for %s: %s", module, err.Error())
		if _, derr := s.db.Exec("DELETE FROM artifacts WHERE module = ?", module); derr != nil {
			log.Errorf("deleting corrupt cache entry for %s: %s", module, derr.Error())
		}
		return nil, false
	}
	return a, true
}

// CompileAndLoad compiles through the inner environment and persists the
// result before returning it.
func (s *Store) CompileAndLoad(module string) (*artifact.Artifact, error) {
	a, err := s.inner.CompileAndLoad(module)
	if err != nil {
		return nil, err
	}

	data := a.Bytes()
	hash := sha256.Sum256(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO artifacts (module, hash, data, created_at) VALUES (?, ?, ?, ?)",
		module, hash[:], data, time.Now().Unix())
	if err != nil {
		// Persisting is an optimization; the compiled artifact is still
		// good even if the cache write fails.
		log.Errorf("artifact cache write for %s: %s", module, err.Error())
	}
	return a, nil
}
