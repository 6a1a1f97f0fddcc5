package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports that no record exists yet. The editor maps it to the
// empty lifecycle state rather than a failure.
var ErrNotFound = errors.New("store: record not found")

// Store reads and writes the profile record with simulated backend behavior.
type Store struct {
	path        string
	loadLatency time.Duration
	saveLatency time.Duration
	failEvery   int

	mu  sync.Mutex
	ops int
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithLatency sets the artificial delay applied to loads and saves.
func WithLatency(load, save time.Duration) Option {
	return func(s *Store) {
		s.loadLatency = load
		s.saveLatency = save
	}
}

// WithFailEvery makes every n-th operation fail. Zero disables injection.
func WithFailEvery(n int) Option {
	return func(s *Store) {
		s.failEvery = n
	}
}

// New builds a store rooted at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path, for the watcher.
func (s *Store) Path() string { return s.path }

// NewOpToken mints an opaque token identifying one in-flight operation. The
// editor stores it as the lifecycle handle and echoes it in log lines.
func NewOpToken() string { return uuid.NewString() }

// Load reads the record. A missing file yields ErrNotFound; an existing but
// blank record is returned as a zero Record so callers can treat the
// resource as confirmed-empty.
func (s *Store) Load(ctx context.Context) (Record, error) {
	if err := s.simulate(ctx, s.loadLatency, "load"); err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	rec, err := unmarshalRecord(data)
	if err != nil {
		return Record{}, fmt.Errorf("store: parse %s: %w", s.path, err)
	}
	return rec, nil
}

// Save writes the record, creating parent directories as needed. The write
// goes through a temp file and rename so the watcher never sees a torn file.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if err := s.simulate(ctx, s.saveLatency, "save"); err != nil {
		return err
	}
	data, err := marshalRecord(rec)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: ensure dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}
	return nil
}

// simulate applies latency and failure injection before the real IO.
func (s *Store) simulate(ctx context.Context, latency time.Duration, op string) error {
	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if s.failEvery > 0 {
		s.mu.Lock()
		s.ops++
		n := s.ops
		s.mu.Unlock()
		if n%s.failEvery == 0 {
			return fmt.Errorf("store: injected %s failure (operation %d)", op, n)
		}
	}
	return nil
}
