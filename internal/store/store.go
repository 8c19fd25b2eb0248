// Package store manages the lifecycle of the local persistence handle:
// opening the database, migrating it to the current schema, retrying when
// another process holds the schema lock, and telling observers which state
// the connection is in.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fieldstack/snaglist/internal/repository"
	"github.com/fieldstack/snaglist/internal/sqlite"
)

// ErrUnavailable indicates that no usable database handle could be
// produced, after retries where retrying applies.
var ErrUnavailable = errors.New("store unavailable")

// Status is the externally visible connection state.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
	// StatusBlocked means the schema is locked by another connection and
	// the store is retrying.
	StatusBlocked Status = "blocked"
	StatusError   Status = "error"
)

// Config holds the store's tunables.
type Config struct {
	// Path is the database file path, or ":memory:".
	Path string
	// MaxAttempts bounds how often a blocked open is retried.
	MaxAttempts int
	// RetryBase is the first retry delay; each retry doubles it.
	RetryBase time.Duration
}

func (c *Config) setDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.RetryBase <= 0 {
		c.RetryBase = 50 * time.Millisecond
	}
}

type opener func(ctx context.Context) (*sqlite.DB, error)

// Store owns one database handle and its lifecycle. It is safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	open    opener
	cfg     Config
	logger  *slog.Logger
	db      *sqlite.DB
	status  Status
	subs    map[int]func(Status)
	nextSub int
}

// New creates a store for the configured database path. The database is
// not opened until the first Handle call.
func New(cfg Config, logger *slog.Logger) *Store {
	cfg.setDefaults()
	return newStore(cfg, logger, func(ctx context.Context) (*sqlite.DB, error) {
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	})
}

func newStore(cfg Config, logger *slog.Logger, open opener) *Store {
	cfg.setDefaults()
	return &Store{
		open:   open,
		cfg:    cfg,
		logger: logger,
		status: StatusDisconnected,
		subs:   make(map[int]func(Status)),
	}
}

// Status returns the current connection state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Handle returns the open, migrated database handle, opening it on first
// use. When the schema is locked elsewhere the open is retried with
// doubling delays; once attempts run out the store lands in the error
// state and callers get ErrUnavailable.
func (s *Store) Handle(ctx context.Context) (*sqlite.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	delay := s.cfg.RetryBase
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		db, err := s.open(ctx)
		if err == nil {
			s.db = db
			s.setStatusLocked(StatusConnected)
			return db, nil
		}

		if !errors.Is(err, repository.ErrSchemaBlocked) {
			s.setStatusLocked(StatusError)
			if s.logger != nil {
				s.logger.Error("store open failed", "path", s.cfg.Path, "error", err)
			}
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		s.setStatusLocked(StatusBlocked)
		if s.logger != nil {
			s.logger.Warn("schema locked, retrying",
				"path", s.cfg.Path, "attempt", attempt, "delay", delay)
		}

		if attempt == s.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			s.setStatusLocked(StatusError)
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	s.setStatusLocked(StatusError)
	return nil, fmt.Errorf("%w: schema locked after %d attempts", ErrUnavailable, s.cfg.MaxAttempts)
}

// Close releases the handle and returns the store to disconnected. A
// later Handle call opens fresh.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	s.setStatusLocked(StatusDisconnected)
	return err
}

// Subscribe registers an observer for status changes. The current status
// is delivered immediately, so observers never have to poll for their
// starting state. The returned function unsubscribes.
//
// Observers are called synchronously under the store's lock; they must
// not call back into the store.
func (s *Store) Subscribe(fn func(Status)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.status
	fn(current)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) setStatusLocked(status Status) {
	if s.status == status {
		return
	}
	s.status = status
	for _, fn := range s.subs {
		fn(status)
	}
}
