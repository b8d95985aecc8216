// Package store persists projects. A durable backend is used when one is configured; whenever it
// is missing or an operation against it fails, the request is served from a process-local
// fallback table instead.
//
// Backend failures are never returned to callers. They are logged, and the Source returned with
// every result says which path served it. Writes absorbed by the fallback table are lost on restart.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"schema-designer-backend/internal/models"
)

// Backend is a project table. Get returns (nil, nil) for an unknown id and Update reports
// found=false for one; neither is an error.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) (bool, error)
}

type Source string

const (
	SourceDurable  Source = "durable"
	SourceFallback Source = "fallback"
)

type Status struct {
	Backend   string
	Durable   bool
	Reachable bool
	// FallbackRecords counts projects held only in process memory.
	FallbackRecords int
}

type Store struct {
	durable  Backend
	fallback *Memory
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns a store over durable, which may be nil to run on the fallback table alone.
func New(durable Backend, opts ...Option) *Store {
	s := &Store{
		durable:  durable,
		fallback: NewMemory(),
		logger:   slog.Default(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if durable == nil {
		s.logger.Info("database not available, using in-memory storage")
	}
	return s
}

func (s *Store) timestamp() time.Time {
	// Microseconds: the finest precision Postgres keeps.
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Store) fallbackTo(op string, err error) {
	s.logger.Warn("database error, falling back to in-memory storage",
		"op", op, "backend", s.durable.Name(), "error", err)
}

// Create assigns p a fresh id and timestamps, then writes it.
func (s *Store) Create(ctx context.Context, p *models.Project) (Source, error) {
	if !p.SchemaType.Valid() {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidSchemaType, p.SchemaType)
	}

	now := s.timestamp()
	p.ID = s.newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Conversation == nil {
		p.Conversation = []models.Message{}
	}

	if s.durable != nil {
		err := s.durable.Create(ctx, p)
		if err == nil {
			return SourceDurable, nil
		}
		s.fallbackTo("create", err)
	}

	s.fallback.put(p)
	return SourceFallback, nil
}

// Get returns (nil, source, nil) when no project has the id.
func (s *Store) Get(ctx context.Context, id string) (*models.Project, Source, error) {
	if s.durable != nil {
		p, err := s.durable.Get(ctx, id)
		if err == nil {
			if p != nil {
				return p, SourceDurable, nil
			}
			if local, _ := s.fallback.Get(ctx, id); local != nil {
				return local, SourceFallback, nil
			}
			return nil, SourceDurable, nil
		}
		s.fallbackTo("get", err)
	}

	p, _ := s.fallback.Get(ctx, id)
	return p, SourceFallback, nil
}

// Update applies patch and refreshes UpdatedAt. An unknown id is a silent no-op: found is false,
// err is nil and nothing is created.
func (s *Store) Update(ctx context.Context, id string, patch models.ProjectPatch) (bool, Source, error) {
	now := s.timestamp()

	if s.durable != nil {
		found, err := s.durable.Update(ctx, id, patch, now)
		switch {
		case err != nil:
			s.fallbackTo("update", err)
		case found:
			return true, SourceDurable, nil
		default:
			if found, _ := s.fallback.Update(ctx, id, patch, now); found {
				return true, SourceFallback, nil
			}
			return false, SourceDurable, nil
		}
	}

	found, _ := s.fallback.Update(ctx, id, patch, now)
	return found, SourceFallback, nil
}

func (s *Store) Status(ctx context.Context) Status {
	st := Status{Backend: s.fallback.Name(), FallbackRecords: s.fallback.Len()}
	if s.durable == nil {
		return st
	}
	st.Backend = s.durable.Name()
	st.Durable = true
	if err := s.durable.Ping(ctx); err != nil {
		s.logger.Warn("database ping failed", "backend", s.durable.Name(), "error", err)
	} else {
		st.Reachable = true
	}
	return st
}
