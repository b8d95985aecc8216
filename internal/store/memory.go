package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"schema-designer-backend/internal/models"
)

// Memory is the process-local fallback table. Records do not survive a restart.
type Memory struct {
	mu       sync.RWMutex
	projects map[string]*models.Project
}

func NewMemory() *Memory {
	return &Memory{projects: make(map[string]*models.Project)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Create(ctx context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.projects[p.ID]; exists {
		return fmt.Errorf("project %s already exists", p.ID)
	}
	m.projects[p.ID] = p.Clone()
	return nil
}

// put writes p unconditionally, replacing any record with the same id.
func (m *Memory) put(p *models.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p.Clone()
}

func (m *Memory) Get(ctx context.Context, id string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.projects[id].Clone(), nil
}

func (m *Memory) Update(ctx context.Context, id string, patch models.ProjectPatch, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[id]
	if !ok {
		return false, nil
	}
	patch.Apply(p, at)
	return true, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.projects)
}
