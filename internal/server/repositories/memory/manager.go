// Package memory is an in-process RepositoryManager. It backs the server when
// the DSN is "memory" (local demos, no Postgres) and the service and handler
// tests, which read its per-method call counters.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/dbx"
	"github.com/dmitrijs2005/talentdesk/internal/server/models"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/interactions"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/referentes"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/talents"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/users"
)

// DSN selects the in-memory store instead of Postgres.
const DSN = "memory"

type store struct {
	mu sync.Mutex

	users        map[string]models.User
	referentes   map[int64]models.Referente
	talents      map[int64]models.Talent
	interactions map[int64]models.Interaction

	seq   map[string]int64
	calls map[string]int
	now   func() time.Time
}

// RepositoryManager hands out repositories sharing one store. The DBTX
// arguments are ignored.
type RepositoryManager struct {
	s *store
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{s: &store{
		users:        map[string]models.User{},
		referentes:   map[int64]models.Referente{},
		talents:      map[int64]models.Talent{},
		interactions: map[int64]models.Interaction{},
		seq:          map[string]int64{},
		calls:        map[string]int{},
		now:          time.Now,
	}}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository { return &userRepo{s: m.s} }

func (m *RepositoryManager) Talents(dbx.DBTX) talents.Repository { return &talentRepo{s: m.s} }

func (m *RepositoryManager) Referentes(dbx.DBTX) referentes.Repository {
	return &referenteRepo{s: m.s}
}

func (m *RepositoryManager) Interactions(dbx.DBTX) interactions.Repository {
	return &interactionRepo{s: m.s}
}

// Calls returns how many times method (e.g. "talents.Create") was invoked.
func (m *RepositoryManager) Calls(method string) int {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.calls[method]
}

// TotalCalls returns the number of repository calls of any kind.
func (m *RepositoryManager) TotalCalls() int {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	n := 0
	for _, c := range m.s.calls {
		n += c
	}
	return n
}

// lock records the call and takes the store lock; callers defer the unlock.
func (s *store) lock(method string) func() {
	s.mu.Lock()
	s.calls[method]++
	return s.mu.Unlock
}

func (s *store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}
