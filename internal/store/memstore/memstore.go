// Package memstore holds in-memory implementations of the service store
// contracts. They back unit tests and single-process development runs;
// production uses the Postgres repositories.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"
)

type Tasks struct {
	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

var _ service.TaskStore = (*Tasks)(nil)

func NewTasks() *Tasks {
	return &Tasks{tasks: make(map[int64]*domain.Task)}
}

func (s *Tasks) Insert(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ids are monotonic and never reused after a delete
	s.nextID++
	t.ID = s.nextID
	cp := *t
	s.tasks[t.ID] = &cp
	return nil
}

func (s *Tasks) GetOwned(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.CreatedBy != owner {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Tasks) List(ctx context.Context, owner string, f domain.TaskFilter) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(f.Query)
	var res []*domain.Task
	for _, t := range s.tasks {
		if t.CreatedBy != owner {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Tags), q) {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		cp := *t
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Tasks) Update(ctx context.Context, t *domain.Task) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tasks[t.ID]
	if !ok || cur.CreatedBy != t.CreatedBy {
		return false, nil
	}
	cp := *t
	s.tasks[t.ID] = &cp
	return true, nil
}

func (s *Tasks) Delete(ctx context.Context, owner string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.CreatedBy != owner {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

type Users struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int64
}

var _ service.UserStore = (*Users)(nil)

func NewUsers() *Users {
	return &Users{users: make(map[string]*domain.User)}
}

func (s *Users) Insert(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return domain.ErrConflict
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.Username] = &cp
	return nil
}

func (s *Users) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
