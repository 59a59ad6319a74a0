package service

import (
	"context"
	"strings"
	"time"

	"tasktrack/internal/domain"
)

// TaskStore is the storage contract the service runs on. Implementations
// must assign ids monotonically (no reuse after delete) and keep each
// operation atomic at single-record granularity.
type TaskStore interface {
	Insert(ctx context.Context, t *domain.Task) error
	// GetOwned returns domain.ErrNotFound both when the id is absent and
	// when the record belongs to a different owner.
	GetOwned(ctx context.Context, owner string, id int64) (*domain.Task, error)
	List(ctx context.Context, owner string, f domain.TaskFilter) ([]*domain.Task, error)
	// Update writes the whole record and reports whether a row owned by
	// t.CreatedBy with t.ID existed.
	Update(ctx context.Context, t *domain.Task) (bool, error)
	Delete(ctx context.Context, owner string, id int64) (bool, error)
}

// Notifier receives task change events. Implementations must not block.
type Notifier interface {
	TaskEvent(owner string, ev TaskEvent)
}

type TaskEvent struct {
	Kind   string       `json:"kind"` // created, updated, deleted
	TaskID int64        `json:"task_id"`
	Task   *domain.Task `json:"task,omitempty"`
}

type TaskService struct {
	store  TaskStore
	events Notifier // optional
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func NewTaskServiceWithNotifier(store TaskStore, n Notifier) *TaskService {
	return &TaskService{store: store, events: n}
}

type TaskCreate struct {
	Title   string     `json:"title"`
	Tags    string     `json:"tags"`
	DueDate *time.Time `json:"due_date"`
}

func validateTitle(title string) error {
	if title == "" {
		return domain.Invalid("title", "must not be empty")
	}
	if len([]rune(title)) > domain.TitleMaxLen {
		return domain.Invalid("title", "must be at most 140 characters")
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, owner string, in TaskCreate) (*domain.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &domain.Task{
		Title:     in.Title,
		Tags:      in.Tags,
		DueDate:   in.DueDate,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: owner,
		UpdatedBy: owner,
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.notify(owner, TaskEvent{Kind: "created", TaskID: t.ID, Task: t})
	return t, nil
}

// Get is the single ownership-scoped lookup path; Update and Delete go
// through the same store primitive so the three can never drift apart.
func (s *TaskService) Get(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	return s.store.GetOwned(ctx, owner, id)
}

// List returns the owner's tasks, id ascending. Filters combine with
// logical AND; an empty query and nil completed mean a full listing.
func (s *TaskService) List(ctx context.Context, owner string, f domain.TaskFilter) ([]*domain.Task, error) {
	f.Query = strings.TrimSpace(f.Query)
	return s.store.List(ctx, owner, f)
}

// Update applies the non-nil fields of patch. Validation happens before
// any field is touched, so a bad title leaves the record as it was.
// UpdatedAt and UpdatedBy refresh on every successful call, even when the
// patch is empty.
func (s *TaskService) Update(ctx context.Context, owner string, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	t, err := s.store.GetOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Tags != nil {
		t.Tags = *patch.Tags
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()
	t.UpdatedBy = owner

	ok, err := s.store.Update(ctx, t)
	if err != nil {
		return nil, err
	}
	if !ok {
		// deleted between lookup and write
		return nil, domain.ErrNotFound
	}

	s.notify(owner, TaskEvent{Kind: "updated", TaskID: t.ID, Task: t})
	return t, nil
}

// Delete reports whether a task was removed. A missing or foreign id is
// not an error; false is the only signal.
func (s *TaskService) Delete(ctx context.Context, owner string, id int64) (bool, error) {
	ok, err := s.store.Delete(ctx, owner, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.notify(owner, TaskEvent{Kind: "deleted", TaskID: id})
	}
	return ok, nil
}

func (s *TaskService) notify(owner string, ev TaskEvent) {
	if s.events != nil {
		s.events.TaskEvent(owner, ev)
	}
}
