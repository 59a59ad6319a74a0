package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"
	"tasktrack/internal/store/memstore"
)

func newTaskService() *service.TaskService {
	return service.NewTaskService(memstore.NewTasks())
}

func mustCreate(t *testing.T, s *service.TaskService, owner string, in service.TaskCreate) *domain.Task {
	t.Helper()
	task, err := s.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", in.Title, err)
	}
	return task
}

func TestCreateThenGet(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	due := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	created := mustCreate(t, s, "testuser", service.TaskCreate{
		Title:   "Test Task",
		Tags:    "unit,test",
		DueDate: &due,
	})

	if created.ID == 0 {
		t.Error("expected an assigned id")
	}
	if created.CreatedBy != "testuser" || created.UpdatedBy != "testuser" {
		t.Errorf("owner fields = %q/%q, want testuser", created.CreatedBy, created.UpdatedBy)
	}
	if created.Completed {
		t.Error("new task must not be completed")
	}

	got, err := s.Get(ctx, "testuser", created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Test Task" || got.Tags != "unit,test" {
		t.Errorf("Get() = %q/%q, want Test Task/unit,test", got.Title, got.Tags)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("Get() due date = %v, want %v", got.DueDate, due)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newTaskService()

	tests := []struct {
		name  string
		title string
	}{
		{name: "empty title", title: ""},
		{name: "oversized title", title: strings.Repeat("x", domain.TitleMaxLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), "alice", service.TaskCreate{Title: tt.title})
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestGetHidesForeignTasks(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	created := mustCreate(t, s, "ownerB", service.TaskCreate{Title: "private"})

	// the id exists, but ownerA must not be able to tell
	if _, err := s.Get(ctx, "ownerA", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() as foreign owner error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, "ownerA", created.ID+1000); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() of absent id error = %v, want ErrNotFound", err)
	}
}

func TestUpdateEmptyPatchRefreshesTimestamp(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	created := mustCreate(t, s, "alice", service.TaskCreate{Title: "stable", Tags: "keep"})

	time.Sleep(10 * time.Millisecond)
	updated, err := s.Update(ctx, "alice", created.ID, domain.TaskPatch{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "stable" || updated.Tags != "keep" || updated.Completed {
		t.Error("empty patch must not change content fields")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	due := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	created := mustCreate(t, s, "alice", service.TaskCreate{Title: "original", Tags: "a,b", DueDate: &due})

	completed := true
	updated, err := s.Update(ctx, "alice", created.ID, domain.TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !updated.Completed {
		t.Error("completed flag not applied")
	}
	if updated.Title != "original" || updated.Tags != "a,b" {
		t.Error("untouched fields changed")
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("due date changed: %v", updated.DueDate)
	}
}

func TestUpdateValidatesBeforeMutating(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	created := mustCreate(t, s, "alice", service.TaskCreate{Title: "original"})

	bad := ""
	completed := true
	_, err := s.Update(ctx, "alice", created.ID, domain.TaskPatch{Title: &bad, Completed: &completed})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update() error = %v, want ValidationError", err)
	}

	// the completed flag from the same call must not have leaked through
	got, err := s.Get(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Completed || got.Title != "original" {
		t.Error("failed update partially applied")
	}
}

func TestUpdateMissingOrForeignID(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	foreign := mustCreate(t, s, "bob", service.TaskCreate{Title: "bobs"})

	title := "hijack"
	for name, id := range map[string]int64{"absent id": 999, "foreign id": foreign.ID} {
		if _, err := s.Update(ctx, "alice", id, domain.TaskPatch{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("%s: Update() error = %v, want ErrNotFound", name, err)
		}
	}

	// store state unchanged
	aliceTasks, err := s.List(ctx, "alice", domain.TaskFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(aliceTasks) != 0 {
		t.Errorf("alice has %d tasks, want 0", len(aliceTasks))
	}
	got, err := s.Get(ctx, "bob", foreign.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "bobs" {
		t.Errorf("bob's task changed: %q", got.Title)
	}
}

func TestDeleteIsIdempotentSignal(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	created := mustCreate(t, s, "alice", service.TaskCreate{Title: "doomed"})

	deleted, err := s.Delete(ctx, "alice", created.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v; want true, nil", deleted, err)
	}

	if _, err := s.Get(ctx, "alice", created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// second delete reports false, never an error
	deleted, err = s.Delete(ctx, "alice", created.ID)
	if err != nil || deleted {
		t.Errorf("second Delete() = %v, %v; want false, nil", deleted, err)
	}
}

func TestDeleteIgnoresForeignTasks(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	created := mustCreate(t, s, "bob", service.TaskCreate{Title: "bobs"})

	deleted, err := s.Delete(ctx, "alice", created.ID)
	if err != nil || deleted {
		t.Fatalf("Delete() as foreign owner = %v, %v; want false, nil", deleted, err)
	}
	if _, err := s.Get(ctx, "bob", created.ID); err != nil {
		t.Errorf("bob's task vanished: %v", err)
	}
}

func TestListFilters(t *testing.T) {
	s := newTaskService()
	ctx := context.Background()

	mustCreate(t, s, "alice", service.TaskCreate{Title: "Write ABC report", Tags: "work"})
	mustCreate(t, s, "alice", service.TaskCreate{Title: "groceries", Tags: "home,abc"})
	third := mustCreate(t, s, "alice", service.TaskCreate{Title: "water plants", Tags: "home"})
	mustCreate(t, s, "eve", service.TaskCreate{Title: "abc but not alices"})

	completed := true
	if _, err := s.Update(ctx, "alice", third.ID, domain.TaskPatch{Completed: &completed}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	tests := []struct {
		name   string
		filter domain.TaskFilter
		want   []string
	}{
		{
			name:   "no filters lists all owned, id ascending",
			filter: domain.TaskFilter{},
			want:   []string{"Write ABC report", "groceries", "water plants"},
		},
		{
			name:   "query matches title or tags case-insensitively",
			filter: domain.TaskFilter{Query: "abc"},
			want:   []string{"Write ABC report", "groceries"},
		},
		{
			name:   "completed filter",
			filter: domain.TaskFilter{Completed: &completed},
			want:   []string{"water plants"},
		},
		{
			name:   "query and completed combine with AND",
			filter: domain.TaskFilter{Query: "home", Completed: &completed},
			want:   []string{"water plants"},
		},
		{
			name:   "no match",
			filter: domain.TaskFilter{Query: "zzz"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := s.List(ctx, "alice", tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			var titles []string
			for _, task := range tasks {
				titles = append(titles, task.Title)
			}
			if len(titles) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", titles, tt.want)
			}
			for i := range tt.want {
				if titles[i] != tt.want[i] {
					t.Fatalf("List() = %v, want %v", titles, tt.want)
				}
			}
		})
	}
}

type recordingNotifier struct {
	events []service.TaskEvent
}

func (r *recordingNotifier) TaskEvent(owner string, ev service.TaskEvent) {
	r.events = append(r.events, ev)
}

func TestNotifierReceivesChanges(t *testing.T) {
	n := &recordingNotifier{}
	s := service.NewTaskServiceWithNotifier(memstore.NewTasks(), n)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice", service.TaskCreate{Title: "watched"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(n.events) != 2 {
		t.Fatalf("got %d events, want 2", len(n.events))
	}
	if n.events[0].Kind != "created" || n.events[1].Kind != "deleted" {
		t.Errorf("event kinds = %s, %s", n.events[0].Kind, n.events[1].Kind)
	}
	if n.events[1].TaskID != created.ID {
		t.Errorf("delete event id = %d, want %d", n.events[1].TaskID, created.ID)
	}
}
