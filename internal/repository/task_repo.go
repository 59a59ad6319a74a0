package repository

import (
	"context"
	"errors"
	"fmt"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

var _ service.TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, COALESCE(tags, ''), due_date, completed, created_at, updated_at, created_by, updated_by`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Tags, &t.DueDate, &t.Completed,
		&t.CreatedAt, &t.UpdatedAt, &t.CreatedBy, &t.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, tags, due_date, completed, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		t.Title, t.Tags, t.DueDate, t.Completed, t.CreatedAt, t.UpdatedAt, t.CreatedBy, t.UpdatedBy,
	).Scan(&t.ID)
}

func (r *TaskRepository) GetOwned(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND created_by = $2`,
		id, owner,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, owner string, f domain.TaskFilter) ([]*domain.Task, error) {
	sql := `SELECT ` + taskColumns + ` FROM tasks WHERE created_by = $1`
	args := []any{owner}

	if f.Query != "" {
		args = append(args, f.Query)
		n := len(args)
		sql += fmt.Sprintf(` AND (title ILIKE '%%' || $%d || '%%' OR COALESCE(tags, '') ILIKE '%%' || $%d || '%%')`, n, n)
	}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		sql += fmt.Sprintf(` AND completed = $%d`, len(args))
	}
	sql += ` ORDER BY id ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// Update rewrites the whole record in a single statement; the row lock
// taken by UPDATE is what serializes concurrent writers on one task.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, tags = NULLIF($2, ''), due_date = $3, completed = $4, updated_at = $5, updated_by = $6
		 WHERE id = $7 AND created_by = $8`,
		t.Title, t.Tags, t.DueDate, t.Completed, t.UpdatedAt, t.UpdatedBy, t.ID, t.CreatedBy,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) Delete(ctx context.Context, owner string, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND created_by = $2`,
		id, owner,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
