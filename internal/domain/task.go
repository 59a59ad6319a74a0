package domain

import "time"

const TitleMaxLen = 140

type Task struct {
	ID        int64      `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Tags      string     `db:"tags" json:"tags,omitempty"`
	DueDate   *time.Time `db:"due_date" json:"due_date,omitempty"`
	Completed bool       `db:"completed" json:"completed"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	UpdatedBy string     `db:"updated_by" json:"updated_by"`
}

// TaskPatch carries a partial update. A nil field means "leave unchanged";
// there is deliberately no way to clear a field back to empty.
type TaskPatch struct {
	Title     *string    `json:"title,omitempty"`
	Tags      *string    `json:"tags,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
}

// TaskFilter narrows a listing. Query matches title or tags
// case-insensitively; a nil Completed means "either".
type TaskFilter struct {
	Query     string
	Completed *bool
}
