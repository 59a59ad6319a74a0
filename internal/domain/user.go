package domain

import "time"

const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
