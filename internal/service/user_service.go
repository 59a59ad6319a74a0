package service

import (
	"context"
	"errors"

	"tasktrack/internal/auth"
	"tasktrack/internal/domain"
)

type UserStore interface {
	// Insert returns domain.ErrConflict when the username is taken.
	Insert(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type UserService struct {
	store      UserStore
	bcryptCost int
}

func NewUserService(store UserStore, bcryptCost int) *UserService {
	return &UserService{store: store, bcryptCost: bcryptCost}
}

func validateUsername(username string) error {
	n := len([]rune(username))
	if n < domain.UsernameMinLen || n > domain.UsernameMaxLen {
		return domain.Invalid("username", "must be 3-50 characters")
	}
	return nil
}

func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if len(password) < domain.PasswordMinLen {
		return nil, domain.Invalid("password", "must be at least 6 characters")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Username: username, PasswordHash: hash}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate reports whether the credentials match. An unknown username
// and a wrong password come out the same: false, nil.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return auth.VerifyPassword(password, u.PasswordHash), nil
}
