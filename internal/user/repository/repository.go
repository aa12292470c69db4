package repository

import (
	"context"
	"errors"

	"github.com/inder-dev-pro/greenwave-final/internal/user/domain"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)

// Repository is the persistence boundary for users. Create relies on the
// store's unique constraints as the sole uniqueness enforcement; there is
// no separate check-then-insert step.
type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByUsernameOrEmail(ctx context.Context, identifier string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}
