package repository

import (
	"context"
	"errors"

	"github.com/inder-dev-pro/greenwave-final/internal/session/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type Repository interface {
	Create(ctx context.Context, session domain.Session) error
	FindByID(ctx context.Context, id string) (domain.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
