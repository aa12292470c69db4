package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/inder-dev-pro/greenwave-final/internal/common/db"
	"github.com/inder-dev-pro/greenwave-final/internal/user/domain"
)

const pgUniqueViolation = "23505"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		string(user.ID),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			db.MeasureQueryDuration("create user", start)
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrEmailAlreadyExists
			}
			return ErrUsernameAlreadyExists
		}
		return db.HandleExecError(err, "create user", start)
	}
	db.MeasureQueryDuration("create user", start)
	return nil
}

// FindByUsernameOrEmail matches either column. When an identifier collides
// across fields (one user's username equals another user's email), the
// username match wins; the ORDER BY keeps the choice deterministic.
func (r *PgRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users
		 WHERE username = $1 OR email = $1
		 ORDER BY (username = $1) DESC
		 LIMIT 1`,
		identifier,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by username or email", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users
		 WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
