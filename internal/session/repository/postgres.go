package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/inder-dev-pro/greenwave-final/internal/common/db"
	"github.com/inder-dev-pro/greenwave-final/internal/session/domain"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, session domain.Session) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		session.ID,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return db.HandleExecError(err, "create session", start)
}

func (r *PgRepository) FindByID(ctx context.Context, id string) (domain.Session, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, created_at, expires_at
		 FROM sessions
		 WHERE id = $1`,
		id,
	)

	var session domain.Session
	err := row.Scan(&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err := db.HandleQueryError(err, ErrSessionNotFound, "find session by id", start); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (r *PgRepository) DeleteByID(ctx context.Context, id string) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM sessions WHERE id = $1`,
		id,
	)
	return db.HandleExecError(err, "delete session", start)
}

func (r *PgRepository) DeleteExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	res, err := r.pool.Exec(
		ctx,
		`DELETE FROM sessions WHERE expires_at < NOW()`,
	)
	if err != nil {
		return 0, db.HandleExecError(err, "delete expired sessions", start)
	}
	db.MeasureQueryDuration("delete expired sessions", start)
	return res.RowsAffected(), nil
}
