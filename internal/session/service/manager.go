package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inder-dev-pro/greenwave-final/internal/common/clock"
	commoncrypto "github.com/inder-dev-pro/greenwave-final/internal/common/crypto"
	"github.com/inder-dev-pro/greenwave-final/internal/common/logger"
	"github.com/inder-dev-pro/greenwave-final/internal/session/domain"
	sessionrepo "github.com/inder-dev-pro/greenwave-final/internal/session/repository"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Manager issues and revokes sessions. The token handed to clients is a
// signed wrapper around the session id; the server-side row stays the
// source of truth, so deleting the row revokes the token immediately.
type Manager struct {
	repo        sessionrepo.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	secret      []byte
	ttl         time.Duration
	log         *logger.Logger
}

type ManagerDeps struct {
	Repo        sessionrepo.Repository
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type ManagerConfig struct {
	Secret string
	TTL    time.Duration
}

func NewManager(deps ManagerDeps, cfg ManagerConfig) *Manager {
	return &Manager{
		repo:        deps.Repo,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		secret:      []byte(cfg.Secret),
		ttl:         cfg.TTL,
		log:         deps.Log,
	}
}

// Create issues a fresh session for userID. Each call creates an
// independent session; existing sessions for the same user are untouched.
func (m *Manager) Create(ctx context.Context, userID string) (domain.Handle, error) {
	id, err := m.idGenerator.NewID()
	if err != nil {
		return domain.Handle{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := m.clock.Now()
	session := domain.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.repo.Create(ctx, session); err != nil {
		return domain.Handle{}, err
	}

	token, err := m.signToken(session)
	if err != nil {
		// The orphaned row is unusable without a signed token; best effort removal.
		if delErr := m.repo.DeleteByID(ctx, session.ID); delErr != nil {
			m.log.WithFields(ctx, logger.Fields{
				"session_id": session.ID,
				"action":     "session_orphan_delete_failed",
			}).Errorf("failed to delete orphaned session: %v", delErr)
		}
		return domain.Handle{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	incrementSessionsIssued()
	m.log.WithFields(ctx, logger.Fields{
		"user_id":    userID,
		"session_id": session.ID,
		"action":     "session_created",
	}).Info("session created")

	return domain.Handle{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Resolve maps a token back to the owning user id. Expired and unknown
// sessions are indistinguishable from revoked ones to the caller.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	sid, err := m.parseToken(token)
	if err != nil {
		return "", ErrInvalidSession
	}

	session, err := m.repo.FindByID(ctx, sid)
	if err != nil {
		if errors.Is(err, sessionrepo.ErrSessionNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}

	if m.clock.Now().After(session.ExpiresAt) {
		incrementSessionsExpired()
		return "", ErrSessionExpired
	}

	return session.UserID, nil
}

// Delete revokes the session behind token. An unparseable token or an
// already absent session is a no-op, not an error.
func (m *Manager) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sid, err := m.parseToken(token)
	if err != nil {
		return nil
	}

	if err := m.repo.DeleteByID(ctx, sid); err != nil {
		if errors.Is(err, sessionrepo.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	incrementSessionsRevoked()
	m.log.WithFields(ctx, logger.Fields{
		"session_id": sid,
		"action":     "session_revoked",
	}).Info("session revoked")

	return nil
}

func (m *Manager) DeleteExpired(ctx context.Context) (int64, error) {
	return m.repo.DeleteExpired(ctx)
}

func (m *Manager) signToken(session domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"sub": session.UserID,
		"exp": session.ExpiresAt.Unix(),
		"iat": session.CreatedAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *Manager) parseToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSession
	}

	return sid, nil
}
