package service

import (
	"context"
	"errors"

	"github.com/inder-dev-pro/greenwave-final/internal/common/clock"
	"github.com/inder-dev-pro/greenwave-final/internal/common/constants"
	commoncrypto "github.com/inder-dev-pro/greenwave-final/internal/common/crypto"
	"github.com/inder-dev-pro/greenwave-final/internal/common/logger"
	sessiondomain "github.com/inder-dev-pro/greenwave-final/internal/session/domain"
	userdomain "github.com/inder-dev-pro/greenwave-final/internal/user/domain"
	userrepo "github.com/inder-dev-pro/greenwave-final/internal/user/repository"
)

// SessionManager is the slice of the session service the auth flows need.
type SessionManager interface {
	Create(ctx context.Context, userID string) (sessiondomain.Handle, error)
	Delete(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (string, error)
}

type AuthService struct {
	users       userrepo.Repository
	sessions    SessionManager
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Users       userrepo.Repository
	Sessions    SessionManager
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	return &AuthService{
		users:       deps.Users,
		sessions:    deps.Sessions,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

// Outcome is the tagged result of a flow. Redirect is populated on every
// path, success or failure, so the boundary always has a navigation target
// while the error (if any) travels separately and stays observable.
type Outcome struct {
	Redirect string
	UserID   string
	Session  sessiondomain.Handle
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (Outcome, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	failed := Outcome{Redirect: constants.RedirectRegister}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return failed, ErrStoreUnavailable.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return failed, ErrStoreUnavailable.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUsernameAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: username already exists")
			incrementRegistrationsRejected("duplicate_username")
			return failed, ErrUsernameTaken
		case errors.Is(err, userrepo.ErrEmailAlreadyExists):
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_email_exists",
			}).Warn("register failed: email already exists")
			incrementRegistrationsRejected("duplicate_email")
			return failed, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		incrementRegistrationsRejected("store_fault")
		return failed, ErrStoreUnavailable.WithCause(err)
	}

	handle, err := s.sessions.Create(ctx, string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "register_session_failed",
		}).Errorf("register failed: session issue error: %v", err)
		return failed, ErrStoreUnavailable.WithCause(err)
	}

	incrementUsersRegistered()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return Outcome{
		Redirect: constants.RedirectDashboard,
		UserID:   string(user.ID),
		Session:  handle,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (Outcome, error) {
	s.log.WithFields(ctx, logger.Fields{
		"identifier": input.UsernameOrEmail,
		"action":     "login_attempt",
	}).Info("login attempt")

	failed := Outcome{Redirect: constants.RedirectLogin}

	user, err := s.users.FindByUsernameOrEmail(ctx, input.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"identifier": input.UsernameOrEmail,
				"action":     "login_user_not_found",
			}).Warn("login failed: not found")
			incrementLoginFailures("not_found")
			return failed, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.UsernameOrEmail,
			"action":     "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		incrementLoginFailures("store_fault")
		return failed, ErrStoreUnavailable.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.UsernameOrEmail,
			"action":     "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementLoginFailures("invalid_password")
		return failed, ErrInvalidCredentials
	}

	handle, err := s.sessions.Create(ctx, string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.UsernameOrEmail,
			"user_id":    string(user.ID),
			"action":     "login_session_failed",
		}).Errorf("login failed: session issue error: %v", err)
		incrementLoginFailures("store_fault")
		return failed, ErrStoreUnavailable.WithCause(err)
	}

	incrementLoginSuccesses()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return Outcome{
		Redirect: constants.RedirectDashboard,
		UserID:   string(user.ID),
		Session:  handle,
	}, nil
}

// Logout revokes the session behind token. Revoking an absent or expired
// session counts as success; store faults are logged and swallowed, the
// caller still navigates away.
func (s *AuthService) Logout(ctx context.Context, token string) Outcome {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_revoke_failed",
		}).Errorf("logout revoke failed: %v", err)
	} else {
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_success",
		}).Info("logout success")
	}

	return Outcome{Redirect: constants.RedirectLogin}
}

// CurrentUser resolves a session token to the owning user.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (userdomain.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return userdomain.User{}, err
	}

	user, err := s.users.FindByID(ctx, userdomain.ID(userID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.User{}, err
		}
		return userdomain.User{}, ErrStoreUnavailable.WithCause(err)
	}

	return user, nil
}
