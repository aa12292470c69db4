package service_test

import (
	"context"

	sessiondomain "github.com/inder-dev-pro/greenwave-final/internal/session/domain"
	userdomain "github.com/inder-dev-pro/greenwave-final/internal/user/domain"
	userrepo "github.com/inder-dev-pro/greenwave-final/internal/user/repository"
)

type mockUserRepo struct {
	createFunc                func(ctx context.Context, user userdomain.User) error
	findByUsernameOrEmailFunc func(ctx context.Context, identifier string) (userdomain.User, error)
	findByIDFunc              func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (userdomain.User, error) {
	if m.findByUsernameOrEmailFunc != nil {
		return m.findByUsernameOrEmailFunc(ctx, identifier)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type mockSessionManager struct {
	createFunc  func(ctx context.Context, userID string) (sessiondomain.Handle, error)
	deleteFunc  func(ctx context.Context, token string) error
	resolveFunc func(ctx context.Context, token string) (string, error)
}

func (m *mockSessionManager) Create(ctx context.Context, userID string) (sessiondomain.Handle, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID)
	}
	return sessiondomain.Handle{Token: "session-token"}, nil
}

func (m *mockSessionManager) Delete(ctx context.Context, token string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, token)
	}
	return nil
}

func (m *mockSessionManager) Resolve(ctx context.Context, token string) (string, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, token)
	}
	return "", nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
	counter   int
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	m.counter++
	return "id-1", nil
}
