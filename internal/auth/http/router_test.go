package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authhttp "github.com/inder-dev-pro/greenwave-final/internal/auth/http"
	"github.com/inder-dev-pro/greenwave-final/internal/auth/service"
	"github.com/inder-dev-pro/greenwave-final/internal/common/clock"
	"github.com/inder-dev-pro/greenwave-final/internal/common/config"
	"github.com/inder-dev-pro/greenwave-final/internal/common/logger"
	sessiondomain "github.com/inder-dev-pro/greenwave-final/internal/session/domain"
	userdomain "github.com/inder-dev-pro/greenwave-final/internal/user/domain"
	userrepo "github.com/inder-dev-pro/greenwave-final/internal/user/repository"
)

type stubUserRepo struct {
	createFunc func(ctx context.Context, user userdomain.User) error
	findFunc   func(ctx context.Context, identifier string) (userdomain.User, error)
	byIDFunc   func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (userdomain.User, error) {
	if s.findFunc != nil {
		return s.findFunc(ctx, identifier)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if s.byIDFunc != nil {
		return s.byIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type stubSessions struct {
	createFunc  func(ctx context.Context, userID string) (sessiondomain.Handle, error)
	deleteFunc  func(ctx context.Context, token string) error
	resolveFunc func(ctx context.Context, token string) (string, error)
}

func (s *stubSessions) Create(ctx context.Context, userID string) (sessiondomain.Handle, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, userID)
	}
	return sessiondomain.Handle{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *stubSessions) Delete(ctx context.Context, token string) error {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, token)
	}
	return nil
}

func (s *stubSessions) Resolve(ctx context.Context, token string) (string, error) {
	if s.resolveFunc != nil {
		return s.resolveFunc(ctx, token)
	}
	return "", nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed_" + password, nil }
func (stubHasher) Compare(hash string, password string) error {
	if hash == "hashed_"+password {
		return nil
	}
	return errMismatch
}

var errMismatch = &mismatchError{}

type mismatchError struct{}

func (*mismatchError) Error() string { return "hash mismatch" }

type stubIDs struct{}

func (stubIDs) NewID() (string, error) { return "user-123", nil }

func setupHandler(t *testing.T, users *stubUserRepo, sessions *stubSessions) http.Handler {
	t.Helper()

	log, err := logger.New("", "test", "error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	auth := service.NewAuthService(service.AuthServiceDeps{
		Users:       users,
		Sessions:    sessions,
		Hasher:      stubHasher{},
		IDGenerator: stubIDs{},
		Clock:       clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		Log:         log,
	})

	cfg := config.AuthConfig{RequestTimeout: time.Second}
	return authhttp.NewHandler(auth, cfg, log)
}

type envelope struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
	UserID   string `json:"user_id"`
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRegister_Success(t *testing.T) {
	handler := setupHandler(t, &stubUserRepo{}, &stubSessions{})

	rec, env := doJSON(t, handler, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"a@x.com","password":"pw123456"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.Redirect != "/dashboard" {
		t.Errorf("expected redirect /dashboard, got %q", env.Redirect)
	}
	if env.UserID != "user-123" {
		t.Errorf("expected user id user-123, got %q", env.UserID)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "session" && c.Value != "" {
			found = true
			if !c.HttpOnly {
				t.Error("expected session cookie to be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("expected a session cookie to be set")
	}
}

func TestRegister_DuplicateUsernameCarriesRedirect(t *testing.T) {
	users := &stubUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) error {
			return userrepo.ErrUsernameAlreadyExists
		},
	}
	handler := setupHandler(t, users, &stubSessions{})

	rec, env := doJSON(t, handler, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"b@x.com","password":"pw123456"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env.Message != "username already exists, choose a different one" {
		t.Errorf("unexpected message %q", env.Message)
	}
	if env.Redirect != "/register" {
		t.Errorf("expected the failure response to still carry redirect /register, got %q", env.Redirect)
	}
}

func TestRegister_InvalidEmailRejectedBeforeCore(t *testing.T) {
	users := &stubUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) error {
			t.Error("core should not be reached with a malformed email")
			return nil
		},
	}
	handler := setupHandler(t, users, &stubSessions{})

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"not-an-email","password":"pw123456"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegister_MethodNotAllowed(t *testing.T) {
	handler := setupHandler(t, &stubUserRepo{}, &stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/register", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &stubUserRepo{
		findFunc: func(ctx context.Context, identifier string) (userdomain.User, error) {
			return userdomain.User{ID: "user-123", Username: "alice", PasswordHash: "hashed_pw123456"}, nil
		},
	}
	handler := setupHandler(t, users, &stubSessions{})

	rec, env := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		`{"usernameOrEmail":"alice","password":"wrong"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env.Message != "invalid credentials, check your password." {
		t.Errorf("unexpected message %q", env.Message)
	}
	if env.Redirect != "/login" {
		t.Errorf("expected redirect /login on failure, got %q", env.Redirect)
	}
}

func TestLogin_Success(t *testing.T) {
	users := &stubUserRepo{
		findFunc: func(ctx context.Context, identifier string) (userdomain.User, error) {
			return userdomain.User{ID: "user-123", Username: "alice", PasswordHash: "hashed_pw123456"}, nil
		},
	}
	handler := setupHandler(t, users, &stubSessions{})

	rec, env := doJSON(t, handler, http.MethodPost, "/api/auth/login",
		`{"usernameOrEmail":"a@x.com","password":"pw123456"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.Redirect != "/dashboard" {
		t.Errorf("expected redirect /dashboard, got %q", env.Redirect)
	}
}

func TestLogout_ClearsCookieAndRedirects(t *testing.T) {
	var deleted string
	sessions := &stubSessions{
		deleteFunc: func(ctx context.Context, token string) error {
			deleted = token
			return nil
		},
	}
	handler := setupHandler(t, &stubUserRepo{}, sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tok-abc"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "tok-abc" {
		t.Errorf("expected session tok-abc revoked, got %q", deleted)
	}

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Redirect != "/login" {
		t.Errorf("expected redirect /login, got %q", env.Redirect)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be cleared")
	}
}

func TestLogout_WithoutSessionSucceeds(t *testing.T) {
	handler := setupHandler(t, &stubUserRepo{}, &stubSessions{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMe_ResolvesSession(t *testing.T) {
	users := &stubUserRepo{
		byIDFunc: func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
			return userdomain.User{ID: id, Username: "alice", Email: "a@x.com"}, nil
		},
	}
	sessions := &stubSessions{
		resolveFunc: func(ctx context.Context, token string) (string, error) {
			return "user-123", nil
		},
	}
	handler := setupHandler(t, users, sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != "user-123" || body.Username != "alice" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestMe_MissingSession(t *testing.T) {
	handler := setupHandler(t, &stubUserRepo{}, &stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
