package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/inder-dev-pro/greenwave-final/internal/auth/service"
	"github.com/inder-dev-pro/greenwave-final/internal/common/config"
	commonerrors "github.com/inder-dev-pro/greenwave-final/internal/common/errors"
	commonhttp "github.com/inder-dev-pro/greenwave-final/internal/common/http"
	"github.com/inder-dev-pro/greenwave-final/internal/common/logger"
	sessionservice "github.com/inder-dev-pro/greenwave-final/internal/session/service"
	userrepo "github.com/inder-dev-pro/greenwave-final/internal/user/repository"
)

const sessionCookieName = "session"

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type authResponse struct {
	Redirect string `json:"redirect"`
	UserID   string `json:"user_id,omitempty"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Handler struct {
	auth     *service.AuthService
	validate *validator.Validate
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(auth *service.AuthService, cfg config.AuthConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		auth:     auth,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		timeout:  cfg.RequestTimeout,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/api/auth/register", commonhttp.RequireMethod(http.MethodPost)(h.register))
	mux.HandleFunc("/api/auth/login", commonhttp.RequireMethod(http.MethodPost)(h.login))
	mux.HandleFunc("/api/auth/logout", commonhttp.RequireMethod(http.MethodPost)(h.logout))
	mux.HandleFunc("/api/auth/me", commonhttp.RequireMethod(http.MethodGet)(h.me))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "", "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, validationMessage(err), "", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	outcome, err := h.auth.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeFlowError(w, r, outcome, err)
		return
	}

	setSessionCookie(w, r, outcome.Session.Token, outcome.Session.ExpiresAt)
	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Redirect: outcome.Redirect,
		UserID:   outcome.UserID,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "", "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, validationMessage(err), "", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	outcome, err := h.auth.Login(ctx, service.LoginInput{
		UsernameOrEmail: req.UsernameOrEmail,
		Password:        req.Password,
	})
	if err != nil {
		h.writeFlowError(w, r, outcome, err)
		return
	}

	setSessionCookie(w, r, outcome.Session.Token, outcome.Session.ExpiresAt)
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Redirect: outcome.Redirect,
		UserID:   outcome.UserID,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	outcome := h.auth.Logout(ctx, token)

	clearSessionCookie(w, r)
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{Redirect: outcome.Redirect})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingSession, "missing session", "", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.auth.CurrentUser(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, sessionservice.ErrInvalidSession) ||
			errors.Is(err, sessionservice.ErrSessionExpired) ||
			errors.Is(err, userrepo.ErrUserNotFound) {
			commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidSession, "invalid session", "", "")
			return
		}
		h.log.Errorf("current user lookup failed: %v", err)
		commonhttp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, meResponse{
		ID:       string(user.ID),
		Username: user.Username,
		Email:    user.Email,
	})
}

// writeFlowError emits the flow error together with the unconditional
// redirect target, so failure responses still carry the navigation signal.
func (h *Handler) writeFlowError(w http.ResponseWriter, r *http.Request, outcome service.Outcome, err error) {
	traceID := commonhttp.TraceIDFromContext(r.Context())

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		commonhttp.WriteErrorEnvelope(w, domainErr.HTTPStatus(), domainErr.Code(), domainErr.Message(), outcome.Redirect, traceID)
		return
	}

	h.log.Errorf("unhandled flow error: %v", err)
	commonhttp.WriteErrorEnvelope(w, http.StatusInternalServerError, commonhttp.CodeUnknown, "internal error", outcome.Redirect, traceID)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	if token == "" {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
}
