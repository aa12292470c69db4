package service

import (
	"net/http"

	commonerrors "github.com/inder-dev-pro/greenwave-final/internal/common/errors"
)

// The closed taxonomy surfaced by the auth flows. Messages are the stable,
// user-facing wording; only these five kinds ever cross the boundary.
var (
	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username already exists, choose a different one",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"email already exists, use a different one",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusUnauthorized,
		"email or username doesn't exist, try again.",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials, check your password.",
	)

	// ErrStoreUnavailable absorbs every persistence or session fault.
	// The cause is logged internally and never reaches the caller.
	ErrStoreUnavailable = commonerrors.NewDomainError(
		"STORE_UNAVAILABLE",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"unexpected error, try again later",
	)
)
