package config

import (
	"fmt"
	"os"
	"time"

	"github.com/inder-dev-pro/greenwave-final/internal/common/constants"
	commonerrors "github.com/inder-dev-pro/greenwave-final/internal/common/errors"
)

type AuthConfig struct {
	HTTPPort       string
	DatabaseURL    string
	SessionSecret  string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

func LoadAuthConfig() (AuthConfig, error) {
	sessionSecret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return AuthConfig{}, err
	}

	if err := validateSessionSecret(sessionSecret); err != nil {
		return AuthConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		HTTPPort:       getEnv("AUTH_HTTP_PORT", constants.DefaultAuthHTTPPort),
		DatabaseURL:    databaseURL,
		SessionSecret:  sessionSecret,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		RequestTimeout: getDurationEnv("AUTH_REQUEST_TIMEOUT", constants.DefaultAuthRequestTimeout),
	}, nil
}

func validateSessionSecret(secret string) error {
	if len(secret) < constants.SessionSecretMinLen {
		return commonerrors.ErrInvalidSessionSecret.WithCause(
			fmt.Errorf("got %d bytes", len(secret)),
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
