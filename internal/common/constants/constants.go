package constants

import "time"

const (
	UsernameMinLength   = 3
	UsernameMaxLength   = 32
	PasswordMinLength   = 8
	PasswordMaxLength   = 72
	SessionSecretMinLen = 32

	BcryptCost = 12

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultAuthHTTPPort       = "8081"
	DefaultAuthRequestTimeout = 5 * time.Second

	DefaultSessionTTL      = 7 * 24 * time.Hour
	SessionCleanupInterval = time.Hour

	RedirectDashboard = "/dashboard"
	RedirectRegister  = "/register"
	RedirectLogin     = "/login"

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
