package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of successfully registered users",
		},
	)

	RegistrationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_rejected_total",
			Help: "Total number of rejected registrations",
		},
		[]string{"reason"},
	)

	LoginSuccesses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_successes_total",
			Help: "Total number of successful logins",
		},
	)

	LoginFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of failed logins",
		},
		[]string{"reason"},
	)

	SessionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_issued_total",
			Help: "Total number of sessions issued",
		},
	)

	SessionsRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_revoked_total",
			Help: "Total number of sessions revoked",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of sessions rejected as expired",
		},
	)

	SessionsCleanupDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_cleanup_deleted_total",
			Help: "Total number of expired sessions deleted during cleanup",
		},
	)
)
