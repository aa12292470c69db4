package service

import (
	"github.com/inder-dev-pro/greenwave-final/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementRegistrationsRejected(reason string) {
	metrics.RegistrationsRejected.WithLabelValues(reason).Inc()
}

func incrementLoginSuccesses() {
	metrics.LoginSuccesses.Inc()
}

func incrementLoginFailures(reason string) {
	metrics.LoginFailures.WithLabelValues(reason).Inc()
}
