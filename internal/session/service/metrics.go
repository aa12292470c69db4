package service

import (
	"github.com/inder-dev-pro/greenwave-final/internal/observability/metrics"
)

func incrementSessionsIssued() {
	metrics.SessionsIssued.Inc()
}

func incrementSessionsRevoked() {
	metrics.SessionsRevoked.Inc()
}

func incrementSessionsExpired() {
	metrics.SessionsExpired.Inc()
}
