package cleanup

import (
	"context"
	"time"

	"github.com/inder-dev-pro/greenwave-final/internal/common/constants"
	"github.com/inder-dev-pro/greenwave-final/internal/common/logger"
	"github.com/inder-dev-pro/greenwave-final/internal/observability/metrics"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartSessionCleanup periodically sweeps expired session rows. Expiry is
// already enforced at resolve time; the sweep only reclaims storage.
func StartSessionCleanup(ctx context.Context, repo ExpiredDeleter, log *logger.Logger) {
	ticker := time.NewTicker(constants.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Errorf("session cleanup failed: %v", err)
				continue
			}
			if deleted > 0 {
				metrics.SessionsCleanupDeleted.Add(float64(deleted))
				log.Infof("session cleanup: deleted %d expired sessions", deleted)
			}
		}
	}
}
