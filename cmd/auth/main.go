package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/inder-dev-pro/greenwave-final/internal/auth/http"
	authservice "github.com/inder-dev-pro/greenwave-final/internal/auth/service"
	"github.com/inder-dev-pro/greenwave-final/internal/common/clock"
	"github.com/inder-dev-pro/greenwave-final/internal/common/config"
	"github.com/inder-dev-pro/greenwave-final/internal/common/constants"
	commoncrypto "github.com/inder-dev-pro/greenwave-final/internal/common/crypto"
	"github.com/inder-dev-pro/greenwave-final/internal/common/db"
	commonhttp "github.com/inder-dev-pro/greenwave-final/internal/common/http"
	"github.com/inder-dev-pro/greenwave-final/internal/common/logger"
	srv "github.com/inder-dev-pro/greenwave-final/internal/common/server"
	sessioncleanup "github.com/inder-dev-pro/greenwave-final/internal/session/cleanup"
	sessionrepo "github.com/inder-dev-pro/greenwave-final/internal/session/repository"
	sessionservice "github.com/inder-dev-pro/greenwave-final/internal/session/service"
	userrepo "github.com/inder-dev-pro/greenwave-final/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "auth", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	realClock := clock.NewRealClock()
	hasher := commoncrypto.NewBcryptHasher()
	idGenerator := commoncrypto.NewUUIDGenerator()

	sessionStore := sessionrepo.NewPgRepository(pool)

	sessions := sessionservice.NewManager(
		sessionservice.ManagerDeps{
			Repo:        sessionStore,
			IDGenerator: idGenerator,
			Clock:       realClock,
			Log:         log,
		},
		sessionservice.ManagerConfig{
			Secret: cfg.SessionSecret,
			TTL:    cfg.SessionTTL,
		},
	)

	auth := authservice.NewAuthService(authservice.AuthServiceDeps{
		Users:       userrepo.NewPgRepository(pool),
		Sessions:    sessions,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Clock:       realClock,
		Log:         log,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sessioncleanup.StartSessionCleanup(ctx, sessionStore, log)

	handler := authhttp.NewHandler(auth, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	finalHandler := commonhttp.TraceIDMiddleware(
		commonhttp.RecoveryMiddleware(log)(
			commonhttp.MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)(mux),
		),
	)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("auth service: stopping cleanup goroutine")
			cancel()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "auth", shutdownHooks)
}
