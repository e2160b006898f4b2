package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portal-identity/internal/api/http"
	"github.com/spec-kit/portal-identity/internal/api/http/handlers"
	"github.com/spec-kit/portal-identity/internal/auth"
	"github.com/spec-kit/portal-identity/internal/config"
	"github.com/spec-kit/portal-identity/internal/observability"
	"github.com/spec-kit/portal-identity/internal/persistence"
	"github.com/spec-kit/portal-identity/internal/repository"
	"github.com/spec-kit/portal-identity/internal/service"
	"github.com/spec-kit/portal-identity/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	var (
		pg           *persistence.Postgres
		employeeRepo repository.EmployeeRepository
	)
	switch cfg.Directory.Backend {
	case config.DirectoryBackendPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		employeeRepo = repository.NewPostgresEmployeeRepository(pg.PoolHandle())
	default:
		employeeRepo = repository.NewMemoryEmployeeRepository()
	}

	var redis *persistence.Redis
	if cfg.Auth.SessionStoreEnabled {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
	}
	sessions := session.NewStore(redis.ClientHandle(), cfg.Auth.SessionTTL())

	creds, err := auth.NewCredentialVerifier(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init credential verifier", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Employees: employeeRepo,
		Creds:     creds,
		Sessions:  sessions,
		Logger:    logger,
	})
	directoryService := service.NewDirectoryService(employeeRepo, creds, logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), employeeRepo, sessions)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(directoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
