package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/galsan/jungang-heights-api/internal/api/http"
	"github.com/galsan/jungang-heights-api/internal/api/http/handlers"
	"github.com/galsan/jungang-heights-api/internal/auth"
	"github.com/galsan/jungang-heights-api/internal/config"
	"github.com/galsan/jungang-heights-api/internal/events"
	"github.com/galsan/jungang-heights-api/internal/observability"
	"github.com/galsan/jungang-heights-api/internal/persistence"
	"github.com/galsan/jungang-heights-api/internal/repository"
	"github.com/galsan/jungang-heights-api/internal/service"
	"github.com/galsan/jungang-heights-api/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	regRepo := repository.NewRegistrationRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher()

	registrationService := service.NewRegistrationService(regRepo, dispatcher)
	exportService := service.NewExportService(regRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessions := auth.NewSessionManager(redis, cfg.Admin.Password, cfg.Admin.SessionTTL(), logger)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	secureCookies := cfg.App.Env == "production"
	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	publicHandler := handlers.NewPublicHandler(registrationService)
	adminHandler := handlers.NewAdminHandler(registrationService, exportService, sessions, cfg.Admin, secureCookies)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   healthHandler,
		Public:   publicHandler,
		Admin:    adminHandler,
		Sessions: sessions,
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
