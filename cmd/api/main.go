package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/goldendrops/storefront/internal/api/http"
	"github.com/goldendrops/storefront/internal/api/http/handlers"
	"github.com/goldendrops/storefront/internal/auth"
	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/events"
	"github.com/goldendrops/storefront/internal/observability"
	"github.com/goldendrops/storefront/internal/persistence"
	"github.com/goldendrops/storefront/internal/repository"
	"github.com/goldendrops/storefront/internal/service"
	"github.com/goldendrops/storefront/internal/worker"
)

const notificationQueueSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	categoryRepo := repository.NewCachedCategoryRepository(
		repository.NewCategoryRepository(pool), redis.Client, cfg.Redis.CategoryTTL(), logger)
	credentials := repository.NewCredentialStore(userRepo, adminRepo)

	notifications := worker.NewNotificationWorker(events.NewInMemoryDispatcher(logger), notificationQueueSize, logger)
	worker.StartNotificationWorker(service.NewNotificationService(notifications, logger, cfg.Notification), notifications)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret)
	guard := auth.NewGuard(tokens, credentials, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Credentials: credentials,
		UserRepo:    userRepo,
		AdminRepo:   adminRepo,
		Tokens:      tokens,
		Dispatcher:  notifications,
		Logger:      logger,
	})
	catalogService := service.NewCatalogService(categoryRepo, productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, notifications, logger)
	adminService := service.NewAdminService(userRepo, productRepo, orderRepo, notifications, logger)
	profileService := service.NewProfileService(userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:       handlers.NewAuthHandler(authService),
		Profile:    handlers.NewProfileHandler(profileService),
		Categories: handlers.NewCategoryHandler(catalogService),
		Products:   handlers.NewProductHandler(catalogService),
		Orders:     handlers.NewOrderHandler(orderService),
		Admin:      handlers.NewAdminHandler(adminService, orderService),
		Guard:      guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := notifications.Stop(shutdownCtx); err != nil {
		logger.Warn("notification worker shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
