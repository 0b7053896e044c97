package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tcghub/tcghub-backend/api/controllers"
	"github.com/tcghub/tcghub-backend/api/routes"
	authservice "github.com/tcghub/tcghub-backend/internal/auth"
	"github.com/tcghub/tcghub-backend/internal/cards"
	"github.com/tcghub/tcghub-backend/internal/checkout"
	"github.com/tcghub/tcghub-backend/internal/collections"
	"github.com/tcghub/tcghub-backend/internal/inventory"
	"github.com/tcghub/tcghub-backend/internal/orders"
	"github.com/tcghub/tcghub-backend/internal/shops"
	"github.com/tcghub/tcghub-backend/internal/users"
	"github.com/tcghub/tcghub-backend/pkg/auth/session"
	"github.com/tcghub/tcghub-backend/pkg/config"
	"github.com/tcghub/tcghub-backend/pkg/db"
	"github.com/tcghub/tcghub-backend/pkg/logger"
	"github.com/tcghub/tcghub-backend/pkg/metrics"
	"github.com/tcghub/tcghub-backend/pkg/migrate"
	redisclient "github.com/tcghub/tcghub-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "tcghub-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api terminated", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	cache, err := redisclient.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer cache.Close()

	sessions, err := session.NewManager(cache, cfg.JWT)
	if err != nil {
		return err
	}

	gormDB := dbClient.DB()
	inventoryRepo := inventory.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	usersRepo := users.NewRepository(gormDB)
	collectionsRepo := collections.NewRepository(gormDB)
	cardsRepo := cards.NewRepository(gormDB)
	shopsRepo := shops.NewRepository(gormDB)

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	requestMetrics := metrics.NewRequestMetrics(prometheus.DefaultRegisterer)

	checkoutService, err := checkout.NewService(dbClient, inventoryRepo, ordersRepo, checkoutMetrics, logg)
	if err != nil {
		return err
	}
	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		return err
	}
	authService, err := authservice.NewService(dbClient, usersRepo, collectionsRepo, sessions, cfg.JWT, cfg.Password)
	if err != nil {
		return err
	}
	cardsService, err := cards.NewService(cardsRepo)
	if err != nil {
		return err
	}
	shopsService, err := shops.NewService(shopsRepo)
	if err != nil {
		return err
	}
	collectionsService, err := collections.NewService(collectionsRepo)
	if err != nil {
		return err
	}

	router := routes.New(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Metrics:     requestMetrics,
		Sessions:    sessions,
		Health:      controllers.NewHealthController(dbClient, cache),
		Auth:        controllers.NewAuthController(authService, cfg.JWT),
		Cards:       controllers.NewCardsController(cardsService, shopsService),
		Shops:       controllers.NewShopsController(shopsService),
		Collections: controllers.NewCollectionsController(collectionsService),
		Checkout:    controllers.NewCheckoutController(checkoutService),
		Orders:      controllers.NewOrdersController(ordersService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "api listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
