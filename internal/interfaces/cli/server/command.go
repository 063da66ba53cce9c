package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	orderUsecases "github.com/sandpay-io/sandpay/internal/application/order/usecases"
	paymentUsecases "github.com/sandpay-io/sandpay/internal/application/payment/usecases"
	"github.com/sandpay-io/sandpay/internal/domain/order"
	"github.com/sandpay-io/sandpay/internal/domain/transaction"
	"github.com/sandpay-io/sandpay/internal/infrastructure/config"
	"github.com/sandpay-io/sandpay/internal/infrastructure/database"
	"github.com/sandpay-io/sandpay/internal/infrastructure/repository"
	"github.com/sandpay-io/sandpay/internal/infrastructure/webhook"
	httpRouter "github.com/sandpay-io/sandpay/internal/interfaces/http"
	"github.com/sandpay-io/sandpay/internal/interfaces/http/handlers"
	"github.com/sandpay-io/sandpay/internal/interfaces/http/middleware"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the gateway HTTP server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting gateway",
		"environment", env,
		"storage_driver", cfg.Storage.Driver,
		"webhook_max_retries", cfg.Webhook.MaxRetries,
	)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	orderRepo, txnRepo, err := buildRepositories(cfg)
	if err != nil {
		return err
	}

	backoff := webhook.NewBackoffSchedulerWith(
		time.Duration(cfg.Webhook.BackoffBaseMS)*time.Millisecond,
		time.Duration(cfg.Webhook.BackoffMaxMS)*time.Millisecond,
		time.Duration(cfg.Webhook.BackoffJitter)*time.Millisecond,
	)
	executor := webhook.NewExecutor(cfg.Webhook.AttemptTimeoutDuration())
	dispatcher := webhook.NewDispatcher(executor, backoff, log)

	secrets := paymentUsecases.WebhookSecrets{
		Test: cfg.Webhook.TestSecret,
		Live: cfg.Webhook.LiveSecret,
	}

	createOrderUC := orderUsecases.NewCreateOrderUseCase(orderRepo, log)
	getOrderUC := orderUsecases.NewGetOrderUseCase(orderRepo, log)
	processPaymentUC := paymentUsecases.NewProcessPaymentUseCase(
		orderRepo, txnRepo, dispatcher, secrets, cfg.Webhook.MaxRetries, log)

	routerCfg := &httpRouter.RouterConfig{
		OrderHandler:   handlers.NewOrderHandler(createOrderUC, getOrderUC, log),
		PaymentHandler: handlers.NewPaymentHandler(processPaymentUC, log),
		Logger:         log,
	}

	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		routerCfg.RateLimiter = middleware.NewRateLimiter(
			redisClient,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		)
	}

	engine, err := httpRouter.NewRouter(routerCfg)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Infow("server stopped")
	return nil
}

func buildRepositories(cfg *config.Config) (order.Repository, transaction.Repository, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return repository.NewMemoryOrderRepository(), repository.NewMemoryTransactionRepository(), nil
	case "sqlite":
		db, err := database.Init(&cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repository.NewOrderRepository(db), repository.NewTransactionRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
