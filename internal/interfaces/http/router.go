package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	orderUsecases "github.com/sandpay-io/sandpay/internal/application/order/usecases"
	"github.com/sandpay-io/sandpay/internal/infrastructure/metrics"
	"github.com/sandpay-io/sandpay/internal/interfaces/http/handlers"
	"github.com/sandpay-io/sandpay/internal/interfaces/http/middleware"
	"github.com/sandpay-io/sandpay/internal/interfaces/http/routes"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
)

// RouterConfig holds everything needed to assemble the gateway API.
type RouterConfig struct {
	OrderHandler   *handlers.OrderHandler
	PaymentHandler *handlers.PaymentHandler
	RateLimiter    *middleware.RateLimiter
	Logger         logger.Interface
}

// NewRouter builds the gin engine with the full middleware chain and routes.
func NewRouter(cfg *RouterConfig) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.CORS(),
		metrics.PrometheusMiddleware(),
	)
	if cfg.RateLimiter != nil {
		engine.Use(cfg.RateLimiter.Limit())
	}

	engine.GET("/health", handlers.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupOrderRoutes(engine, &routes.OrderRouteConfig{
		OrderHandler: cfg.OrderHandler,
	})
	routes.SetupPaymentRoutes(engine, &routes.PaymentRouteConfig{
		PaymentHandler: cfg.PaymentHandler,
	})

	return engine, nil
}

// registerValidators installs gateway-specific binding validations on
// gin's validator engine.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("registeredurl", func(fl validator.FieldLevel) bool {
		return orderUsecases.IsRegisteredURL(fl.Field().String())
	})
}
