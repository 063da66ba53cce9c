package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sandpay-io/sandpay/internal/interfaces/http/handlers"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
}

// SetupPaymentRoutes configures payment routes.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	payments := engine.Group("/api/v1/payments")
	{
		payments.POST("/process", cfg.PaymentHandler.ProcessPayment)
	}
}
