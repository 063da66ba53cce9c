package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sandpay-io/sandpay/internal/interfaces/http/handlers"
)

// OrderRouteConfig holds dependencies for order routes.
type OrderRouteConfig struct {
	OrderHandler *handlers.OrderHandler
}

// SetupOrderRoutes configures order routes.
func SetupOrderRoutes(engine *gin.Engine, cfg *OrderRouteConfig) {
	orders := engine.Group("/api/v1/orders")
	{
		orders.POST("", cfg.OrderHandler.CreateOrder)
		orders.GET("/:order_id", cfg.OrderHandler.GetOrder)
	}
}
