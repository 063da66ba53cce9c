package order

import "context"

// Repository is the typed store boundary for orders. Implementations live
// in infrastructure; the lifecycle use cases only see this interface.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	GetByMerchantOrderID(ctx context.Context, merchantID, merchantOrderID string) (*Order, error)
}
