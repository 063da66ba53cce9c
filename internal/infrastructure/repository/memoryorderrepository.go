package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandpay-io/sandpay/internal/domain/order"
)

// MemoryOrderRepository keeps orders in process memory for their whole
// lifetime. This is the default store: the gateway simulates payments and
// nothing outlives the process.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*order.Order),
	}
}

var _ order.Repository = (*MemoryOrderRepository)(nil)

func (r *MemoryOrderRepository) Create(ctx context.Context, ord *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[ord.GatewayOrderID()]; exists {
		return fmt.Errorf("order %s already exists", ord.GatewayOrderID())
	}
	r.orders[ord.GatewayOrderID()] = ord
	return nil
}

func (r *MemoryOrderRepository) Update(ctx context.Context, ord *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[ord.GatewayOrderID()]; !exists {
		return fmt.Errorf("order %s not found", ord.GatewayOrderID())
	}
	r.orders[ord.GatewayOrderID()] = ord
	return nil
}

func (r *MemoryOrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ord, exists := r.orders[gatewayOrderID]
	if !exists {
		return nil, fmt.Errorf("order %s not found", gatewayOrderID)
	}
	return ord, nil
}

func (r *MemoryOrderRepository) GetByMerchantOrderID(ctx context.Context, merchantID, merchantOrderID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.MerchantID() == merchantID && ord.MerchantOrderID() == merchantOrderID {
			return ord, nil
		}
	}
	return nil, fmt.Errorf("order for merchant %s with reference %s not found", merchantID, merchantOrderID)
}
