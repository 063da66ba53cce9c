package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sandpay-io/sandpay/internal/domain/order"
	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/mappers"
	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/models"
)

// OrderRepository is the gorm-backed order store, used when
// storage.driver is "sqlite".
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ order.Repository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(ctx context.Context, ord *order.Order) error {
	model := mappers.OrderToModel(ord)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, ord *order.Order) error {
	model := mappers.OrderToModel(ord)

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("gateway_order_id = ?", model.GatewayOrderID).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"payment_method": model.PaymentMethod,
			"payment_ref":    model.PaymentRef,
			"completed_at":   model.CompletedAt,
			"metadata":       model.Metadata,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %s not found", model.GatewayOrderID)
	}
	return nil
}

func (r *OrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&model).Error; err != nil {
		return nil, fmt.Errorf("order %s not found: %w", gatewayOrderID, err)
	}
	return mappers.OrderToDomain(&model)
}

func (r *OrderRepository) GetByMerchantOrderID(ctx context.Context, merchantID, merchantOrderID string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND merchant_order_id = ?", merchantID, merchantOrderID).
		First(&model).Error; err != nil {
		return nil, fmt.Errorf("order for merchant %s with reference %s not found: %w", merchantID, merchantOrderID, err)
	}
	return mappers.OrderToDomain(&model)
}
