package usecases

import (
	"context"

	"github.com/sandpay-io/sandpay/internal/domain/order"
	apperrors "github.com/sandpay-io/sandpay/internal/shared/errors"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
)

type GetOrderUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

func NewGetOrderUseCase(orderRepo order.Repository, log logger.Interface) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo: orderRepo,
		logger:    log,
	}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, gatewayOrderID string) (*order.Order, error) {
	ord, err := uc.orderRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, apperrors.NewNotFoundError(apperrors.CodeOrderNotFound, "order not found")
	}
	return ord, nil
}
