package usecases

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sandpay-io/sandpay/internal/domain/order"
	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/infrastructure/metrics"
	apperrors "github.com/sandpay-io/sandpay/internal/shared/errors"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
)

type CreateOrderCommand struct {
	MerchantID      string
	MerchantOrderID string
	AmountInPaisa   int64
	Currency        string
	CallbackURL     string
	ReturnURL       string
	TestMode        bool
	Metadata        map[string]interface{}
}

type CreateOrderUseCase struct {
	orderRepo order.Repository
	logger    logger.Interface
}

func NewCreateOrderUseCase(orderRepo order.Repository, log logger.Interface) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		logger:    log,
	}
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if cmd.AmountInPaisa <= 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeValidation, "amount must be positive")
	}
	if err := validateRegisteredURL(cmd.CallbackURL); err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeURLNotRegistered, "callback URL is not registered", err.Error())
	}
	if cmd.ReturnURL != "" {
		if err := validateRegisteredURL(cmd.ReturnURL); err != nil {
			return nil, apperrors.NewValidationError(apperrors.CodeURLNotRegistered, "return URL is not registered", err.Error())
		}
	}

	amount := vo.NewMoney(cmd.AmountInPaisa, cmd.Currency)
	ord, err := order.NewOrder(cmd.MerchantID, cmd.MerchantOrderID, amount,
		cmd.CallbackURL, cmd.ReturnURL, cmd.TestMode, cmd.Metadata)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeValidation, "invalid order", err.Error())
	}

	if err := uc.orderRepo.Create(ctx, ord); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	uc.logger.Infow("order created",
		"gateway_order_id", ord.GatewayOrderID(),
		"merchant_id", ord.MerchantID(),
		"merchant_order_id", ord.MerchantOrderID(),
		"amount", ord.Amount().String(),
		"test_mode", ord.TestMode(),
	)

	return ord, nil
}

// IsRegisteredURL reports whether raw satisfies the callback/return URL
// policy. Used by the HTTP layer's binding validator.
func IsRegisteredURL(raw string) bool {
	return validateRegisteredURL(raw) == nil
}

// validateRegisteredURL enforces the callback/return URL policy: HTTPS
// anywhere, or plain HTTP only against localhost for sandbox testing.
func validateRegisteredURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}

	switch strings.ToLower(u.Scheme) {
	case "https":
		return nil
	case "http":
		host := u.Hostname()
		if host == "localhost" || host == "127.0.0.1" {
			return nil
		}
		return fmt.Errorf("plain HTTP is only allowed for localhost, got %q", host)
	default:
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
}
