package mappers

import (
	"fmt"

	"github.com/sandpay-io/sandpay/internal/domain/order"
	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/models"
)

func OrderToModel(o *order.Order) *models.OrderModel {
	model := &models.OrderModel{
		GatewayOrderID:  o.GatewayOrderID(),
		MerchantID:      o.MerchantID(),
		MerchantOrderID: o.MerchantOrderID(),
		AmountInPaisa:   o.Amount().AmountInPaisa(),
		Currency:        o.Amount().Currency(),
		Status:          o.Status().String(),
		CallbackURL:     o.CallbackURL(),
		ReturnURL:       o.ReturnURL(),
		OrderToken:      o.OrderToken(),
		TestMode:        o.TestMode(),
		PaymentRef:      o.PaymentRef(),
		CompletedAt:     o.CompletedAt(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if pm := o.PaymentMethod(); pm != nil {
		method := pm.String()
		model.PaymentMethod = &method
	}
	if len(o.Metadata()) > 0 {
		model.Metadata = o.Metadata()
	}

	return model
}

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	status := vo.OrderStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", model.Status)
	}

	var method *vo.PaymentMethod
	if model.PaymentMethod != nil {
		pm, err := vo.NewPaymentMethod(*model.PaymentMethod)
		if err != nil {
			return nil, fmt.Errorf("invalid payment method: %w", err)
		}
		method = &pm
	}

	metadata := map[string]interface{}(model.Metadata)

	return order.Reconstruct(order.ReconstructParams{
		GatewayOrderID:  model.GatewayOrderID,
		MerchantID:      model.MerchantID,
		MerchantOrderID: model.MerchantOrderID,
		Amount:          vo.NewMoney(model.AmountInPaisa, model.Currency),
		PaymentMethod:   method,
		Status:          status,
		CallbackURL:     model.CallbackURL,
		ReturnURL:       model.ReturnURL,
		OrderToken:      model.OrderToken,
		TestMode:        model.TestMode,
		PaymentRef:      model.PaymentRef,
		CompletedAt:     model.CompletedAt,
		Metadata:        metadata,
		Version:         model.Version,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}), nil
}
