package mappers

import (
	"fmt"

	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/domain/transaction"
	"github.com/sandpay-io/sandpay/internal/infrastructure/persistence/models"
)

func TransactionToModel(t *transaction.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		TransactionID: t.ID(),
		OrderID:       t.OrderID(),
		AmountInPaisa: t.Amount().AmountInPaisa(),
		Currency:      t.Amount().Currency(),
		PaymentMethod: t.PaymentMethod().String(),
		Status:        t.Status().String(),
		FailureReason: t.FailureReason(),
		CardLast4:     t.CardLast4(),
		Timestamp:     t.Timestamp(),
	}
}

func TransactionToDomain(model *models.TransactionModel) (*transaction.Transaction, error) {
	method, err := vo.NewPaymentMethod(model.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid payment method: %w", err)
	}

	status := transaction.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid transaction status: %s", model.Status)
	}

	return transaction.Reconstruct(transaction.ReconstructParams{
		ID:            model.TransactionID,
		OrderID:       model.OrderID,
		Amount:        vo.NewMoney(model.AmountInPaisa, model.Currency),
		PaymentMethod: method,
		Status:        status,
		FailureReason: model.FailureReason,
		CardLast4:     model.CardLast4,
		Timestamp:     model.Timestamp,
	}), nil
}
