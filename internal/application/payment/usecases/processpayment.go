package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandpay-io/sandpay/internal/application/payment/simulation"
	"github.com/sandpay-io/sandpay/internal/domain/order"
	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/domain/transaction"
	"github.com/sandpay-io/sandpay/internal/infrastructure/metrics"
	"github.com/sandpay-io/sandpay/internal/infrastructure/webhook"
	"github.com/sandpay-io/sandpay/internal/shared/biztime"
	apperrors "github.com/sandpay-io/sandpay/internal/shared/errors"
	"github.com/sandpay-io/sandpay/internal/shared/goroutine"
	"github.com/sandpay-io/sandpay/internal/shared/logger"
)

// WebhookDispatcher delivers a signed notification with retries. The use
// case fires it on a background goroutine and never awaits the result.
type WebhookDispatcher interface {
	Dispatch(ctx context.Context, req webhook.Request) webhook.DeliveryResult
}

// WebhookSecrets holds the HMAC keys; the order's test_mode flag selects
// which one signs its notifications.
type WebhookSecrets struct {
	Test string
	Live string
}

func (s WebhookSecrets) For(testMode bool) string {
	if testMode {
		return s.Test
	}
	return s.Live
}

// ProcessPaymentCommand is a payment-processing event for an existing order.
type ProcessPaymentCommand struct {
	GatewayOrderID string
	AmountInPaisa  int64
	Currency       string
	PaymentMethod  string
	Details        simulation.Details
}

// ProcessPaymentResult is returned to the original caller, independent of
// webhook delivery outcome.
type ProcessPaymentResult struct {
	Transaction *transaction.Transaction
	OrderStatus vo.OrderStatus
	ReturnURL   string
}

// ProcessPaymentUseCase owns the order lifecycle transition
// CREATED -> COMPLETED|FAILED. On transition it records the transaction,
// builds the webhook payload and hands it to the dispatcher fire-and-forget.
type ProcessPaymentUseCase struct {
	orderRepo  order.Repository
	txnRepo    transaction.Repository
	dispatcher WebhookDispatcher
	secrets    WebhookSecrets
	maxRetries int
	logger     logger.Interface
}

func NewProcessPaymentUseCase(
	orderRepo order.Repository,
	txnRepo transaction.Repository,
	dispatcher WebhookDispatcher,
	secrets WebhookSecrets,
	maxRetries int,
	log logger.Interface,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		orderRepo:  orderRepo,
		txnRepo:    txnRepo,
		dispatcher: dispatcher,
		secrets:    secrets,
		maxRetries: maxRetries,
		logger:     log,
	}
}

func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, cmd ProcessPaymentCommand) (*ProcessPaymentResult, error) {
	method, err := vo.NewPaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeValidation, "invalid payment method", err.Error())
	}
	if method.IsCard() && (cmd.Details.Card == nil || cmd.Details.Card.Number == "") {
		return nil, apperrors.NewValidationError(apperrors.CodeValidation, "card details are required for card payments")
	}

	ord, err := uc.orderRepo.GetByGatewayOrderID(ctx, cmd.GatewayOrderID)
	if err != nil {
		uc.logger.Warnw("order not found for payment event",
			"gateway_order_id", cmd.GatewayOrderID,
			"error", err,
		)
		return nil, apperrors.NewNotFoundError(apperrors.CodeOrderNotFound, "order not found")
	}

	// Idempotent transition protection: a replayed event against a
	// terminal order must not transition again or dispatch a second
	// webhook.
	if ord.Status().IsTerminal() {
		uc.logger.Infow("payment event for already-terminal order ignored",
			"gateway_order_id", ord.GatewayOrderID(),
			"status", ord.Status().String(),
		)
		return nil, apperrors.NewConflictError(apperrors.CodeOrderAlreadyProcessed,
			fmt.Sprintf("order is already %s", ord.Status()))
	}

	if err := ord.ValidateAmount(cmd.AmountInPaisa, cmd.Currency); err != nil {
		return nil, apperrors.NewValidationError(apperrors.CodeAmountMismatch, "payment amount does not match order", err.Error())
	}

	outcome := simulation.Decide(method, cmd.Details)

	txn, err := transaction.New(ord.GatewayOrderID(), ord.Amount(), method,
		outcome.Status, outcome.FailureReason, outcome.CardLast4)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	if txn.Succeeded() {
		err = ord.MarkCompleted(txn.ID(), method)
	} else {
		err = ord.MarkFailed(txn.ID(), method)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}
	if err := uc.orderRepo.Update(ctx, ord); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	metrics.PaymentsProcessedTotal.WithLabelValues(txn.Status().String()).Inc()
	uc.logger.Infow("payment processed",
		"gateway_order_id", ord.GatewayOrderID(),
		"transaction_id", txn.ID(),
		"status", txn.Status().String(),
		"failure_reason", txn.FailureReason(),
	)

	uc.dispatchNotification(ord, txn)

	return &ProcessPaymentResult{
		Transaction: txn,
		OrderStatus: ord.Status(),
		ReturnURL:   ord.ReturnURL(),
	}, nil
}

// dispatchNotification hands the terminal-state notification to the
// dispatcher without awaiting it. The dispatch runs on a background
// context: once started it runs to success or exhaustion, and only
// process exit aborts it.
func (uc *ProcessPaymentUseCase) dispatchNotification(ord *order.Order, txn *transaction.Transaction) {
	body, err := json.Marshal(BuildWebhookPayload(ord, txn))
	if err != nil {
		uc.logger.Errorw("failed to marshal webhook payload",
			"gateway_order_id", ord.GatewayOrderID(),
			"error", err,
		)
		return
	}

	req := webhook.Request{
		URL:            ord.CallbackURL(),
		Body:           body,
		Secret:         uc.secrets.For(ord.TestMode()),
		IdempotencyKey: txn.ID(),
		TestMode:       ord.TestMode(),
		MaxRetries:     uc.maxRetries,
	}

	goroutine.SafeGo(uc.logger, "webhook-dispatch", func() {
		uc.dispatcher.Dispatch(context.Background(), req)
	})
}

// WebhookPayload is the JSON body POSTed to the merchant callback URL.
type WebhookPayload struct {
	GatewayOrderID    string                 `json:"gateway_order_id"`
	MerchantOrderID   string                 `json:"merchant_order_id"`
	PaymentRef        string                 `json:"payment_ref"`
	Status            string                 `json:"status"`
	AmountInPaisa     int64                  `json:"amount_in_paisa"`
	Currency          string                 `json:"currency"`
	PaidAt            string                 `json:"paid_at"`
	PaymentMethod     string                 `json:"payment_method"`
	Card              *CardInfo              `json:"card,omitempty"`
	OneTimeOrderToken string                 `json:"one_time_order_token"`
	TestMode          bool                   `json:"test_mode"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// CardInfo masks the instrument down to its last four digits.
type CardInfo struct {
	Masked string `json:"masked"`
}

// BuildWebhookPayload reflects the order's terminal state into the
// notification body. Metadata is passed through verbatim.
func BuildWebhookPayload(ord *order.Order, txn *transaction.Transaction) WebhookPayload {
	status := "FAILED"
	if txn.Succeeded() {
		status = "SUCCESS"
	}

	payload := WebhookPayload{
		GatewayOrderID:    ord.GatewayOrderID(),
		MerchantOrderID:   ord.MerchantOrderID(),
		PaymentRef:        txn.ID(),
		Status:            status,
		AmountInPaisa:     ord.Amount().AmountInPaisa(),
		Currency:          ord.Amount().Currency(),
		PaidAt:            biztime.FormatRFC3339(txn.Timestamp()),
		PaymentMethod:     txn.PaymentMethod().Upper(),
		OneTimeOrderToken: ord.OrderToken(),
		TestMode:          ord.TestMode(),
		Metadata:          ord.Metadata(),
	}

	if txn.CardLast4() != "" {
		payload.Card = &CardInfo{Masked: "****" + txn.CardLast4()}
	}

	return payload
}
