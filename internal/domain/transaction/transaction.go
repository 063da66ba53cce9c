package transaction

import (
	"fmt"
	"time"

	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/shared/biztime"
	"github.com/sandpay-io/sandpay/internal/shared/id"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

func (s Status) IsValid() bool {
	return s == StatusSuccess || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}

// Transaction records the outcome of one payment-processing event.
// Exactly one transaction exists per event and it never mutates after
// creation.
type Transaction struct {
	id            string
	orderID       string
	amount        vo.Money
	paymentMethod vo.PaymentMethod
	status        Status
	failureReason string
	cardLast4     string
	timestamp     time.Time
}

// New creates an immutable transaction with a fresh txn_ identifier.
// failureReason must be set iff the transaction failed.
func New(orderID string, amount vo.Money, method vo.PaymentMethod, status Status, failureReason, cardLast4 string) (*Transaction, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid transaction status: %s", status)
	}
	if status == StatusFailed && failureReason == "" {
		return nil, fmt.Errorf("failure reason is required for failed transactions")
	}
	if status == StatusSuccess && failureReason != "" {
		return nil, fmt.Errorf("failure reason must be empty for successful transactions")
	}

	txnID, err := id.NewTransactionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction ID: %w", err)
	}

	return &Transaction{
		id:            txnID,
		orderID:       orderID,
		amount:        amount,
		paymentMethod: method,
		status:        status,
		failureReason: failureReason,
		cardLast4:     cardLast4,
		timestamp:     biztime.NowUTC(),
	}, nil
}

func (t *Transaction) ID() string {
	return t.id
}

func (t *Transaction) OrderID() string {
	return t.orderID
}

func (t *Transaction) Amount() vo.Money {
	return t.amount
}

func (t *Transaction) PaymentMethod() vo.PaymentMethod {
	return t.paymentMethod
}

func (t *Transaction) Status() Status {
	return t.status
}

func (t *Transaction) FailureReason() string {
	return t.failureReason
}

func (t *Transaction) CardLast4() string {
	return t.cardLast4
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t *Transaction) Succeeded() bool {
	return t.status == StatusSuccess
}

// ReconstructParams carries persisted state back into the domain.
type ReconstructParams struct {
	ID            string
	OrderID       string
	Amount        vo.Money
	PaymentMethod vo.PaymentMethod
	Status        Status
	FailureReason string
	CardLast4     string
	Timestamp     time.Time
}

// Reconstruct creates a Transaction instance from persistence.
func Reconstruct(p ReconstructParams) *Transaction {
	return &Transaction{
		id:            p.ID,
		orderID:       p.OrderID,
		amount:        p.Amount,
		paymentMethod: p.PaymentMethod,
		status:        p.Status,
		failureReason: p.FailureReason,
		cardLast4:     p.CardLast4,
		timestamp:     p.Timestamp,
	}
}
