package order

import (
	"fmt"
	"time"

	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/shared/biztime"
	"github.com/sandpay-io/sandpay/internal/shared/id"
)

// Order is a merchant-created purchase intent. Its gateway order ID is
// immutable once assigned and its status moves forward only:
// CREATED -> COMPLETED | FAILED, at most once.
type Order struct {
	gatewayOrderID  string
	merchantID      string
	merchantOrderID string
	amount          vo.Money
	paymentMethod   *vo.PaymentMethod
	status          vo.OrderStatus

	callbackURL string
	returnURL   string
	orderToken  string
	testMode    bool

	paymentRef  *string
	completedAt *time.Time

	metadata map[string]interface{}

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder creates an order in CREATED state with a fresh gateway order ID
// and one-time order token.
func NewOrder(merchantID, merchantOrderID string, amount vo.Money, callbackURL, returnURL string, testMode bool, metadata map[string]interface{}) (*Order, error) {
	if merchantID == "" {
		return nil, fmt.Errorf("merchant ID is required")
	}
	if merchantOrderID == "" {
		return nil, fmt.Errorf("merchant order ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if callbackURL == "" {
		return nil, fmt.Errorf("callback URL is required")
	}

	gatewayOrderID, err := id.NewOrderID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate gateway order ID: %w", err)
	}
	orderToken, err := id.NewOrderToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order token: %w", err)
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	now := biztime.NowUTC()

	return &Order{
		gatewayOrderID:  gatewayOrderID,
		merchantID:      merchantID,
		merchantOrderID: merchantOrderID,
		amount:          amount,
		status:          vo.OrderStatusCreated,
		callbackURL:     callbackURL,
		returnURL:       returnURL,
		orderToken:      orderToken,
		testMode:        testMode,
		metadata:        metadata,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// MarkCompleted transitions the order to COMPLETED and binds the payment
// reference. Only valid from CREATED.
func (o *Order) MarkCompleted(paymentRef string, method vo.PaymentMethod) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("order %s is already %s", o.gatewayOrderID, o.status)
	}

	now := biztime.NowUTC()
	o.status = vo.OrderStatusCompleted
	o.paymentRef = &paymentRef
	o.paymentMethod = &method
	o.completedAt = &now
	o.updatedAt = now
	o.version++

	return nil
}

// MarkFailed transitions the order to FAILED. Only valid from CREATED.
func (o *Order) MarkFailed(paymentRef string, method vo.PaymentMethod) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("order %s is already %s", o.gatewayOrderID, o.status)
	}

	now := biztime.NowUTC()
	o.status = vo.OrderStatusFailed
	o.paymentRef = &paymentRef
	o.paymentMethod = &method
	o.completedAt = &now
	o.updatedAt = now
	o.version++

	return nil
}

// ValidateAmount validates that a payment event's amount and currency
// match the order.
func (o *Order) ValidateAmount(amountInPaisa int64, currency string) error {
	if o.amount.AmountInPaisa() != amountInPaisa {
		return fmt.Errorf("amount mismatch: expected %d, got %d", o.amount.AmountInPaisa(), amountInPaisa)
	}
	if currency != "" && o.amount.Currency() != currency {
		return fmt.Errorf("currency mismatch: expected %s, got %s", o.amount.Currency(), currency)
	}
	return nil
}

func (o *Order) GatewayOrderID() string {
	return o.gatewayOrderID
}

func (o *Order) MerchantID() string {
	return o.merchantID
}

func (o *Order) MerchantOrderID() string {
	return o.merchantOrderID
}

func (o *Order) Amount() vo.Money {
	return o.amount
}

func (o *Order) PaymentMethod() *vo.PaymentMethod {
	return o.paymentMethod
}

func (o *Order) Status() vo.OrderStatus {
	return o.status
}

func (o *Order) CallbackURL() string {
	return o.callbackURL
}

func (o *Order) ReturnURL() string {
	return o.returnURL
}

func (o *Order) OrderToken() string {
	return o.orderToken
}

func (o *Order) TestMode() bool {
	return o.testMode
}

func (o *Order) PaymentRef() *string {
	return o.paymentRef
}

func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *Order) Metadata() map[string]interface{} {
	return o.metadata
}

func (o *Order) Version() int {
	return o.version
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ReconstructParams carries persisted state back into the domain.
type ReconstructParams struct {
	GatewayOrderID  string
	MerchantID      string
	MerchantOrderID string
	Amount          vo.Money
	PaymentMethod   *vo.PaymentMethod
	Status          vo.OrderStatus
	CallbackURL     string
	ReturnURL       string
	OrderToken      string
	TestMode        bool
	PaymentRef      *string
	CompletedAt     *time.Time
	Metadata        map[string]interface{}
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Reconstruct creates an Order instance from persistence.
func Reconstruct(p ReconstructParams) *Order {
	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Order{
		gatewayOrderID:  p.GatewayOrderID,
		merchantID:      p.MerchantID,
		merchantOrderID: p.MerchantOrderID,
		amount:          p.Amount,
		paymentMethod:   p.PaymentMethod,
		status:          p.Status,
		callbackURL:     p.CallbackURL,
		returnURL:       p.ReturnURL,
		orderToken:      p.OrderToken,
		testMode:        p.TestMode,
		paymentRef:      p.PaymentRef,
		completedAt:     p.CompletedAt,
		metadata:        metadata,
		version:         p.Version,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}
