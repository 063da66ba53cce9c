// Package simulation decides the outcome of a simulated payment attempt.
// No money moves; the decision table below stands in for an issuer.
package simulation

import (
	"strings"

	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/domain/transaction"
)

// DeclineReasonIssuer is returned for card numbers the table declines.
const DeclineReasonIssuer = "Card declined by issuer"

// CardDetails are the method-specific fields for card payments.
type CardDetails struct {
	Number      string
	HolderName  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

// Details carries the method-specific part of a payment-processing event.
// Exactly one field is relevant for a given method.
type Details struct {
	Card           *CardDetails
	UPIID          string
	Bank           string
	WalletProvider string
}

// Outcome is the simulated issuer decision.
type Outcome struct {
	Status        transaction.Status
	FailureReason string
	CardLast4     string
}

// Decide applies the decision table. Card numbers ending in 0000 are
// declined; every other card and all non-card methods succeed.
func Decide(method vo.PaymentMethod, details Details) Outcome {
	if method.IsCard() && details.Card != nil {
		number := normalizeCardNumber(details.Card.Number)
		last4 := lastDigits(number, 4)

		if strings.HasSuffix(number, "0000") {
			return Outcome{
				Status:        transaction.StatusFailed,
				FailureReason: DeclineReasonIssuer,
				CardLast4:     last4,
			}
		}

		return Outcome{
			Status:    transaction.StatusSuccess,
			CardLast4: last4,
		}
	}

	return Outcome{Status: transaction.StatusSuccess}
}

func normalizeCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
