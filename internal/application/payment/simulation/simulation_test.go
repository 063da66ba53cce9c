package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "github.com/sandpay-io/sandpay/internal/domain/order/valueobjects"
	"github.com/sandpay-io/sandpay/internal/domain/transaction"
)

func TestDecide_Card(t *testing.T) {
	tests := []struct {
		name       string
		number     string
		wantStatus transaction.Status
		wantReason string
		wantLast4  string
	}{
		{"standard card succeeds", "4242424242424242", transaction.StatusSuccess, "", "4242"},
		{"card ending 0000 declined", "4242424242420000", transaction.StatusFailed, DeclineReasonIssuer, "0000"},
		{"spaces stripped before suffix check", "4242 4242 4242 0000", transaction.StatusFailed, DeclineReasonIssuer, "0000"},
		{"dashes stripped before suffix check", "4242-4242-4242-0000", transaction.StatusFailed, DeclineReasonIssuer, "0000"},
		{"other suffix succeeds", "4000000000000001", transaction.StatusSuccess, "", "0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Decide(vo.PaymentMethodCard, Details{
				Card: &CardDetails{Number: tt.number},
			})

			assert.Equal(t, tt.wantStatus, outcome.Status)
			assert.Equal(t, tt.wantReason, outcome.FailureReason)
			assert.Equal(t, tt.wantLast4, outcome.CardLast4)
		})
	}
}

func TestDecide_NonCardMethodsAlwaysSucceed(t *testing.T) {
	tests := []struct {
		method  vo.PaymentMethod
		details Details
	}{
		{vo.PaymentMethodUPI, Details{UPIID: "alice@upi"}},
		{vo.PaymentMethodNetbanking, Details{Bank: "HDFC"}},
		{vo.PaymentMethodWallet, Details{WalletProvider: "paytm"}},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			outcome := Decide(tt.method, tt.details)

			assert.Equal(t, transaction.StatusSuccess, outcome.Status)
			assert.Empty(t, outcome.FailureReason)
			assert.Empty(t, outcome.CardLast4)
		})
	}
}

func TestDecide_ShortCardNumber(t *testing.T) {
	outcome := Decide(vo.PaymentMethodCard, Details{Card: &CardDetails{Number: "0000"}})

	assert.Equal(t, transaction.StatusFailed, outcome.Status)
	assert.Equal(t, "0000", outcome.CardLast4)
}
