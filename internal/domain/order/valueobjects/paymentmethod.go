package valueobjects

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

func NewPaymentMethod(method string) (PaymentMethod, error) {
	pm := PaymentMethod(strings.ToLower(method))
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodWallet:
		return true
	default:
		return false
	}
}

func (pm PaymentMethod) IsCard() bool {
	return pm == PaymentMethodCard
}

func (pm PaymentMethod) String() string {
	return string(pm)
}

// Upper returns the method name in the uppercase form used by webhook payloads.
func (pm PaymentMethod) Upper() string {
	return strings.ToUpper(string(pm))
}
