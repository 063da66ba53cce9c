package valueobjects

import "fmt"

// Money holds an amount in the smallest currency unit (paisa for INR).
type Money struct {
	amountInPaisa int64
	currency      string
}

func NewMoney(amountInPaisa int64, currency string) Money {
	if currency == "" {
		currency = "INR"
	}
	return Money{
		amountInPaisa: amountInPaisa,
		currency:      currency,
	}
}

func (m Money) AmountInPaisa() int64 {
	return m.amountInPaisa
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) AmountInRupees() float64 {
	return float64(m.amountInPaisa) / 100.0
}

func (m Money) Equals(other Money) bool {
	return m.amountInPaisa == other.amountInPaisa && m.currency == other.currency
}

func (m Money) IsPositive() bool {
	return m.amountInPaisa > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.AmountInRupees(), m.currency)
}
