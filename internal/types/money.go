// README: Money value object (minor units) used for persisted fee amounts.
package types

import (
	"fmt"
	"math"
)

const DefaultCurrency = "USD"

type ID string

type Money struct {
	Amount   int64
	Currency string
}

// MoneyFromFloat converts a major-unit amount (already rounded to cents) into Money.
func MoneyFromFloat(v float64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: int64(math.Round(v * 100)), Currency: currency}
}

func (m Money) Float() float64 {
	return float64(m.Amount) / 100
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Float(), m.Currency)
}
