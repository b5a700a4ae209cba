package tappay

import (
	"fmt"
	"math"
	"strings"
)

// DomesticCurrency is the gateway's base currency. Amounts in it are sent to
// the API unscaled.
const DomesticCurrency = "TWD"

// Currencies whose smallest unit has no fractional subdivision.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
}

// Money is an immutable amount in a currency's natural unit.
type Money struct {
	amount   float64
	currency string
}

// NewMoney creates a Money value. The currency defaults to TWD when empty.
// A negative amount fails with a ValidationError.
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, validationErr("amount", "amount cannot be negative")
	}
	if currency == "" {
		currency = DomesticCurrency
	}
	return Money{amount: amount, currency: currency}, nil
}

// MoneyOf creates a Money value in any currency, uppercasing the code.
func MoneyOf(amount float64, currency string) (Money, error) {
	return NewMoney(amount, strings.ToUpper(currency))
}

// TWD creates a Money value in the domestic currency.
func TWD(amount int64) (Money, error) {
	return NewMoney(float64(amount), "TWD")
}

// USD creates a Money value in dollars (1.50 means $1.50).
func USD(amount float64) (Money, error) {
	return NewMoney(amount, "USD")
}

// JPY creates a Money value in yen (no decimal places).
func JPY(amount int64) (Money, error) {
	return NewMoney(float64(amount), "JPY")
}

// EUR creates a Money value in euros.
func EUR(amount float64) (Money, error) {
	return NewMoney(amount, "EUR")
}

// Amount returns the amount in the currency's natural unit.
func (m Money) Amount() float64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// ToAPIAmount returns the integer wire amount the gateway expects. TWD and
// zero-decimal currencies pass through unscaled; every other currency is
// multiplied by 100 and rounded half away from zero.
func (m Money) ToAPIAmount() int64 {
	if m.currency == DomesticCurrency || zeroDecimalCurrencies[m.currency] {
		return int64(m.amount)
	}
	return int64(math.Round(m.amount * 100))
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// EnsurePositive fails with a ValidationError when the amount is not positive.
func (m Money) EnsurePositive() error {
	if !m.IsPositive() {
		return validationErr("amount", "amount must be greater than zero")
	}
	return nil
}

// Format renders the amount for display, e.g. "TWD 100" or "USD 1.50".
func (m Money) Format() string {
	if m.currency == DomesticCurrency || zeroDecimalCurrencies[m.currency] {
		return fmt.Sprintf("%s %d", m.currency, int64(m.amount))
	}
	return fmt.Sprintf("%s %.2f", m.currency, m.amount)
}

func (m Money) String() string {
	return m.Format()
}
