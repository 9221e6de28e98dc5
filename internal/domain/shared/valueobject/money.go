package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	INR Currency = "INR" // Indian Rupee
	CAD Currency = "CAD" // Canadian Dollar
	AUD Currency = "AUD" // Australian Dollar
	JPY Currency = "JPY" // Japanese Yen
	SGD Currency = "SGD" // Singapore Dollar
	AED Currency = "AED" // UAE Dirham
	BDT Currency = "BDT" // Bangladeshi Taka
	MYR Currency = "MYR" // Malaysian Ringgit
	NGN Currency = "NGN" // Nigerian Naira
	PKR Currency = "PKR" // Pakistani Rupee
	PHP Currency = "PHP" // Philippine Peso
	ZAR Currency = "ZAR" // South African Rand
)

// DefaultCurrency is the default currency for new accounts and invoices
const DefaultCurrency = USD

// SupportedCurrencies lists the currency codes a user may pick from
var SupportedCurrencies = []Currency{
	USD, EUR, GBP, INR, CAD, AUD, JPY, SGD, AED, BDT, MYR, NGN, PKR, PHP, ZAR,
}

// IsSupported returns true if the currency is one of the supported codes
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// String returns the string representation of the currency code
func (c Currency) String() string {
	return string(c)
}

// Money tags a decimal amount with its currency for the read side.
// It is immutable. The currency is a display tag only; no conversion
// math exists anywhere, and all arithmetic happens on raw decimals in
// the invoicing calculator before amounts are wrapped.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the given amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// MustNewMoney creates Money, panicking on an empty currency.
// For call sites where the currency has already been validated.
func MustNewMoney(amount decimal.Decimal, currency Currency) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// StringFixed returns the amount as a string with fixed decimal places
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}
