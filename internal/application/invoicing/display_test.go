package invoicing

import (
	"testing"
	"time"

	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"usd", "138.05", "USD", "$138.05"},
		{"usd whole", "500", "USD", "$500.00"},
		{"eur", "99.9", "EUR", "€99.90"},
		{"gbp", "10", "GBP", "£10.00"},
		{"jpy has no decimals", "1200", "JPY", "¥1200"},
		{"zero", "0", "USD", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valueobject.MustNewMoney(
				decimal.RequireFromString(tt.amount),
				valueobject.Currency(tt.currency),
			)
			assert.Equal(t, tt.want, FormatMoney(m))
		})
	}
}

func TestFormatMoney_UnsupportedCurrency(t *testing.T) {
	// Well-formed ISO codes outside the supported list must take the
	// plain rendering too, not the symbol path
	for _, code := range []string{"ZZZ", "XXX", "CHF"} {
		m := valueobject.MustNewMoney(
			decimal.RequireFromString("1.5"),
			valueobject.Currency(code),
		)
		assert.Equal(t, "1.50 "+code, FormatMoney(m))
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "October 5, 2026", FormatDate(&d))
	assert.Equal(t, "—", FormatDate(nil))
}
