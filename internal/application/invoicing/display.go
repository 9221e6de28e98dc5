package invoicing

import (
	"time"

	"github.com/invoicelink/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display formatting lives here, at the response boundary. The decimal
// figures themselves always come from the calculator; formatting only
// renders them, so every surface shows the same number.

// longDateLayout matches the long form dates shown on invoice views
const longDateLayout = "January 2, 2006"

// emptyDatePlaceholder is rendered when an optional date is absent
const emptyDatePlaceholder = "—"

var displayPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders a monetary amount with its currency symbol,
// rounded to the currency's standard scale (2 for USD, 0 for JPY).
// Codes outside the supported list render as plain "amount CODE".
func FormatMoney(m valueobject.Money) string {
	cur := m.Currency()
	if !cur.IsSupported() {
		return m.StringFixed(2) + " " + cur.String()
	}

	unit, err := currency.ParseISO(cur.String())
	if err != nil {
		return m.StringFixed(2) + " " + cur.String()
	}

	scale, _ := currency.Standard.Rounding(unit)
	symbol := displayPrinter.Sprint(currency.Symbol(unit))
	return symbol + m.StringFixed(int32(scale))
}

// FormatDate renders a date in long form, or a placeholder when absent
func FormatDate(t *time.Time) string {
	if t == nil {
		return emptyDatePlaceholder
	}
	return t.Format(longDateLayout)
}
