package invoicing

import "github.com/shopspring/decimal"

// The four functions below are the single derivation path for every
// monetary figure shown anywhere in the system. Handlers, display
// formatting and persistence all call these; none of them repeat the
// arithmetic inline. They never fail on well-formed input.

// LineTotal computes quantity * unitPrice for a single line item
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(unitPrice)
}

// Subtotal computes the sum of all line totals
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item.Quantity, item.UnitPrice))
	}
	return total
}

// TaxAmount computes subtotal * taxPercent / 100
func TaxAmount(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100))
}

// Total computes subtotal + tax amount
func Total(subtotal, taxAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(taxAmount)
}

// Totals bundles the derived figures for an item list and tax rate
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// CalculateTotals derives subtotal, tax amount and total in one pass
func CalculateTotals(items []LineItem, taxPercent decimal.Decimal) Totals {
	subtotal := Subtotal(items)
	tax := TaxAmount(subtotal, taxPercent)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     Total(subtotal, tax),
	}
}
