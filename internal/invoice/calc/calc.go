// Package calc computes invoice totals.
//
// Every function here is pure: no database access, no clock, fully
// deterministic over its inputs. Callers are responsible for
// validating inputs; the calculator assumes sanitized numbers.
package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line is one billable material line.
type Line struct {
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	// Amount overrides quantity*rate for non-linear charges.
	Amount *decimal.Decimal
}

// TaxRates are percentages, e.g. 9 for 9%.
type TaxRates struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
}

// Totals is the computed money summary of an invoice.
type Totals struct {
	Subtotal   decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineAmount resolves the billed amount of a single line: the
// explicit override when present, quantity*rate otherwise. Rounded
// half-up to 2 decimal places.
func LineAmount(line Line) decimal.Decimal {
	if line.Amount != nil {
		return line.Amount.Round(2)
	}
	return line.Quantity.Mul(line.Rate).Round(2)
}

// ComputeTotals produces the invoice money summary.
//
// Subtotal is the explicit value when supplied, else the sum of line
// amounts. CGST and SGST are each rounded half-up to 2 decimals
// independently, once, before summing. The other charge is added flat
// to the grand total without being tax-rated again. An empty line set
// with no explicit subtotal is valid and yields zero totals.
func ComputeTotals(lines []Line, rates TaxRates, otherCharge decimal.Decimal, explicitSubtotal *decimal.Decimal) Totals {
	var subtotal decimal.Decimal
	if explicitSubtotal != nil {
		subtotal = explicitSubtotal.Round(2)
	} else {
		for _, line := range lines {
			subtotal = subtotal.Add(LineAmount(line))
		}
	}

	cgst := subtotal.Mul(rates.CGST).Div(hundred).Round(2)
	sgst := subtotal.Mul(rates.SGST).Div(hundred).Round(2)
	grand := subtotal.Add(cgst).Add(sgst).Add(otherCharge).Round(2)

	return Totals{
		Subtotal:   subtotal,
		CGST:       cgst,
		SGST:       sgst,
		GrandTotal: grand,
	}
}
