package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestLineAmount(t *testing.T) {
	amount := LineAmount(Line{Quantity: dec("10"), Rate: dec("100")})
	assert.True(t, amount.Equal(dec("1000")), "got %s", amount)

	// Explicit amount wins over quantity*rate.
	amount = LineAmount(Line{Quantity: dec("10"), Rate: dec("100"), Amount: decPtr("950")})
	assert.True(t, amount.Equal(dec("950")), "got %s", amount)

	// Rounded half-up to 2 decimals.
	amount = LineAmount(Line{Quantity: dec("3.333"), Rate: dec("33.33")})
	assert.Equal(t, "111.09", amount.StringFixed(2))
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(
		[]Line{{Quantity: dec("10"), Rate: dec("100")}},
		TaxRates{CGST: dec("9"), SGST: dec("9")},
		decimal.Zero,
		nil,
	)

	assert.True(t, totals.Subtotal.Equal(dec("1000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.CGST.Equal(dec("90")), "cgst %s", totals.CGST)
	assert.True(t, totals.SGST.Equal(dec("90")), "sgst %s", totals.SGST)
	assert.True(t, totals.GrandTotal.Equal(dec("1180")), "grand %s", totals.GrandTotal)
}

func TestComputeTotalsRoundsEachTaxIndependently(t *testing.T) {
	// 9% of 100.05 is 9.0045; each component must round once, on its
	// own, rather than rounding a combined 18% figure.
	totals := ComputeTotals(
		nil,
		TaxRates{CGST: dec("9"), SGST: dec("9")},
		decimal.Zero,
		decPtr("100.05"),
	)

	assert.Equal(t, "9.00", totals.CGST.StringFixed(2))
	assert.Equal(t, "9.00", totals.SGST.StringFixed(2))
	assert.Equal(t, "118.05", totals.GrandTotal.StringFixed(2))
}

func TestComputeTotalsExplicitSubtotalWins(t *testing.T) {
	totals := ComputeTotals(
		[]Line{{Quantity: dec("10"), Rate: dec("100")}},
		TaxRates{CGST: dec("9"), SGST: dec("9")},
		decimal.Zero,
		decPtr("500"),
	)

	assert.True(t, totals.Subtotal.Equal(dec("500")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.GrandTotal.Equal(dec("590")), "grand %s", totals.GrandTotal)
}

func TestComputeTotalsOtherChargeIsNotTaxed(t *testing.T) {
	totals := ComputeTotals(
		[]Line{{Quantity: dec("10"), Rate: dec("100")}},
		TaxRates{CGST: dec("9"), SGST: dec("9")},
		dec("250"),
		nil,
	)

	// 1000 + 90 + 90 + 250, with no tax applied on the 250.
	assert.True(t, totals.CGST.Equal(dec("90")), "cgst %s", totals.CGST)
	assert.True(t, totals.GrandTotal.Equal(dec("1430")), "grand %s", totals.GrandTotal)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, TaxRates{CGST: dec("9"), SGST: dec("9")}, decimal.Zero, nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotalsMultipleLines(t *testing.T) {
	totals := ComputeTotals(
		[]Line{
			{Quantity: dec("2.5"), Rate: dec("1200")},
			{Quantity: dec("1.75"), Rate: dec("800")},
			{Quantity: dec("0"), Rate: dec("0"), Amount: decPtr("99.99")},
		},
		TaxRates{CGST: dec("6"), SGST: dec("6")},
		decimal.Zero,
		nil,
	)

	// 3000 + 1400 + 99.99 = 4499.99
	assert.Equal(t, "4499.99", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "270.00", totals.CGST.StringFixed(2))
	assert.Equal(t, "270.00", totals.SGST.StringFixed(2))
	assert.Equal(t, "5039.99", totals.GrandTotal.StringFixed(2))
}
