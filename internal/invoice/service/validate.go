package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wasteworks/hazbill/internal/invoice/calc"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
)

// otherCharge is the resolved flat additional-charge line.
type otherCharge struct {
	description string
	quantity    *decimal.Decimal
	rate        *decimal.Decimal
	unit        string
	amount      decimal.Decimal
}

// payment is the sanitized initial payment state.
type payment struct {
	received decimal.Decimal
}

func (p payment) date(requested *time.Time) *time.Time {
	if requested != nil {
		return requested
	}
	if p.received.IsPositive() {
		now := time.Now().UTC()
		return &now
	}
	return nil
}

func resolveRates(cgst, sgst *decimal.Decimal, defaults invoicedomain.Defaults) (calc.TaxRates, error) {
	rates := calc.TaxRates{CGST: defaults.CGSTRate, SGST: defaults.SGSTRate}
	if cgst != nil {
		if cgst.IsNegative() {
			return calc.TaxRates{}, invoicedomain.ErrInvalidAmount
		}
		rates.CGST = *cgst
	}
	if sgst != nil {
		if sgst.IsNegative() {
			return calc.TaxRates{}, invoicedomain.ErrInvalidAmount
		}
		rates.SGST = *sgst
	}
	return rates, nil
}

func validateMaterialInputs(inputs []invoicedomain.MaterialInput) error {
	for _, input := range inputs {
		if strings.TrimSpace(input.Name) == "" {
			return invoicedomain.ErrInvalidMaterial
		}
		if input.Quantity.IsNegative() || input.Rate.IsNegative() {
			return invoicedomain.ErrInvalidMaterial
		}
		if input.Amount != nil && input.Amount.IsNegative() {
			return invoicedomain.ErrInvalidMaterial
		}
		if input.Amount == nil && input.Quantity.IsZero() {
			return invoicedomain.ErrInvalidMaterial
		}
	}
	return nil
}

// resolveOtherCharge computes the flat amount of the additional-charge
// line: the explicit amount when supplied, quantity*rate otherwise.
func resolveOtherCharge(input *invoicedomain.OtherChargeInput) (otherCharge, error) {
	if input == nil {
		return otherCharge{}, nil
	}

	out := otherCharge{
		description: strings.TrimSpace(input.Description),
		quantity:    input.Quantity,
		rate:        input.Rate,
		unit:        strings.TrimSpace(input.Unit),
	}

	switch {
	case input.Amount != nil:
		if input.Amount.IsNegative() {
			return otherCharge{}, invoicedomain.ErrInvalidAmount
		}
		out.amount = input.Amount.Round(2)
	case input.Quantity != nil && input.Rate != nil:
		if input.Quantity.IsNegative() || input.Rate.IsNegative() {
			return otherCharge{}, invoicedomain.ErrInvalidAmount
		}
		out.amount = input.Quantity.Mul(*input.Rate).Round(2)
	default:
		return otherCharge{}, invoicedomain.ErrInvalidAmount
	}
	return out, nil
}

func resolvePayment(received *decimal.Decimal) (payment, error) {
	if received == nil {
		return payment{received: decimal.Zero}, nil
	}
	if received.IsNegative() {
		return payment{}, invoicedomain.ErrInvalidPayment
	}
	return payment{received: *received}, nil
}

func materialUnit(unit string) string {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return "MT"
	}
	return trimmed
}
