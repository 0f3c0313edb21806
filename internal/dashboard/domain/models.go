// Package domain defines the read-only dashboard views.
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// MonthlyRevenuePoint is one calendar month of the revenue series.
// Months with no invoices are present with zero values so chart
// consumers always receive a full 12-point series.
type MonthlyRevenuePoint struct {
	Month    int             `json:"month"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Received decimal.Decimal `json:"received"`
}

// PaymentSummary is the payment-status breakdown for one month.
type PaymentSummary struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalBilled   decimal.Decimal `json:"total_billed"`
	TotalReceived decimal.Decimal `json:"total_received"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PendingCount  int             `json:"pending_count"`
	PartialCount  int             `json:"partial_count"`
	PaidCount     int             `json:"paid_count"`
}

// WasteFlowPoint is one calendar month of movement volume, normalized
// to metric tons.
type WasteFlowPoint struct {
	Month     int             `json:"month"`
	InwardMT  decimal.Decimal `json:"inward_mt"`
	OutwardMT decimal.Decimal `json:"outward_mt"`
}

type Service interface {
	// MonthlyRevenue returns the 12-month invoiced/received series for
	// inward invoices of the given year.
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenuePoint, error)
	// PaymentSummary aggregates all invoice types for one month.
	PaymentSummary(ctx context.Context, year, month int) (PaymentSummary, error)
	// WasteFlow returns the 12-month inward/outward tonnage series.
	WasteFlow(ctx context.Context, year int) ([]WasteFlowPoint, error)
}
