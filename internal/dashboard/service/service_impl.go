package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	dashboarddomain "github.com/wasteworks/hazbill/internal/dashboard/domain"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p ServiceParam) dashboarddomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("dashboard.service"),
	}
}

func yearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *Service) MonthlyRevenue(ctx context.Context, year int) ([]dashboarddomain.MonthlyRevenuePoint, error) {
	start, end := yearRange(year)

	var rows []struct {
		InvoiceDate     time.Time
		GrandTotal      decimal.Decimal
		PaymentReceived decimal.Decimal
	}
	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("invoice_date", "grand_total", "payment_received").
		Where("type = ? AND invoice_date >= ? AND invoice_date < ?", invoicedomain.TypeInward, start, end).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]dashboarddomain.MonthlyRevenuePoint, 12)
	for i := range series {
		series[i].Month = i + 1
	}
	for _, row := range rows {
		idx := int(row.InvoiceDate.UTC().Month()) - 1
		series[idx].Invoiced = series[idx].Invoiced.Add(row.GrandTotal)
		series[idx].Received = series[idx].Received.Add(row.PaymentReceived)
	}
	return series, nil
}

func (s *Service) PaymentSummary(ctx context.Context, year, month int) (dashboarddomain.PaymentSummary, error) {
	start, end := monthRange(year, month)

	var rows []struct {
		GrandTotal      decimal.Decimal
		PaymentReceived decimal.Decimal
		Status          invoicedomain.Status
	}
	err := s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("grand_total", "payment_received", "status").
		Where("invoice_date >= ? AND invoice_date < ?", start, end).
		Find(&rows).Error
	if err != nil {
		return dashboarddomain.PaymentSummary{}, err
	}

	summary := dashboarddomain.PaymentSummary{Year: year, Month: month}
	for _, row := range rows {
		summary.TotalBilled = summary.TotalBilled.Add(row.GrandTotal)
		summary.TotalReceived = summary.TotalReceived.Add(row.PaymentReceived)
		switch row.Status {
		case invoicedomain.StatusPaid:
			summary.PaidCount++
		case invoicedomain.StatusPartial:
			summary.PartialCount++
		default:
			summary.PendingCount++
		}
	}
	summary.Outstanding = summary.TotalBilled.Sub(summary.TotalReceived)
	return summary, nil
}

func (s *Service) WasteFlow(ctx context.Context, year int) ([]dashboarddomain.WasteFlowPoint, error) {
	start, end := yearRange(year)

	series := make([]dashboarddomain.WasteFlowPoint, 12)
	for i := range series {
		series[i].Month = i + 1
	}

	type volumeRow struct {
		EntryDate time.Time
		Quantity  decimal.Decimal
		Unit      entrydomain.Unit
	}

	var inward []volumeRow
	err := s.db.WithContext(ctx).
		Model(&entrydomain.InwardEntry{}).
		Select("entry_date", "quantity", "unit").
		Where("entry_date >= ? AND entry_date < ?", start, end).
		Find(&inward).Error
	if err != nil {
		return nil, err
	}
	for _, row := range inward {
		idx := int(row.EntryDate.UTC().Month()) - 1
		series[idx].InwardMT = series[idx].InwardMT.Add(entrydomain.ToMetricTons(row.Quantity, row.Unit))
	}

	var outward []volumeRow
	err = s.db.WithContext(ctx).
		Model(&entrydomain.OutwardEntry{}).
		Select("entry_date", "quantity", "unit").
		Where("entry_date >= ? AND entry_date < ?", start, end).
		Find(&outward).Error
	if err != nil {
		return nil, err
	}
	for _, row := range outward {
		idx := int(row.EntryDate.UTC().Month()) - 1
		series[idx].OutwardMT = series[idx].OutwardMT.Add(entrydomain.ToMetricTons(row.Quantity, row.Unit))
	}

	return series, nil
}
