package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	dashboarddomain "github.com/wasteworks/hazbill/internal/dashboard/domain"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	"github.com/wasteworks/hazbill/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type dashboardFixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  dashboarddomain.Service
	seq  int
}

func setupDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&entrydomain.InwardEntry{},
		&entrydomain.OutwardEntry{},
		&invoicedomain.Invoice{},
		&invoicedomain.Material{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return &dashboardFixture{
		db:   conn,
		node: node,
		svc:  NewService(ServiceParam{DB: conn, Log: zap.NewNop()}),
	}
}

func (f *dashboardFixture) seedInvoice(t *testing.T, invoiceType invoicedomain.InvoiceType, date time.Time, grand, received int64, status invoicedomain.Status) {
	t.Helper()
	f.seq++
	row := invoicedomain.Invoice{
		ID:              f.node.Generate(),
		InvoiceNo:       fmt.Sprintf("INV-%s-%04d", date.Format("200601"), f.seq),
		Type:            invoiceType,
		InvoiceDate:     date,
		CustomerName:    "Acme Chemicals",
		Subtotal:        decimal.NewFromInt(grand),
		GrandTotal:      decimal.NewFromInt(grand),
		PaymentReceived: decimal.NewFromInt(received),
		Status:          status,
	}
	if err := f.db.Create(&row).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
}

func (f *dashboardFixture) seedInward(t *testing.T, date time.Time, quantity float64, unit entrydomain.Unit) {
	t.Helper()
	f.seq++
	row := entrydomain.InwardEntry{
		ID:         f.node.Generate(),
		EntryDate:  date,
		ManifestNo: fmt.Sprintf("MAN-%04d", f.seq),
		CompanyID:  f.node.Generate(),
		WasteName:  "Spent Solvent",
		Quantity:   decimal.NewFromFloat(quantity),
		Unit:       unit,
	}
	if err := f.db.Create(&row).Error; err != nil {
		t.Fatalf("seed inward entry: %v", err)
	}
}

func (f *dashboardFixture) seedOutward(t *testing.T, date time.Time, quantity float64, unit entrydomain.Unit) {
	t.Helper()
	f.seq++
	row := entrydomain.OutwardEntry{
		ID:              f.node.Generate(),
		EntryDate:       date,
		ManifestNo:      fmt.Sprintf("OUT-%04d", f.seq),
		CompanyID:       f.node.Generate(),
		DestinationName: "Common Landfill",
		WasteName:       "Stabilized Residue",
		Quantity:        decimal.NewFromFloat(quantity),
		Unit:            unit,
	}
	if err := f.db.Create(&row).Error; err != nil {
		t.Fatalf("seed outward entry: %v", err)
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyRevenueZeroFillsAllMonths(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	f.seedInvoice(t, invoicedomain.TypeInward, day(2025, time.January, 10), 1180, 1180, invoicedomain.StatusPaid)
	f.seedInvoice(t, invoicedomain.TypeInward, day(2025, time.January, 20), 500, 0, invoicedomain.StatusPending)
	f.seedInvoice(t, invoicedomain.TypeInward, day(2025, time.June, 2), 2000, 700, invoicedomain.StatusPartial)
	// Transporter invoices and other years stay out of the series.
	f.seedInvoice(t, invoicedomain.TypeTransporter, day(2025, time.January, 3), 9999, 0, invoicedomain.StatusPending)
	f.seedInvoice(t, invoicedomain.TypeInward, day(2024, time.December, 31), 800, 800, invoicedomain.StatusPaid)

	series, err := f.svc.MonthlyRevenue(ctx, 2025)
	if err != nil {
		t.Fatalf("monthly revenue: %v", err)
	}
	if len(series) != 12 {
		t.Fatalf("expected 12 points, got %d", len(series))
	}
	for i, point := range series {
		if point.Month != i+1 {
			t.Fatalf("expected month %d at index %d, got %d", i+1, i, point.Month)
		}
	}

	if !series[0].Invoiced.Equal(decimal.NewFromInt(1680)) {
		t.Fatalf("expected january invoiced 1680, got %s", series[0].Invoiced)
	}
	if !series[0].Received.Equal(decimal.NewFromInt(1180)) {
		t.Fatalf("expected january received 1180, got %s", series[0].Received)
	}
	if !series[5].Invoiced.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected june invoiced 2000, got %s", series[5].Invoiced)
	}
	for _, idx := range []int{1, 2, 3, 4, 6, 7, 8, 9, 10, 11} {
		if !series[idx].Invoiced.IsZero() || !series[idx].Received.IsZero() {
			t.Fatalf("expected month %d to be zero, got %s/%s", idx+1, series[idx].Invoiced, series[idx].Received)
		}
	}
}

func TestPaymentSummaryCountsByStatus(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	f.seedInvoice(t, invoicedomain.TypeInward, day(2025, time.March, 1), 1000, 1000, invoicedomain.StatusPaid)
	f.seedInvoice(t, invoicedomain.TypeInward, day(2025, time.March, 9), 2000, 500, invoicedomain.StatusPartial)
	// Every invoice type counts toward the month.
	f.seedInvoice(t, invoicedomain.TypeTransporter, day(2025, time.March, 15), 300, 0, invoicedomain.StatusPending)
	f.seedInvoice(t, invoicedomain.TypeInward, day(2025, time.April, 1), 5000, 0, invoicedomain.StatusPending)

	summary, err := f.svc.PaymentSummary(ctx, 2025, 3)
	if err != nil {
		t.Fatalf("payment summary: %v", err)
	}

	if summary.Year != 2025 || summary.Month != 3 {
		t.Fatalf("expected 2025/3, got %d/%d", summary.Year, summary.Month)
	}
	if !summary.TotalBilled.Equal(decimal.NewFromInt(3300)) {
		t.Fatalf("expected billed 3300, got %s", summary.TotalBilled)
	}
	if !summary.TotalReceived.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected received 1500, got %s", summary.TotalReceived)
	}
	if !summary.Outstanding.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("expected outstanding 1800, got %s", summary.Outstanding)
	}
	if summary.PaidCount != 1 || summary.PartialCount != 1 || summary.PendingCount != 1 {
		t.Fatalf("expected 1/1/1 status counts, got %d/%d/%d",
			summary.PaidCount, summary.PartialCount, summary.PendingCount)
	}
}

func TestPaymentSummaryEmptyMonth(t *testing.T) {
	f := setupDashboardFixture(t)

	summary, err := f.svc.PaymentSummary(context.Background(), 2025, 7)
	if err != nil {
		t.Fatalf("payment summary: %v", err)
	}
	if !summary.TotalBilled.IsZero() || !summary.Outstanding.IsZero() {
		t.Fatalf("expected zero summary, got billed %s outstanding %s", summary.TotalBilled, summary.Outstanding)
	}
	if summary.PendingCount+summary.PartialCount+summary.PaidCount != 0 {
		t.Fatal("expected zero counts for an empty month")
	}
}

func TestWasteFlowNormalizesToMetricTons(t *testing.T) {
	f := setupDashboardFixture(t)
	ctx := context.Background()

	f.seedInward(t, day(2025, time.February, 3), 2.5, entrydomain.UnitMT)
	f.seedInward(t, day(2025, time.February, 14), 1500, entrydomain.UnitKg)
	f.seedInward(t, day(2025, time.September, 1), 3, entrydomain.UnitKL)
	f.seedOutward(t, day(2025, time.February, 20), 1.2, entrydomain.UnitMT)
	// Other years stay out of the series.
	f.seedInward(t, day(2026, time.February, 1), 99, entrydomain.UnitMT)

	series, err := f.svc.WasteFlow(ctx, 2025)
	if err != nil {
		t.Fatalf("waste flow: %v", err)
	}
	if len(series) != 12 {
		t.Fatalf("expected 12 points, got %d", len(series))
	}

	// February: 2.5 MT + 1500 Kg = 4 MT inward, 1.2 MT outward.
	if !series[1].InwardMT.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected february inward 4 MT, got %s", series[1].InwardMT)
	}
	if !series[1].OutwardMT.Equal(decimal.NewFromFloat(1.2)) {
		t.Fatalf("expected february outward 1.2 MT, got %s", series[1].OutwardMT)
	}
	// KL passes through numerically.
	if !series[8].InwardMT.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected september inward 3 MT, got %s", series[8].InwardMT)
	}
	if !series[0].InwardMT.IsZero() || !series[0].OutwardMT.IsZero() {
		t.Fatal("expected january to be zero")
	}
}
