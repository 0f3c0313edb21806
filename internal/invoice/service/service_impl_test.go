package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	settingdomain "github.com/wasteworks/hazbill/internal/setting/domain"
	settingservice "github.com/wasteworks/hazbill/internal/setting/service"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
	"github.com/wasteworks/hazbill/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	db          *gorm.DB
	node        *snowflake.Node
	svc         invoicedomain.Service
	settings    settingdomain.Service
	company     companydomain.Company
	transporter transporterdomain.Transporter
}

func setupInvoiceFixture(t *testing.T) invoiceFixture {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = conn.AutoMigrate(
		&companydomain.Company{},
		&companydomain.MaterialRate{},
		&transporterdomain.Transporter{},
		&entrydomain.InwardEntry{},
		&entrydomain.OutwardEntry{},
		&settingdomain.Setting{},
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

	company := companydomain.Company{ID: node.Generate(), Code: "ACME", Name: "Acme Chemicals", Address: "Plot 4, MIDC", GSTIN: "27AAAAA0000A1Z5"}
	if err := conn.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	transporter := transporterdomain.Transporter{ID: node.Generate(), Code: "TRK", Name: "Roadstar Logistics"}
	if err := conn.Create(&transporter).Error; err != nil {
		t.Fatalf("seed transporter: %v", err)
	}

	settings := settingservice.NewService(settingservice.ServiceParam{DB: conn, Log: zap.NewNop(), GenID: node})
	svc := NewService(ServiceParam{DB: conn, Log: zap.NewNop(), GenID: node, Settings: settings})

	return invoiceFixture{
		db:          conn,
		node:        node,
		svc:         svc,
		settings:    settings,
		company:     company,
		transporter: transporter,
	}
}

func (f invoiceFixture) seedRate(t *testing.T, material string, rate int64) {
	t.Helper()
	row := companydomain.MaterialRate{
		ID:           f.node.Generate(),
		CompanyID:    f.company.ID,
		MaterialName: material,
		Rate:         decimal.NewFromInt(rate),
		Unit:         "MT",
	}
	if err := f.db.Create(&row).Error; err != nil {
		t.Fatalf("seed rate: %v", err)
	}
}

func (f invoiceFixture) seedInwardEntry(t *testing.T, manifest, waste string, quantity float64, rate *decimal.Decimal) entrydomain.InwardEntry {
	t.Helper()
	entry := entrydomain.InwardEntry{
		ID:         f.node.Generate(),
		EntryDate:  time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		ManifestNo: manifest,
		CompanyID:  f.company.ID,
		WasteName:  waste,
		Quantity:   decimal.NewFromFloat(quantity),
		Unit:       entrydomain.UnitMT,
		Rate:       rate,
	}
	if err := f.db.Create(&entry).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return entry
}

func january15() time.Time {
	return time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
}

func TestCreateManualInvoiceComputesTotals(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		Materials: []invoicedomain.MaterialInput{
			{Name: "Spent Solvent", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if invoice.InvoiceNo != "INV-202501-0001" {
		t.Fatalf("expected INV-202501-0001, got %s", invoice.InvoiceNo)
	}
	if !invoice.Subtotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected subtotal 1000, got %s", invoice.Subtotal)
	}
	if !invoice.CGSTAmount.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected cgst 90, got %s", invoice.CGSTAmount)
	}
	if !invoice.SGSTAmount.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected sgst 90, got %s", invoice.SGSTAmount)
	}
	if !invoice.GrandTotal.Equal(decimal.NewFromInt(1180)) {
		t.Fatalf("expected grand total 1180, got %s", invoice.GrandTotal)
	}
	if invoice.Status != invoicedomain.StatusPending {
		t.Fatalf("expected pending, got %s", invoice.Status)
	}
	if invoice.CustomerName != f.company.Name {
		t.Fatalf("expected customer name to default to party, got %q", invoice.CustomerName)
	}
}

func TestCreateUsesConfiguredRatesAndFormat(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	_, err := f.settings.BulkUpsert(ctx, []settingdomain.UpsertSettingInput{
		{Key: settingdomain.KeyCGSTRate, Value: "6", Type: settingdomain.TypeNumber},
		{Key: settingdomain.KeySGSTRate, Value: "6", Type: settingdomain.TypeNumber},
		{Key: settingdomain.KeyInvoiceNumberFormat, Value: "HW/YYYYMM", Type: settingdomain.TypeString},
	})
	if err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		Materials: []invoicedomain.MaterialInput{
			{Name: "Spent Solvent", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if invoice.InvoiceNo != "HW/202501-0001" {
		t.Fatalf("expected HW/202501-0001, got %s", invoice.InvoiceNo)
	}
	if !invoice.CGSTAmount.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected cgst 60 at 6%%, got %s", invoice.CGSTAmount)
	}
}

func TestCreateSequentialNumbersPerSeries(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	material := []invoicedomain.MaterialInput{
		{Name: "Sludge", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
	}

	for i, want := range []string{"INV-202501-0001", "INV-202501-0002", "INV-202501-0003"} {
		invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
			Type:        invoicedomain.TypeInward,
			InvoiceDate: january15(),
			CompanyID:   f.company.ID.String(),
			Materials:   material,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if invoice.InvoiceNo != want {
			t.Fatalf("expected %s, got %s", want, invoice.InvoiceNo)
		}
	}

	// A different month opens its own series starting at 1.
	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		CompanyID:   f.company.ID.String(),
		Materials:   material,
	})
	if err != nil {
		t.Fatalf("create february: %v", err)
	}
	if invoice.InvoiceNo != "INV-202502-0001" {
		t.Fatalf("expected INV-202502-0001, got %s", invoice.InvoiceNo)
	}
}

func TestCreateFromEntriesPricesByCompanyRate(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	f.seedRate(t, "Spent Solvent", 1200)
	entryRate := decimal.NewFromInt(900)
	first := f.seedInwardEntry(t, "MAN-001", "Spent Solvent", 2.5, nil)
	second := f.seedInwardEntry(t, "MAN-002", "ETP Sludge", 4, &entryRate)

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		EntryIDs:    []string{first.ID.String(), second.ID.String()},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(invoice.Materials) != 2 {
		t.Fatalf("expected 2 material lines, got %d", len(invoice.Materials))
	}
	// 2.5 * 1200 (company rate) + 4 * 900 (entry fallback) = 6600
	if !invoice.Subtotal.Equal(decimal.NewFromInt(6600)) {
		t.Fatalf("expected subtotal 6600, got %s", invoice.Subtotal)
	}

	var reloaded entrydomain.InwardEntry
	if err := f.db.First(&reloaded, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("reload entry: %v", err)
	}
	if reloaded.InvoiceID == nil || *reloaded.InvoiceID != invoice.ID {
		t.Fatal("expected entry to be linked to the invoice")
	}

	for _, material := range invoice.Materials {
		if material.EntryID == nil {
			t.Fatalf("expected imported material %s to carry its entry id", material.Name)
		}
		if material.ManifestNo == "" {
			t.Fatalf("expected imported material %s to carry the manifest", material.Name)
		}
	}
}

func TestCreateFromEntriesMissingRate(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	entry := f.seedInwardEntry(t, "MAN-001", "Unpriced Waste", 1, nil)

	_, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		EntryIDs:    []string{entry.ID.String()},
	})
	if !errors.Is(err, invoicedomain.ErrMissingRate) {
		t.Fatalf("expected ErrMissingRate, got %v", err)
	}
}

func TestCreateFromEntriesAlreadyBilledRollsBack(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	f.seedRate(t, "Spent Solvent", 1200)
	first := f.seedInwardEntry(t, "MAN-001", "Spent Solvent", 2, nil)
	second := f.seedInwardEntry(t, "MAN-002", "Spent Solvent", 3, nil)

	if _, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		EntryIDs:    []string{first.ID.String()},
	}); err != nil {
		t.Fatalf("first invoice: %v", err)
	}

	_, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		EntryIDs:    []string{second.ID.String(), first.ID.String()},
	})
	if !errors.Is(err, invoicedomain.ErrEntryAlreadyBilled) {
		t.Fatalf("expected ErrEntryAlreadyBilled, got %v", err)
	}

	// The failed attempt must leave no trace: one invoice, one material
	// line, and the second entry still unbilled.
	var invoiceCount int64
	if err := f.db.Model(&invoicedomain.Invoice{}).Count(&invoiceCount).Error; err != nil {
		t.Fatalf("count invoices: %v", err)
	}
	if invoiceCount != 1 {
		t.Fatalf("expected 1 invoice after rollback, got %d", invoiceCount)
	}

	var materialCount int64
	if err := f.db.Model(&invoicedomain.Material{}).Count(&materialCount).Error; err != nil {
		t.Fatalf("count materials: %v", err)
	}
	if materialCount != 1 {
		t.Fatalf("expected 1 material after rollback, got %d", materialCount)
	}

	var reloaded entrydomain.InwardEntry
	if err := f.db.First(&reloaded, "id = ?", second.ID).Error; err != nil {
		t.Fatalf("reload second entry: %v", err)
	}
	if reloaded.InvoiceID != nil {
		t.Fatal("expected second entry to stay unbilled after rollback")
	}
}

func TestCreateTransporterInvoiceRejectsEntryImport(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	entry := f.seedInwardEntry(t, "MAN-001", "Spent Solvent", 1, nil)

	_, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:          invoicedomain.TypeTransporter,
		InvoiceDate:   january15(),
		TransporterID: f.transporter.ID.String(),
		EntryIDs:      []string{entry.ID.String()},
	})
	if !errors.Is(err, invoicedomain.ErrEntryImportType) {
		t.Fatalf("expected ErrEntryImportType, got %v", err)
	}
}

func TestUpdatePaymentRederivesStatus(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		Materials: []invoicedomain.MaterialInput{
			{Name: "Spent Solvent", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	full := decimal.NewFromInt(1180)
	updated, err := f.svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{PaymentReceived: &full})
	if err != nil {
		t.Fatalf("update payment: %v", err)
	}
	if updated.Status != invoicedomain.StatusPaid {
		t.Fatalf("expected paid, got %s", updated.Status)
	}
	if updated.PaymentDate == nil {
		t.Fatal("expected payment date to default when payment is recorded")
	}

	// Correcting the payment downward moves the invoice back to partial.
	partial := decimal.NewFromInt(500)
	updated, err = f.svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{PaymentReceived: &partial})
	if err != nil {
		t.Fatalf("correct payment: %v", err)
	}
	if updated.Status != invoicedomain.StatusPartial {
		t.Fatalf("expected partial after correction, got %s", updated.Status)
	}

	updated, err = f.svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{ClearPayment: true})
	if err != nil {
		t.Fatalf("clear payment: %v", err)
	}
	if updated.Status != invoicedomain.StatusPending {
		t.Fatalf("expected pending after clear, got %s", updated.Status)
	}
	if updated.PaymentDate != nil {
		t.Fatal("expected payment date cleared")
	}
}

func TestUpdateZeroPaymentLeavesDateUnset(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		Materials: []invoicedomain.MaterialInput{
			{Name: "Spent Solvent", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// An explicit zero is a no-op on payment state, not a payment.
	zero := decimal.Zero
	updated, err := f.svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{PaymentReceived: &zero})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != invoicedomain.StatusPending {
		t.Fatalf("expected pending, got %s", updated.Status)
	}
	if updated.PaymentDate != nil {
		t.Fatal("expected no payment date for a zero payment")
	}
}

func TestUpdateMaterialsRejectedWhenEntryLinked(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	f.seedRate(t, "Spent Solvent", 1200)
	entry := f.seedInwardEntry(t, "MAN-001", "Spent Solvent", 2, nil)

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		EntryIDs:    []string{entry.ID.String()},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replacement := []invoicedomain.MaterialInput{
		{Name: "Something Else", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)},
	}
	_, err = f.svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{Materials: &replacement})
	if !errors.Is(err, invoicedomain.ErrHasLinkedEntries) {
		t.Fatalf("expected ErrHasLinkedEntries, got %v", err)
	}
}

func TestUpdateReplacesManualMaterials(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		Materials: []invoicedomain.MaterialInput{
			{Name: "Spent Solvent", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replacement := []invoicedomain.MaterialInput{
		{Name: "ETP Sludge", Quantity: decimal.NewFromInt(5), Rate: decimal.NewFromInt(200)},
		{Name: "Filter Cake", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(150)},
	}
	updated, err := f.svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{Materials: &replacement})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(updated.Materials))
	}
	// 1000 + 300 = 1300 subtotal, recomputed from the new lines.
	if !updated.Subtotal.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("expected subtotal 1300, got %s", updated.Subtotal)
	}
	if !updated.GrandTotal.Equal(decimal.NewFromInt(1534)) {
		t.Fatalf("expected grand total 1534, got %s", updated.GrandTotal)
	}
}

func TestDeleteUnlinksEntriesAndRemovesMaterials(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	f.seedRate(t, "Spent Solvent", 1200)
	first := f.seedInwardEntry(t, "MAN-001", "Spent Solvent", 2, nil)
	second := f.seedInwardEntry(t, "MAN-002", "Spent Solvent", 3, nil)

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		EntryIDs:    []string{first.ID.String(), second.ID.String()},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Delete(ctx, invoice.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var entries []entrydomain.InwardEntry
	if err := f.db.Find(&entries).Error; err != nil {
		t.Fatalf("reload entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected entries to survive, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.InvoiceID != nil {
			t.Fatalf("expected entry %s to be unbilled after delete", entry.ManifestNo)
		}
	}

	var materialCount int64
	if err := f.db.Model(&invoicedomain.Material{}).Count(&materialCount).Error; err != nil {
		t.Fatalf("count materials: %v", err)
	}
	if materialCount != 0 {
		t.Fatalf("expected no orphan materials, got %d", materialCount)
	}

	if _, err := f.svc.GetByID(ctx, invoice.ID.String()); !errors.Is(err, invoicedomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSnapshotAssemblesSellerAndParty(t *testing.T) {
	f := setupInvoiceFixture(t)
	ctx := context.Background()

	_, err := f.settings.BulkUpsert(ctx, []settingdomain.UpsertSettingInput{
		{Key: settingdomain.KeyCompanyName, Value: "Enviro Care Disposal", Type: settingdomain.TypeString},
		{Key: settingdomain.KeyCompanyGSTIN, Value: "27BBBBB0000B1Z5", Type: settingdomain.TypeString},
	})
	if err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	invoice, err := f.svc.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Type:        invoicedomain.TypeInward,
		InvoiceDate: january15(),
		CompanyID:   f.company.ID.String(),
		Materials: []invoicedomain.MaterialInput{
			{Name: "Spent Solvent", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	snapshot, err := f.svc.Snapshot(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snapshot.SellerName != "Enviro Care Disposal" {
		t.Fatalf("expected seller from settings, got %q", snapshot.SellerName)
	}
	if snapshot.PartyName != f.company.Name {
		t.Fatalf("expected party from company, got %q", snapshot.PartyName)
	}
	if snapshot.PartyGSTIN != f.company.GSTIN {
		t.Fatalf("expected party GSTIN, got %q", snapshot.PartyGSTIN)
	}
}
