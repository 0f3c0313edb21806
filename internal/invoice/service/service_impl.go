package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	"github.com/wasteworks/hazbill/internal/invoice/calc"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	"github.com/wasteworks/hazbill/internal/invoice/format"
	settingdomain "github.com/wasteworks/hazbill/internal/setting/domain"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
	"github.com/wasteworks/hazbill/pkg/db"
	"github.com/wasteworks/hazbill/pkg/db/option"
	"github.com/wasteworks/hazbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// createAttempts bounds retries when two creations race for the same
// invoice number series. The unique index on invoice_no is the source
// of truth; the scan-and-increment is only optimistic.
const createAttempts = 3

var defaultGSTRate = decimal.NewFromInt(9)

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Settings settingdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	settings settingdomain.Service

	invoicerepo     repository.Repository[invoicedomain.Invoice]
	companyrepo     repository.Repository[companydomain.Company]
	transporterrepo repository.Repository[transporterdomain.Transporter]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		settings: p.Settings,

		invoicerepo:     repository.ProvideStore[invoicedomain.Invoice](p.DB),
		companyrepo:     repository.ProvideStore[companydomain.Company](p.DB),
		transporterrepo: repository.ProvideStore[transporterdomain.Transporter](p.DB),
	}
}

// loadDefaults reads the configuration snapshot an invoice write runs
// against. Always fetched fresh; rate changes must take effect on the
// next invoice without a restart.
func (s *Service) loadDefaults(ctx context.Context) (invoicedomain.Defaults, error) {
	cgst, err := s.settings.Decimal(ctx, settingdomain.KeyCGSTRate, defaultGSTRate)
	if err != nil {
		return invoicedomain.Defaults{}, err
	}
	sgst, err := s.settings.Decimal(ctx, settingdomain.KeySGSTRate, defaultGSTRate)
	if err != nil {
		return invoicedomain.Defaults{}, err
	}
	numberFormat, err := s.settings.String(ctx, settingdomain.KeyInvoiceNumberFormat, format.DefaultTemplate)
	if err != nil {
		return invoicedomain.Defaults{}, err
	}
	return invoicedomain.Defaults{
		CGSTRate:     cgst,
		SGSTRate:     sgst,
		NumberFormat: numberFormat,
	}, nil
}

// party is the resolved billing counterparty of an invoice.
type party struct {
	companyID     *snowflake.ID
	transporterID *snowflake.ID
	name          string
}

func (s *Service) resolveParty(ctx context.Context, invoiceType invoicedomain.InvoiceType, companyID, transporterID string) (party, error) {
	switch invoiceType {
	case invoicedomain.TypeInward, invoicedomain.TypeOutward:
		id, err := snowflake.ParseString(strings.TrimSpace(companyID))
		if err != nil || id == 0 {
			return party{}, invoicedomain.ErrInvalidParty
		}
		company, err := s.companyrepo.FindOne(ctx, &companydomain.Company{ID: id})
		if err != nil {
			return party{}, err
		}
		if company == nil {
			return party{}, companydomain.ErrNotFound
		}
		return party{companyID: &company.ID, name: company.Name}, nil
	case invoicedomain.TypeTransporter:
		id, err := snowflake.ParseString(strings.TrimSpace(transporterID))
		if err != nil || id == 0 {
			return party{}, invoicedomain.ErrInvalidParty
		}
		transporter, err := s.transporterrepo.FindOne(ctx, &transporterdomain.Transporter{ID: id})
		if err != nil {
			return party{}, err
		}
		if transporter == nil {
			return party{}, transporterdomain.ErrNotFound
		}
		return party{transporterID: &transporter.ID, name: transporter.Name}, nil
	default:
		return party{}, invoicedomain.ErrInvalidType
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	if !req.Type.Valid() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidType
	}
	resolvedParty, err := s.resolveParty(ctx, req.Type, req.CompanyID, req.TransporterID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if len(req.EntryIDs) > 0 && req.Type == invoicedomain.TypeTransporter {
		return invoicedomain.Invoice{}, invoicedomain.ErrEntryImportType
	}

	defaults, err := s.loadDefaults(ctx)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	rates, err := resolveRates(req.CGSTRate, req.SGSTRate, defaults)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if err := validateMaterialInputs(req.Materials); err != nil {
		return invoicedomain.Invoice{}, err
	}
	otherCharge, err := resolveOtherCharge(req.OtherCharge)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	payment, err := resolvePayment(req.PaymentReceived)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if req.Subtotal != nil && req.Subtotal.IsNegative() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now().UTC()
	}
	series, err := format.BuildSeries(defaults.NumberFormat, invoiceDate)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		customerName = resolvedParty.name
	}

	var created invoicedomain.Invoice
	for attempt := 1; attempt <= createAttempts; attempt++ {
		created, err = s.createOnce(ctx, req, resolvedParty, rates, otherCharge, payment, series, invoiceDate, customerName)
		if err == nil {
			return created, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return invoicedomain.Invoice{}, err
		}
		s.log.Warn("invoice number collision, retrying",
			zap.String("series", series),
			zap.Int("attempt", attempt),
		)
	}
	return invoicedomain.Invoice{}, invoicedomain.ErrNumberConflict
}

// createOnce runs one all-or-nothing creation attempt: number
// allocation, total computation and multi-row persistence share a
// single transaction so a failure at any step leaves no trace.
func (s *Service) createOnce(
	ctx context.Context,
	req invoicedomain.CreateInvoiceRequest,
	resolvedParty party,
	rates calc.TaxRates,
	otherCharge otherCharge,
	payment payment,
	series string,
	invoiceDate time.Time,
	customerName string,
) (invoicedomain.Invoice, error) {
	invoiceID := s.genID.Generate()
	var out invoicedomain.Invoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		materials := make([]invoicedomain.Material, 0, len(req.Materials)+len(req.EntryIDs))
		lines := make([]calc.Line, 0, cap(materials))

		for _, input := range req.Materials {
			amount := calc.LineAmount(calc.Line{Quantity: input.Quantity, Rate: input.Rate, Amount: input.Amount})
			materials = append(materials, invoicedomain.Material{
				ID:         s.genID.Generate(),
				InvoiceID:  invoiceID,
				Name:       strings.TrimSpace(input.Name),
				ManifestNo: strings.TrimSpace(input.ManifestNo),
				Quantity:   input.Quantity,
				Unit:       materialUnit(input.Unit),
				Rate:       input.Rate,
				Amount:     amount,
			})
			lines = append(lines, calc.Line{Quantity: input.Quantity, Rate: input.Rate, Amount: input.Amount})
		}

		if len(req.EntryIDs) > 0 {
			imported, err := s.importEntries(ctx, tx, req.Type, *resolvedParty.companyID, req.EntryIDs, invoiceID)
			if err != nil {
				return err
			}
			for _, material := range imported {
				materials = append(materials, material)
				lines = append(lines, calc.Line{Quantity: material.Quantity, Rate: material.Rate})
			}
		}

		totals := calc.ComputeTotals(lines, rates, otherCharge.amount, req.Subtotal)

		seq, err := s.nextSequence(tx, series)
		if err != nil {
			return err
		}
		invoiceNo, err := format.FormatNumber(series, seq)
		if err != nil {
			return err
		}

		invoice := invoicedomain.Invoice{
			ID:            invoiceID,
			InvoiceNo:     invoiceNo,
			Type:          req.Type,
			InvoiceDate:   invoiceDate,
			CompanyID:     resolvedParty.companyID,
			TransporterID: resolvedParty.transporterID,
			CustomerName:  customerName,

			Subtotal:   totals.Subtotal,
			CGSTRate:   rates.CGST,
			SGSTRate:   rates.SGST,
			CGSTAmount: totals.CGST,
			SGSTAmount: totals.SGST,

			OtherChargeDesc:     otherCharge.description,
			OtherChargeQuantity: otherCharge.quantity,
			OtherChargeRate:     otherCharge.rate,
			OtherChargeUnit:     otherCharge.unit,
			OtherChargeAmount:   otherCharge.amount,

			GrandTotal:      totals.GrandTotal,
			PaymentReceived: payment.received,
			PaymentDate:     payment.date(req.PaymentDate),
			Status:          invoicedomain.ResolveStatus(totals.GrandTotal, payment.received),

			Metadata: req.Metadata,
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		if len(materials) > 0 {
			if err := tx.Create(&materials).Error; err != nil {
				return err
			}
		}

		invoice.Materials = materials
		out = invoice
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return out, nil
}

// importEntries loads unbilled movement entries, marks them billed and
// synthesizes one material line per entry. The rate comes from the
// company's configured material-rate list, falling back to the rate
// stored on the entry itself.
func (s *Service) importEntries(
	ctx context.Context,
	tx *gorm.DB,
	invoiceType invoicedomain.InvoiceType,
	companyID snowflake.ID,
	entryIDs []string,
	invoiceID snowflake.ID,
) ([]invoicedomain.Material, error) {
	rateList, err := s.companyRates(ctx, tx, companyID)
	if err != nil {
		return nil, err
	}

	materials := make([]invoicedomain.Material, 0, len(entryIDs))
	for _, raw := range entryIDs {
		entryID, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || entryID == 0 {
			return nil, entrydomain.ErrInvalidID
		}

		var candidate struct {
			ID         snowflake.ID
			ManifestNo string
			WasteName  string
			Quantity   decimal.Decimal
			Unit       entrydomain.Unit
			Rate       *decimal.Decimal
			InvoiceID  *snowflake.ID
			CompanyID  snowflake.ID
		}

		table := "inward_entries"
		if invoiceType == invoicedomain.TypeOutward {
			table = "outward_entries"
		}
		result := tx.WithContext(ctx).Table(table).Where("id = ?", entryID).Limit(1).Find(&candidate)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 || candidate.ID == 0 {
			return nil, entrydomain.ErrNotFound
		}
		if candidate.CompanyID != companyID {
			return nil, invoicedomain.ErrInvalidParty
		}
		if candidate.InvoiceID != nil {
			return nil, fmt.Errorf("%w: manifest %s", invoicedomain.ErrEntryAlreadyBilled, candidate.ManifestNo)
		}

		rate, ok := rateList[strings.ToLower(candidate.WasteName)]
		if !ok {
			if candidate.Rate == nil {
				return nil, fmt.Errorf("%w: %s", invoicedomain.ErrMissingRate, candidate.WasteName)
			}
			rate = *candidate.Rate
		}

		update := tx.WithContext(ctx).Table(table).
			Where("id = ? AND invoice_id IS NULL", entryID).
			Update("invoice_id", invoiceID)
		if update.Error != nil {
			return nil, update.Error
		}
		if update.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: manifest %s", invoicedomain.ErrEntryAlreadyBilled, candidate.ManifestNo)
		}

		materials = append(materials, invoicedomain.Material{
			ID:         s.genID.Generate(),
			InvoiceID:  invoiceID,
			EntryID:    &candidate.ID,
			Name:       candidate.WasteName,
			ManifestNo: candidate.ManifestNo,
			Quantity:   candidate.Quantity,
			Unit:       string(candidate.Unit),
			Rate:       rate,
			Amount:     candidate.Quantity.Mul(rate).Round(2),
		})
	}
	return materials, nil
}

func (s *Service) companyRates(ctx context.Context, tx *gorm.DB, companyID snowflake.ID) (map[string]decimal.Decimal, error) {
	var rows []companydomain.MaterialRate
	if err := tx.WithContext(ctx).Where("company_id = ?", companyID).Find(&rows).Error; err != nil {
		return nil, err
	}
	rates := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		rates[strings.ToLower(row.MaterialName)] = row.Rate
	}
	return rates, nil
}

// nextSequence finds the highest allocated sequence in a series and
// returns the next one. Sequences start at 1 when the series is new.
// Numbers past four digits widen, so ordering on length first keeps
// the scan numeric where plain string order would put 9999 above 10000.
func (s *Service) nextSequence(tx *gorm.DB, series string) (int64, error) {
	var last []invoicedomain.Invoice
	err := tx.Model(&invoicedomain.Invoice{}).
		Where("invoice_no LIKE ?", series+"-%").
		Order("LENGTH(invoice_no) DESC, invoice_no DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return 0, err
	}
	if len(last) == 0 {
		return 1, nil
	}
	seq, ok := format.ParseSequence(last[0].InvoiceNo, series)
	if !ok {
		return 1, nil
	}
	return seq + 1, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) ([]invoicedomain.Invoice, error) {
	filter := &invoicedomain.Invoice{}
	if trimmed := strings.TrimSpace(req.Type); trimmed != "" {
		invoiceType := invoicedomain.InvoiceType(trimmed)
		if !invoiceType.Valid() {
			return nil, invoicedomain.ErrInvalidType
		}
		filter.Type = invoiceType
	}
	if trimmed := strings.TrimSpace(req.Status); trimmed != "" {
		filter.Status = invoicedomain.Status(trimmed)
	}
	if trimmed := strings.TrimSpace(req.CompanyID); trimmed != "" {
		companyID, err := snowflake.ParseString(trimmed)
		if err != nil || companyID == 0 {
			return nil, invoicedomain.ErrInvalidParty
		}
		filter.CompanyID = &companyID
	}
	if trimmed := strings.TrimSpace(req.TransporterID); trimmed != "" {
		transporterID, err := snowflake.ParseString(trimmed)
		if err != nil || transporterID == 0 {
			return nil, invoicedomain.ErrInvalidParty
		}
		filter.TransporterID = &transporterID
	}

	options := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"invoice_date": true, "created_at": true}, Field: "invoice_date", Desc: true}),
	}
	if req.DateFrom != nil {
		options = append(options, option.ApplyOperator(option.Condition{Field: "invoice_date", Operator: option.GTE, Value: *req.DateFrom}))
	}
	if req.DateTo != nil {
		options = append(options, option.ApplyOperator(option.Condition{Field: "invoice_date", Operator: option.LTE, Value: *req.DateTo}))
	}

	items, err := s.invoicerepo.Find(ctx, filter, options...)
	if err != nil {
		return nil, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	var invoices []invoicedomain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Materials").
		Where("id = ?", invoiceID).
		Limit(1).
		Find(&invoices).Error
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if len(invoices) == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}
	return invoices[0], nil
}

func (s *Service) Update(ctx context.Context, id string, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.Invoice, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	rates := calc.TaxRates{CGST: invoice.CGSTRate, SGST: invoice.SGSTRate}
	if req.CGSTRate != nil {
		if req.CGSTRate.IsNegative() {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
		}
		rates.CGST = *req.CGSTRate
	}
	if req.SGSTRate != nil {
		if req.SGSTRate.IsNegative() {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
		}
		rates.SGST = *req.SGSTRate
	}

	var newMaterials []invoicedomain.Material
	replaceMaterials := false
	if req.Materials != nil {
		for _, material := range invoice.Materials {
			if material.EntryID != nil {
				return invoicedomain.Invoice{}, invoicedomain.ErrHasLinkedEntries
			}
		}
		if err := validateMaterialInputs(*req.Materials); err != nil {
			return invoicedomain.Invoice{}, err
		}
		replaceMaterials = true
		for _, input := range *req.Materials {
			newMaterials = append(newMaterials, invoicedomain.Material{
				ID:         s.genID.Generate(),
				InvoiceID:  invoice.ID,
				Name:       strings.TrimSpace(input.Name),
				ManifestNo: strings.TrimSpace(input.ManifestNo),
				Quantity:   input.Quantity,
				Unit:       materialUnit(input.Unit),
				Rate:       input.Rate,
				Amount:     calc.LineAmount(calc.Line{Quantity: input.Quantity, Rate: input.Rate, Amount: input.Amount}),
			})
		}
	}

	otherChargeState := otherCharge{
		description: invoice.OtherChargeDesc,
		quantity:    invoice.OtherChargeQuantity,
		rate:        invoice.OtherChargeRate,
		unit:        invoice.OtherChargeUnit,
		amount:      invoice.OtherChargeAmount,
	}
	switch {
	case req.ClearOtherCharge:
		otherChargeState = otherCharge{}
	case req.OtherCharge != nil:
		otherChargeState, err = resolveOtherCharge(req.OtherCharge)
		if err != nil {
			return invoicedomain.Invoice{}, err
		}
	}

	subtotal := invoice.Subtotal
	if replaceMaterials {
		subtotal = decimal.Zero
		for _, material := range newMaterials {
			subtotal = subtotal.Add(material.Amount)
		}
	}
	if req.Subtotal != nil {
		if req.Subtotal.IsNegative() {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
		}
		subtotal = *req.Subtotal
	}

	totals := calc.ComputeTotals(nil, rates, otherChargeState.amount, &subtotal)

	paymentReceived := invoice.PaymentReceived
	paymentDate := invoice.PaymentDate
	switch {
	case req.ClearPayment:
		paymentReceived = decimal.Zero
		paymentDate = nil
	case req.PaymentReceived != nil:
		if req.PaymentReceived.IsNegative() {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidPayment
		}
		paymentReceived = *req.PaymentReceived
		if req.PaymentDate != nil {
			paymentDate = req.PaymentDate
		} else if paymentDate == nil && paymentReceived.IsPositive() {
			now := time.Now().UTC()
			paymentDate = &now
		}
	case req.PaymentDate != nil:
		paymentDate = req.PaymentDate
	}

	invoice.Subtotal = totals.Subtotal
	invoice.CGSTRate = rates.CGST
	invoice.SGSTRate = rates.SGST
	invoice.CGSTAmount = totals.CGST
	invoice.SGSTAmount = totals.SGST
	invoice.OtherChargeDesc = otherChargeState.description
	invoice.OtherChargeQuantity = otherChargeState.quantity
	invoice.OtherChargeRate = otherChargeState.rate
	invoice.OtherChargeUnit = otherChargeState.unit
	invoice.OtherChargeAmount = otherChargeState.amount
	invoice.GrandTotal = totals.GrandTotal
	invoice.PaymentReceived = paymentReceived
	invoice.PaymentDate = paymentDate
	// Status is re-derived whenever grand total or payment moves, in
	// the same transaction that persists them.
	invoice.Status = invoicedomain.ResolveStatus(totals.GrandTotal, paymentReceived)

	if req.InvoiceDate != nil {
		invoice.InvoiceDate = req.InvoiceDate.UTC()
	}
	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidParty
		}
		invoice.CustomerName = name
	}
	if req.Metadata != nil {
		invoice.Metadata = req.Metadata
	}

	persisted := invoice
	persisted.Materials = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceMaterials {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&invoicedomain.Material{}).Error; err != nil {
				return err
			}
			if len(newMaterials) > 0 {
				if err := tx.Create(&newMaterials).Error; err != nil {
					return err
				}
			}
		}
		return tx.Save(&persisted).Error
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes the invoice and its owned materials. Linked movement
// entries are unbilled, not destroyed: their invoice back-reference is
// cleared in the same transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entrydomain.InwardEntry{}).
			Where("invoice_id = ?", invoice.ID).
			Update("invoice_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entrydomain.OutwardEntry{}).
			Where("invoice_id = ?", invoice.ID).
			Update("invoice_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&invoicedomain.Material{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoicedomain.Invoice{}, "id = ?", invoice.ID).Error
	})
}

func (s *Service) Snapshot(ctx context.Context, id string) (invoicedomain.Snapshot, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return invoicedomain.Snapshot{}, err
	}

	snapshot := invoicedomain.Snapshot{Invoice: invoice}

	snapshot.SellerName, err = s.settings.String(ctx, settingdomain.KeyCompanyName, "")
	if err != nil {
		return invoicedomain.Snapshot{}, err
	}
	snapshot.SellerAddress, err = s.settings.String(ctx, settingdomain.KeyCompanyAddress, "")
	if err != nil {
		return invoicedomain.Snapshot{}, err
	}
	snapshot.SellerGSTIN, err = s.settings.String(ctx, settingdomain.KeyCompanyGSTIN, "")
	if err != nil {
		return invoicedomain.Snapshot{}, err
	}

	switch {
	case invoice.CompanyID != nil:
		company, err := s.companyrepo.FindOne(ctx, &companydomain.Company{ID: *invoice.CompanyID})
		if err != nil {
			return invoicedomain.Snapshot{}, err
		}
		if company != nil {
			snapshot.PartyName = company.Name
			snapshot.PartyAddress = company.Address
			snapshot.PartyGSTIN = company.GSTIN
		}
	case invoice.TransporterID != nil:
		transporter, err := s.transporterrepo.FindOne(ctx, &transporterdomain.Transporter{ID: *invoice.TransporterID})
		if err != nil {
			return invoicedomain.Snapshot{}, err
		}
		if transporter != nil {
			snapshot.PartyName = transporter.Name
			snapshot.PartyAddress = transporter.Address
			snapshot.PartyGSTIN = transporter.GSTIN
		}
	}
	if snapshot.PartyName == "" {
		snapshot.PartyName = invoice.CustomerName
	}

	return snapshot, nil
}
