package service

import (
	"context"
	"strings"

	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	"github.com/wasteworks/hazbill/pkg/repository"
)

type InwardService struct {
	deps
	entryrepo repository.Repository[entrydomain.InwardEntry]
}

func NewInwardService(p ServiceParam) entrydomain.InwardService {
	return &InwardService{
		deps:      newDeps(p, "entry.inward"),
		entryrepo: repository.ProvideStore[entrydomain.InwardEntry](p.DB),
	}
}

func (s *InwardService) Create(ctx context.Context, req entrydomain.CreateEntryRequest) (entrydomain.InwardEntry, error) {
	resolved, err := s.validateCreate(ctx, req)
	if err != nil {
		return entrydomain.InwardEntry{}, err
	}

	entry := entrydomain.InwardEntry{
		ID:              s.genID.Generate(),
		EntryDate:       entryDate(req.EntryDate),
		ManifestNo:      resolved.manifestNo,
		CompanyID:       resolved.companyID,
		TransporterID:   resolved.transporterID,
		TransporterName: resolved.transporterName,
		WasteName:       resolved.wasteName,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Rate:            req.Rate,
		VehicleNo:       strings.TrimSpace(req.VehicleNo),
	}

	if err := s.entryrepo.Create(ctx, &entry); err != nil {
		return entrydomain.InwardEntry{}, mapCreateErr(err)
	}
	return entry, nil
}

func (s *InwardService) List(ctx context.Context, req entrydomain.ListEntryRequest) ([]entrydomain.InwardEntry, error) {
	filter := &entrydomain.InwardEntry{}
	if trimmed := strings.TrimSpace(req.CompanyID); trimmed != "" {
		companyID, err := parseEntryID(trimmed)
		if err != nil {
			return nil, err
		}
		filter.CompanyID = companyID
	}
	if trimmed := strings.TrimSpace(req.TransporterID); trimmed != "" {
		transporterID, err := parseEntryID(trimmed)
		if err != nil {
			return nil, err
		}
		filter.TransporterID = &transporterID
	}

	items, err := s.entryrepo.Find(ctx, filter, listOptions(req)...)
	if err != nil {
		return nil, err
	}

	entries := make([]entrydomain.InwardEntry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}
	return entries, nil
}

func (s *InwardService) GetByID(ctx context.Context, id string) (entrydomain.InwardEntry, error) {
	entryID, err := parseEntryID(id)
	if err != nil {
		return entrydomain.InwardEntry{}, err
	}

	entry, err := s.entryrepo.FindOne(ctx, &entrydomain.InwardEntry{ID: entryID})
	if err != nil {
		return entrydomain.InwardEntry{}, err
	}
	if entry == nil {
		return entrydomain.InwardEntry{}, entrydomain.ErrNotFound
	}
	return *entry, nil
}

func (s *InwardService) Update(ctx context.Context, id string, req entrydomain.UpdateEntryRequest) (entrydomain.InwardEntry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return entrydomain.InwardEntry{}, err
	}

	updates, err := s.buildUpdates(ctx, entry, req)
	if err != nil {
		return entrydomain.InwardEntry{}, err
	}
	if len(updates) == 0 {
		return entry, nil
	}

	if err := s.entryrepo.Update(ctx, entry.ID.String(), updates); err != nil {
		return entrydomain.InwardEntry{}, mapCreateErr(err)
	}
	return s.GetByID(ctx, id)
}

func (s *InwardService) buildUpdates(ctx context.Context, entry entrydomain.InwardEntry, req entrydomain.UpdateEntryRequest) (map[string]any, error) {
	// Quantity, unit, rate and manifest are frozen once the entry is billed;
	// they feed the invoice aggregation and must stay consistent with it.
	billed := entry.InvoiceID != nil
	updates := map[string]any{}

	if req.EntryDate != nil {
		updates["entry_date"] = req.EntryDate.UTC()
	}
	if req.ManifestNo != nil {
		if billed {
			return nil, entrydomain.ErrEntryBilled
		}
		manifest := strings.TrimSpace(*req.ManifestNo)
		if manifest == "" {
			return nil, entrydomain.ErrInvalidManifest
		}
		updates["manifest_no"] = manifest
	}
	if req.TransporterID != nil {
		transporterID, transporterName, err := s.resolveTransporter(ctx, *req.TransporterID)
		if err != nil {
			return nil, err
		}
		updates["transporter_id"] = transporterID
		updates["transporter_name"] = transporterName
	}
	if req.WasteName != nil {
		wasteName := strings.TrimSpace(*req.WasteName)
		if wasteName == "" {
			return nil, entrydomain.ErrInvalidWasteName
		}
		updates["waste_name"] = wasteName
	}
	if req.Quantity != nil {
		if billed {
			return nil, entrydomain.ErrEntryBilled
		}
		if !req.Quantity.IsPositive() {
			return nil, entrydomain.ErrInvalidQuantity
		}
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		if billed {
			return nil, entrydomain.ErrEntryBilled
		}
		if !req.Unit.Valid() {
			return nil, entrydomain.ErrInvalidUnit
		}
		updates["unit"] = *req.Unit
	}
	if req.Rate != nil {
		if billed {
			return nil, entrydomain.ErrEntryBilled
		}
		if req.Rate.IsNegative() {
			return nil, entrydomain.ErrInvalidRate
		}
		updates["rate"] = *req.Rate
	}
	if req.VehicleNo != nil {
		updates["vehicle_no"] = strings.TrimSpace(*req.VehicleNo)
	}
	return updates, nil
}

func (s *InwardService) Delete(ctx context.Context, id string) error {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.InvoiceID != nil {
		return entrydomain.ErrEntryBilled
	}
	return s.entryrepo.Delete(ctx, entry.ID.String())
}
