package service

import (
	"context"
	"strings"

	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	"github.com/wasteworks/hazbill/pkg/repository"
)

type OutwardService struct {
	deps
	entryrepo repository.Repository[entrydomain.OutwardEntry]
}

func NewOutwardService(p ServiceParam) entrydomain.OutwardService {
	return &OutwardService{
		deps:      newDeps(p, "entry.outward"),
		entryrepo: repository.ProvideStore[entrydomain.OutwardEntry](p.DB),
	}
}

func (s *OutwardService) Create(ctx context.Context, req entrydomain.CreateEntryRequest) (entrydomain.OutwardEntry, error) {
	resolved, err := s.validateCreate(ctx, req)
	if err != nil {
		return entrydomain.OutwardEntry{}, err
	}

	entry := entrydomain.OutwardEntry{
		ID:              s.genID.Generate(),
		EntryDate:       entryDate(req.EntryDate),
		ManifestNo:      resolved.manifestNo,
		CompanyID:       resolved.companyID,
		TransporterID:   resolved.transporterID,
		TransporterName: resolved.transporterName,
		WasteName:       resolved.wasteName,
		DestinationName: strings.TrimSpace(req.DestinationName),
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Rate:            req.Rate,
		VehicleNo:       strings.TrimSpace(req.VehicleNo),
	}

	if err := s.entryrepo.Create(ctx, &entry); err != nil {
		return entrydomain.OutwardEntry{}, mapCreateErr(err)
	}
	return entry, nil
}

func (s *OutwardService) List(ctx context.Context, req entrydomain.ListEntryRequest) ([]entrydomain.OutwardEntry, error) {
	filter := &entrydomain.OutwardEntry{}
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

	entries := make([]entrydomain.OutwardEntry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}
	return entries, nil
}

func (s *OutwardService) GetByID(ctx context.Context, id string) (entrydomain.OutwardEntry, error) {
	entryID, err := parseEntryID(id)
	if err != nil {
		return entrydomain.OutwardEntry{}, err
	}

	entry, err := s.entryrepo.FindOne(ctx, &entrydomain.OutwardEntry{ID: entryID})
	if err != nil {
		return entrydomain.OutwardEntry{}, err
	}
	if entry == nil {
		return entrydomain.OutwardEntry{}, entrydomain.ErrNotFound
	}
	return *entry, nil
}

func (s *OutwardService) Update(ctx context.Context, id string, req entrydomain.UpdateEntryRequest) (entrydomain.OutwardEntry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return entrydomain.OutwardEntry{}, err
	}

	updates, err := s.buildUpdates(ctx, entry, req)
	if err != nil {
		return entrydomain.OutwardEntry{}, err
	}
	if len(updates) == 0 {
		return entry, nil
	}

	if err := s.entryrepo.Update(ctx, entry.ID.String(), updates); err != nil {
		return entrydomain.OutwardEntry{}, mapCreateErr(err)
	}
	return s.GetByID(ctx, id)
}

func (s *OutwardService) buildUpdates(ctx context.Context, entry entrydomain.OutwardEntry, req entrydomain.UpdateEntryRequest) (map[string]any, error) {
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
	if req.DestinationName != nil {
		updates["destination_name"] = strings.TrimSpace(*req.DestinationName)
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

func (s *OutwardService) Delete(ctx context.Context, id string) error {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.InvoiceID != nil {
		return entrydomain.ErrEntryBilled
	}
	return s.entryrepo.Delete(ctx, entry.ID.String())
}
