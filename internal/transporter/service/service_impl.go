package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
	"github.com/wasteworks/hazbill/pkg/db"
	"github.com/wasteworks/hazbill/pkg/db/option"
	"github.com/wasteworks/hazbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node

	transporterrepo repository.Repository[transporterdomain.Transporter]
}

func NewService(p ServiceParam) transporterdomain.Service {
	return &Service{
		log:   p.Log.Named("transporter.service"),
		genID: p.GenID,

		transporterrepo: repository.ProvideStore[transporterdomain.Transporter](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req transporterdomain.CreateTransporterRequest) (transporterdomain.Transporter, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return transporterdomain.Transporter{}, transporterdomain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return transporterdomain.Transporter{}, transporterdomain.ErrInvalidName
	}

	transporter := transporterdomain.Transporter{
		ID:           s.genID.Generate(),
		Code:         code,
		Name:         name,
		Address:      strings.TrimSpace(req.Address),
		GSTIN:        strings.TrimSpace(req.GSTIN),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		VehicleCount: req.VehicleCount,
	}

	if err := s.transporterrepo.Create(ctx, &transporter); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return transporterdomain.Transporter{}, transporterdomain.ErrDuplicateCode
		}
		return transporterdomain.Transporter{}, err
	}
	return transporter, nil
}

func (s *Service) List(ctx context.Context, req transporterdomain.ListTransporterRequest) ([]transporterdomain.Transporter, error) {
	filter := &transporterdomain.Transporter{
		Code: strings.TrimSpace(req.Code),
		Name: strings.TrimSpace(req.Name),
	}

	items, err := s.transporterrepo.Find(ctx, filter,
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"name": true}, Field: "name"}))
	if err != nil {
		return nil, err
	}

	transporters := make([]transporterdomain.Transporter, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		transporters = append(transporters, *item)
	}
	return transporters, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (transporterdomain.Transporter, error) {
	transporterID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || transporterID == 0 {
		return transporterdomain.Transporter{}, transporterdomain.ErrInvalidID
	}

	transporter, err := s.transporterrepo.FindOne(ctx, &transporterdomain.Transporter{ID: transporterID})
	if err != nil {
		return transporterdomain.Transporter{}, err
	}
	if transporter == nil {
		return transporterdomain.Transporter{}, transporterdomain.ErrNotFound
	}
	return *transporter, nil
}

func (s *Service) Update(ctx context.Context, id string, req transporterdomain.UpdateTransporterRequest) (transporterdomain.Transporter, error) {
	transporter, err := s.GetByID(ctx, id)
	if err != nil {
		return transporterdomain.Transporter{}, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return transporterdomain.Transporter{}, transporterdomain.ErrInvalidName
		}
		updates["name"] = name
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.GSTIN != nil {
		updates["gstin"] = strings.TrimSpace(*req.GSTIN)
	}
	if req.ContactName != nil {
		updates["contact_name"] = strings.TrimSpace(*req.ContactName)
	}
	if req.ContactPhone != nil {
		updates["contact_phone"] = strings.TrimSpace(*req.ContactPhone)
	}
	if req.VehicleCount != nil {
		updates["vehicle_count"] = *req.VehicleCount
	}
	if len(updates) == 0 {
		return transporter, nil
	}

	if err := s.transporterrepo.Update(ctx, transporter.ID.String(), updates); err != nil {
		return transporterdomain.Transporter{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	transporter, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.transporterrepo.Delete(ctx, transporter.ID.String())
}
