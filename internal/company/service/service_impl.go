package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
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
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	companyrepo repository.Repository[companydomain.Company]
	raterepo    repository.Repository[companydomain.MaterialRate]
}

func NewService(p ServiceParam) companydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,

		companyrepo: repository.ProvideStore[companydomain.Company](p.DB),
		raterepo:    repository.ProvideStore[companydomain.MaterialRate](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req companydomain.CreateCompanyRequest) (companydomain.Company, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return companydomain.Company{}, companydomain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return companydomain.Company{}, companydomain.ErrInvalidName
	}

	company := companydomain.Company{
		ID:           s.genID.Generate(),
		Code:         code,
		Name:         name,
		Address:      strings.TrimSpace(req.Address),
		GSTIN:        strings.TrimSpace(req.GSTIN),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
	}

	if err := s.companyrepo.Create(ctx, &company); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return companydomain.Company{}, companydomain.ErrDuplicateCode
		}
		return companydomain.Company{}, err
	}

	return company, nil
}

func (s *Service) List(ctx context.Context, req companydomain.ListCompanyRequest) ([]companydomain.Company, error) {
	filter := &companydomain.Company{Code: strings.TrimSpace(req.Code)}

	options := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"created_at": true, "name": true}, Field: "name"}),
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		filter.Name = name
	}

	items, err := s.companyrepo.Find(ctx, filter, options...)
	if err != nil {
		return nil, err
	}

	companies := make([]companydomain.Company, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		companies = append(companies, *item)
	}
	return companies, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (companydomain.Company, error) {
	companyID, err := parseID(id)
	if err != nil {
		return companydomain.Company{}, err
	}

	company, err := s.companyrepo.FindOne(ctx, &companydomain.Company{ID: companyID})
	if err != nil {
		return companydomain.Company{}, err
	}
	if company == nil {
		return companydomain.Company{}, companydomain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) Update(ctx context.Context, id string, req companydomain.UpdateCompanyRequest) (companydomain.Company, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return companydomain.Company{}, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return companydomain.Company{}, companydomain.ErrInvalidName
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
	if req.ContactEmail != nil {
		updates["contact_email"] = strings.TrimSpace(*req.ContactEmail)
	}
	if len(updates) == 0 {
		return company, nil
	}

	if err := s.companyrepo.Update(ctx, company.ID.String(), updates); err != nil {
		return companydomain.Company{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", company.ID).Delete(&companydomain.MaterialRate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&companydomain.Company{}, "id = ?", company.ID).Error
	})
}

func (s *Service) ListMaterialRates(ctx context.Context, companyID string) ([]companydomain.MaterialRate, error) {
	company, err := s.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	items, err := s.raterepo.Find(ctx, &companydomain.MaterialRate{CompanyID: company.ID},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"material_name": true}, Field: "material_name"}))
	if err != nil {
		return nil, err
	}

	rates := make([]companydomain.MaterialRate, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rates = append(rates, *item)
	}
	return rates, nil
}

// SetMaterialRates replaces the whole rate list for a company in one transaction.
func (s *Service) SetMaterialRates(ctx context.Context, companyID string, rates []companydomain.MaterialRateInput) ([]companydomain.MaterialRate, error) {
	company, err := s.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	rows := make([]*companydomain.MaterialRate, 0, len(rates))
	for _, input := range rates {
		name := strings.TrimSpace(input.MaterialName)
		if name == "" || input.Rate.IsNegative() {
			return nil, companydomain.ErrInvalidRate
		}
		unit := strings.TrimSpace(input.Unit)
		if unit == "" {
			unit = "MT"
		}
		rows = append(rows, &companydomain.MaterialRate{
			ID:           s.genID.Generate(),
			CompanyID:    company.ID,
			MaterialName: name,
			Rate:         input.Rate,
			Unit:         unit,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", company.ID).Delete(&companydomain.MaterialRate{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return s.raterepo.WithTrx(tx).BatchCreate(ctx, rows)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, companydomain.ErrInvalidRate
		}
		return nil, err
	}

	return s.ListMaterialRates(ctx, companyID)
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, companydomain.ErrInvalidID
	}
	return parsed, nil
}
