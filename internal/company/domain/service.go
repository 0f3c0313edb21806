package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type CreateCompanyRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	GSTIN        string `json:"gstin"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}

type UpdateCompanyRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	GSTIN        *string `json:"gstin"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
}

type ListCompanyRequest struct {
	Code string
	Name string
}

type MaterialRateInput struct {
	MaterialName string          `json:"material_name"`
	Rate         decimal.Decimal `json:"rate"`
	Unit         string          `json:"unit"`
}

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	List(ctx context.Context, req ListCompanyRequest) ([]Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (Company, error)
	Delete(ctx context.Context, id string) error

	ListMaterialRates(ctx context.Context, companyID string) ([]MaterialRate, error)
	SetMaterialRates(ctx context.Context, companyID string, rates []MaterialRateInput) ([]MaterialRate, error)
}
