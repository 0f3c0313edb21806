package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("transporter_not_found")
	ErrInvalidID     = errors.New("invalid_transporter_id")
	ErrInvalidCode   = errors.New("invalid_transporter_code")
	ErrInvalidName   = errors.New("invalid_transporter_name")
	ErrDuplicateCode = errors.New("duplicate_transporter_code")
)

type CreateTransporterRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	GSTIN        string `json:"gstin"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	VehicleCount int    `json:"vehicle_count"`
}

type UpdateTransporterRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	GSTIN        *string `json:"gstin"`
	ContactName  *string `json:"contact_name"`
	ContactPhone *string `json:"contact_phone"`
	VehicleCount *int    `json:"vehicle_count"`
}

type ListTransporterRequest struct {
	Code string
	Name string
}

type Service interface {
	Create(ctx context.Context, req CreateTransporterRequest) (Transporter, error)
	List(ctx context.Context, req ListTransporterRequest) ([]Transporter, error)
	GetByID(ctx context.Context, id string) (Transporter, error)
	Update(ctx context.Context, id string, req UpdateTransporterRequest) (Transporter, error)
	Delete(ctx context.Context, id string) error
}
