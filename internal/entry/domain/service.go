package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("entry_not_found")
	ErrInvalidID          = errors.New("invalid_entry_id")
	ErrInvalidManifest    = errors.New("invalid_manifest_no")
	ErrInvalidWasteName   = errors.New("invalid_waste_name")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidUnit        = errors.New("invalid_unit")
	ErrInvalidRate        = errors.New("invalid_rate")
	ErrDuplicateManifest  = errors.New("duplicate_manifest_no")
	ErrEntryBilled        = errors.New("entry_already_billed")
	ErrInvalidCompany     = errors.New("invalid_entry_company")
	ErrInvalidTransporter = errors.New("invalid_entry_transporter")
)

// Direction selects which movement table an operation targets.
type Direction string

const (
	DirectionInward  Direction = "inward"
	DirectionOutward Direction = "outward"
)

type CreateEntryRequest struct {
	EntryDate       time.Time
	ManifestNo      string
	CompanyID       string
	TransporterID   string
	WasteName       string
	DestinationName string
	Quantity        decimal.Decimal
	Unit            Unit
	Rate            *decimal.Decimal
	VehicleNo       string
}

type UpdateEntryRequest struct {
	EntryDate       *time.Time
	ManifestNo      *string
	TransporterID   *string
	WasteName       *string
	DestinationName *string
	Quantity        *decimal.Decimal
	Unit            *Unit
	Rate            *decimal.Decimal
	VehicleNo       *string
}

type ListEntryRequest struct {
	CompanyID     string
	TransporterID string
	Unbilled      bool
	DateFrom      *time.Time
	DateTo        *time.Time
}

type InwardService interface {
	Create(ctx context.Context, req CreateEntryRequest) (InwardEntry, error)
	List(ctx context.Context, req ListEntryRequest) ([]InwardEntry, error)
	GetByID(ctx context.Context, id string) (InwardEntry, error)
	Update(ctx context.Context, id string, req UpdateEntryRequest) (InwardEntry, error)
	Delete(ctx context.Context, id string) error
}

type OutwardService interface {
	Create(ctx context.Context, req CreateEntryRequest) (OutwardEntry, error)
	List(ctx context.Context, req ListEntryRequest) ([]OutwardEntry, error)
	GetByID(ctx context.Context, id string) (OutwardEntry, error)
	Update(ctx context.Context, id string, req UpdateEntryRequest) (OutwardEntry, error)
	Delete(ctx context.Context, id string) error
}
