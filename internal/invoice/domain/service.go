package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type MaterialInput struct {
	Name       string           `json:"name"`
	ManifestNo string           `json:"manifest_no"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Unit       string           `json:"unit"`
	Rate       decimal.Decimal  `json:"rate"`
	Amount     *decimal.Decimal `json:"amount"`
}

type OtherChargeInput struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Rate        *decimal.Decimal `json:"rate"`
	Unit        string           `json:"unit"`
	Amount      *decimal.Decimal `json:"amount"`
}

type CreateInvoiceRequest struct {
	Type          InvoiceType
	InvoiceDate   time.Time
	CompanyID     string
	TransporterID string
	CustomerName  string

	Materials []MaterialInput
	EntryIDs  []string

	Subtotal    *decimal.Decimal
	CGSTRate    *decimal.Decimal
	SGSTRate    *decimal.Decimal
	OtherCharge *OtherChargeInput

	PaymentReceived *decimal.Decimal
	PaymentDate     *time.Time

	Metadata map[string]any
}

type UpdateInvoiceRequest struct {
	InvoiceDate  *time.Time
	CustomerName *string

	// Materials replaces the manual line set. Rejected when the
	// invoice has entry-imported lines.
	Materials *[]MaterialInput

	Subtotal         *decimal.Decimal
	CGSTRate         *decimal.Decimal
	SGSTRate         *decimal.Decimal
	OtherCharge      *OtherChargeInput
	ClearOtherCharge bool

	PaymentReceived *decimal.Decimal
	PaymentDate     *time.Time
	ClearPayment    bool

	Metadata map[string]any
}

type ListInvoiceRequest struct {
	Type          string
	Status        string
	CompanyID     string
	TransporterID string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// Snapshot is the flattened, finalized view handed to one-way
// consumers such as the PDF renderer.
type Snapshot struct {
	Invoice Invoice

	SellerName    string
	SellerAddress string
	SellerGSTIN   string

	PartyName    string
	PartyAddress string
	PartyGSTIN   string
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error

	// Snapshot assembles the finalized invoice view for export.
	Snapshot(ctx context.Context, id string) (Snapshot, error)
}
