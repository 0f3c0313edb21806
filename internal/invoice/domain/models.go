// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceType classifies who the invoice bills. It is immutable
// after creation.
type InvoiceType string

const (
	// TypeInward bills a generator company for waste received.
	TypeInward InvoiceType = "inward"
	// TypeOutward bills a receiving plant for waste dispatched.
	TypeOutward InvoiceType = "outward"
	// TypeTransporter bills a transporter for freight.
	TypeTransporter InvoiceType = "transporter"
)

func (t InvoiceType) Valid() bool {
	switch t {
	case TypeInward, TypeOutward, TypeTransporter:
		return true
	default:
		return false
	}
}

// Status is the payment state of an invoice. It is derived from
// grand total and payment received, and persisted for query
// efficiency; every write that touches either value re-derives it.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// paymentEpsilon absorbs 2-decimal rounding drift when comparing
// payment received against the grand total.
var paymentEpsilon = decimal.New(1, -2)

// ResolveStatus derives the payment status from the grand total and
// the payment received. Pure and total over its inputs.
func ResolveStatus(grandTotal, paymentReceived decimal.Decimal) Status {
	if paymentReceived.LessThanOrEqual(decimal.Zero) {
		return StatusPending
	}
	if paymentReceived.GreaterThanOrEqual(grandTotal.Sub(paymentEpsilon)) {
		return StatusPaid
	}
	return StatusPartial
}

// Invoice is a billing document of exactly one type. CompanyID and
// TransporterID are mutually exclusive depending on Type. The invoice
// exclusively owns its Material rows; entries referenced by materials
// keep a nullable back-link that is cleared when the invoice is deleted.
type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id,string"`
	InvoiceNo     string        `gorm:"type:text;not null;uniqueIndex:ux_invoice_no" json:"invoice_no"`
	Type          InvoiceType   `gorm:"type:text;not null" json:"type"`
	InvoiceDate   time.Time     `gorm:"not null;index" json:"invoice_date"`
	CompanyID     *snowflake.ID `gorm:"index" json:"company_id,string,omitempty"`
	TransporterID *snowflake.ID `gorm:"index" json:"transporter_id,string,omitempty"`
	CustomerName  string        `gorm:"type:text;not null" json:"customer_name"`

	Subtotal   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	CGSTRate   decimal.Decimal `gorm:"column:cgst_rate;type:decimal(6,2);not null" json:"cgst_rate"`
	SGSTRate   decimal.Decimal `gorm:"column:sgst_rate;type:decimal(6,2);not null" json:"sgst_rate"`
	CGSTAmount decimal.Decimal `gorm:"column:cgst_amount;type:decimal(20,2);not null" json:"cgst_amount"`
	SGSTAmount decimal.Decimal `gorm:"column:sgst_amount;type:decimal(20,2);not null" json:"sgst_amount"`

	OtherChargeDesc     string           `gorm:"type:text" json:"other_charge_desc"`
	OtherChargeQuantity *decimal.Decimal `gorm:"type:decimal(20,3)" json:"other_charge_quantity,omitempty"`
	OtherChargeRate     *decimal.Decimal `gorm:"type:decimal(20,2)" json:"other_charge_rate,omitempty"`
	OtherChargeUnit     string           `gorm:"type:text" json:"other_charge_unit"`
	OtherChargeAmount   decimal.Decimal  `gorm:"type:decimal(20,2);not null;default:0" json:"other_charge_amount"`

	GrandTotal      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"grand_total"`
	PaymentReceived decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"payment_received"`
	PaymentDate     *time.Time      `gorm:"" json:"payment_date,omitempty"`
	Status          Status          `gorm:"type:text;not null;default:'pending';index" json:"status"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	Materials []Material `gorm:"foreignKey:InvoiceID" json:"materials,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Material is a line on an invoice. EntryID points at the movement
// entry the line was imported from, when it was not entered manually.
type Material struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id,string"`
	InvoiceID  snowflake.ID    `gorm:"not null;index" json:"invoice_id,string"`
	EntryID    *snowflake.ID   `gorm:"index" json:"entry_id,string,omitempty"`
	Name       string          `gorm:"type:text;not null" json:"name"`
	ManifestNo string          `gorm:"type:text" json:"manifest_no"`
	Quantity   decimal.Decimal `gorm:"type:decimal(20,3);not null" json:"quantity"`
	Unit       string          `gorm:"type:text;not null;default:'MT'" json:"unit"`
	Rate       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"rate"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Material) TableName() string { return "invoice_materials" }

// Defaults is the configuration snapshot an invoice write runs
// against. It is loaded fresh from settings on every call and passed
// explicitly so tests can pin rates.
type Defaults struct {
	CGSTRate     decimal.Decimal
	SGSTRate     decimal.Decimal
	NumberFormat string
}
