// Package domain contains persistence models for waste movement entries.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Unit is the quantity unit recorded on an entry.
type Unit string

const (
	UnitMT Unit = "MT"
	UnitKg Unit = "Kg"
	UnitKL Unit = "KL"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitMT, UnitKg, UnitKL:
		return true
	default:
		return false
	}
}

var kgPerTon = decimal.NewFromInt(1000)

// ToMetricTons normalizes a quantity to metric tons for reporting.
// KL is treated as numerically equal to MT. That is a deliberate
// approximation carried over from how reports have always been read,
// not a unit-correct conversion.
func ToMetricTons(quantity decimal.Decimal, unit Unit) decimal.Decimal {
	switch unit {
	case UnitKg:
		return quantity.Div(kgPerTon)
	default:
		return quantity
	}
}

// InwardEntry records a waste shipment received from a generator company.
// ManifestNo is unique within the company that generated the shipment.
// InvoiceID is set when the entry is billed and cleared when that
// invoice is deleted; the entry itself is never cascaded away.
type InwardEntry struct {
	ID              snowflake.ID     `gorm:"primaryKey" json:"id,string"`
	EntryDate       time.Time        `gorm:"not null;index" json:"entry_date"`
	ManifestNo      string           `gorm:"type:text;not null;uniqueIndex:ux_inward_manifest" json:"manifest_no"`
	CompanyID       snowflake.ID     `gorm:"not null;index;uniqueIndex:ux_inward_manifest" json:"company_id,string"`
	TransporterID   *snowflake.ID    `gorm:"index" json:"transporter_id,string,omitempty"`
	TransporterName string           `gorm:"type:text" json:"transporter_name"`
	WasteName       string           `gorm:"type:text;not null" json:"waste_name"`
	Quantity        decimal.Decimal  `gorm:"type:decimal(20,3);not null" json:"quantity"`
	Unit            Unit             `gorm:"type:text;not null;default:'MT'" json:"unit"`
	Rate            *decimal.Decimal `gorm:"type:decimal(20,2)" json:"rate,omitempty"`
	VehicleNo       string           `gorm:"type:text" json:"vehicle_no"`
	InvoiceID       *snowflake.ID    `gorm:"index" json:"invoice_id,string,omitempty"`
	CreatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InwardEntry) TableName() string { return "inward_entries" }

// OutwardEntry records a waste shipment dispatched to a receiving plant.
type OutwardEntry struct {
	ID              snowflake.ID     `gorm:"primaryKey" json:"id,string"`
	EntryDate       time.Time        `gorm:"not null;index" json:"entry_date"`
	ManifestNo      string           `gorm:"type:text;not null;uniqueIndex:ux_outward_manifest" json:"manifest_no"`
	CompanyID       snowflake.ID     `gorm:"not null;index;uniqueIndex:ux_outward_manifest" json:"company_id,string"`
	TransporterID   *snowflake.ID    `gorm:"index" json:"transporter_id,string,omitempty"`
	TransporterName string           `gorm:"type:text" json:"transporter_name"`
	WasteName       string           `gorm:"type:text;not null" json:"waste_name"`
	DestinationName string           `gorm:"type:text" json:"destination_name"`
	Quantity        decimal.Decimal  `gorm:"type:decimal(20,3);not null" json:"quantity"`
	Unit            Unit             `gorm:"type:text;not null;default:'MT'" json:"unit"`
	Rate            *decimal.Decimal `gorm:"type:decimal(20,2)" json:"rate,omitempty"`
	VehicleNo       string           `gorm:"type:text" json:"vehicle_no"`
	InvoiceID       *snowflake.ID    `gorm:"index" json:"invoice_id,string,omitempty"`
	CreatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (OutwardEntry) TableName() string { return "outward_entries" }
