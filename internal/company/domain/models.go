// Package domain contains persistence models for client companies.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Company is a party that generates or receives hazardous waste.
// Code is the business-assigned identifier, unique across companies.
type Company struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id,string"`
	Code         string       `gorm:"type:text;not null;uniqueIndex:ux_company_code" json:"code"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Address      string       `gorm:"type:text" json:"address"`
	GSTIN        string       `gorm:"column:gstin;type:text" json:"gstin"`
	ContactName  string       `gorm:"type:text" json:"contact_name"`
	ContactPhone string       `gorm:"type:text" json:"contact_phone"`
	ContactEmail string       `gorm:"type:text" json:"contact_email"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Company) TableName() string { return "companies" }

// MaterialRate is a per-company billing rate for a named material.
// Used to price entry imports at invoicing time.
type MaterialRate struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id,string"`
	CompanyID    snowflake.ID    `gorm:"not null;index;uniqueIndex:ux_company_material" json:"company_id,string"`
	MaterialName string          `gorm:"type:text;not null;uniqueIndex:ux_company_material" json:"material_name"`
	Rate         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"rate"`
	Unit         string          `gorm:"type:text;not null;default:'MT'" json:"unit"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (MaterialRate) TableName() string { return "company_material_rates" }
