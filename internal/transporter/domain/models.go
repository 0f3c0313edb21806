// Package domain contains persistence models for transporters.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Transporter is a freight operator carrying waste shipments.
// Code is the business-assigned identifier, unique across transporters.
type Transporter struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id,string"`
	Code         string       `gorm:"type:text;not null;uniqueIndex:ux_transporter_code" json:"code"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Address      string       `gorm:"type:text" json:"address"`
	GSTIN        string       `gorm:"column:gstin;type:text" json:"gstin"`
	ContactName  string       `gorm:"type:text" json:"contact_name"`
	ContactPhone string       `gorm:"type:text" json:"contact_phone"`
	VehicleCount int          `gorm:"not null;default:0" json:"vehicle_count"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Transporter) TableName() string { return "transporters" }
