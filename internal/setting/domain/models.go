// Package domain contains the persisted key/value configuration store.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SettingType describes how a setting value is interpreted.
type SettingType string

const (
	TypeString  SettingType = "string"
	TypeNumber  SettingType = "number"
	TypeBoolean SettingType = "boolean"
	TypeJSON    SettingType = "json"
)

func (t SettingType) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeJSON:
		return true
	default:
		return false
	}
}

// Setting is a process-wide configuration value. Settings are read
// fresh on every invoice write path; there is no in-process cache,
// since billing correctness depends on the latest configured rate.
type Setting struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id,string"`
	Key       string       `gorm:"type:text;not null;uniqueIndex:ux_setting_key" json:"key"`
	Value     string       `gorm:"type:text;not null" json:"value"`
	Type      SettingType  `gorm:"type:text;not null;default:'string'" json:"type"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Setting) TableName() string { return "settings" }

// Well-known setting keys.
const (
	KeyCGSTRate            = "cgst_rate"
	KeySGSTRate            = "sgst_rate"
	KeyInvoiceNumberFormat = "invoice_number_format"
	KeyCompanyName         = "company_name"
	KeyCompanyAddress      = "company_address"
	KeyCompanyGSTIN        = "company_gstin"
)
