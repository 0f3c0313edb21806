// Package seed bootstraps the configuration a fresh install needs
// before the first invoice can be issued.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	settingdomain "github.com/wasteworks/hazbill/internal/setting/domain"
	"gorm.io/gorm"
)

type defaultSetting struct {
	Key   string
	Value string
	Type  settingdomain.SettingType
}

var defaultSettings = []defaultSetting{
	{Key: settingdomain.KeyCGSTRate, Value: "9", Type: settingdomain.TypeNumber},
	{Key: settingdomain.KeySGSTRate, Value: "9", Type: settingdomain.TypeNumber},
	{Key: settingdomain.KeyInvoiceNumberFormat, Value: "INV-YYYYMM", Type: settingdomain.TypeString},
	// Seller profile printed on invoice PDFs. Seeded empty so the keys
	// show up in the settings list for operators to fill in.
	{Key: settingdomain.KeyCompanyName, Value: "", Type: settingdomain.TypeString},
	{Key: settingdomain.KeyCompanyAddress, Value: "", Type: settingdomain.TypeString},
	{Key: settingdomain.KeyCompanyGSTIN, Value: "", Type: settingdomain.TypeString},
}

// EnsureDefaultSettings inserts the tax rates and number format a new
// deployment starts with. Existing values are never overwritten, so
// reruns are safe.
func EnsureDefaultSettings(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range defaultSettings {
			var existing settingdomain.Setting
			err := tx.WithContext(ctx).
				Where("key = ?", def.Key).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			record := settingdomain.Setting{
				ID:    node.Generate(),
				Key:   def.Key,
				Value: def.Value,
				Type:  def.Type,
			}
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
