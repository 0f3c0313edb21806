package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidKey   = errors.New("invalid_setting_key")
	ErrInvalidType  = errors.New("invalid_setting_type")
	ErrInvalidValue = errors.New("invalid_setting_value")
)

type UpsertSettingInput struct {
	Key   string      `json:"key"`
	Value string      `json:"value"`
	Type  SettingType `json:"type"`
}

type Service interface {
	List(ctx context.Context) ([]Setting, error)
	BulkUpsert(ctx context.Context, inputs []UpsertSettingInput) ([]Setting, error)

	// String returns the configured value, or def when the key is absent.
	String(ctx context.Context, key, def string) (string, error)
	// Decimal returns the configured numeric value, or def when the key
	// is absent or not parseable.
	Decimal(ctx context.Context, key string, def decimal.Decimal) (decimal.Decimal, error)
}
