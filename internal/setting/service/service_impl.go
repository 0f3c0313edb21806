package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	settingdomain "github.com/wasteworks/hazbill/internal/setting/domain"
	"github.com/wasteworks/hazbill/pkg/db/option"
	"github.com/wasteworks/hazbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	settingrepo repository.Repository[settingdomain.Setting]
}

func NewService(p ServiceParam) settingdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("setting.service"),
		genID: p.GenID,

		settingrepo: repository.ProvideStore[settingdomain.Setting](p.DB),
	}
}

func (s *Service) List(ctx context.Context) ([]settingdomain.Setting, error) {
	items, err := s.settingrepo.Find(ctx, &settingdomain.Setting{},
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"key": true}, Field: "key"}))
	if err != nil {
		return nil, err
	}

	settings := make([]settingdomain.Setting, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		settings = append(settings, *item)
	}
	return settings, nil
}

// BulkUpsert validates and writes the whole batch in one transaction.
func (s *Service) BulkUpsert(ctx context.Context, inputs []settingdomain.UpsertSettingInput) ([]settingdomain.Setting, error) {
	rows := make([]settingdomain.Setting, 0, len(inputs))
	for _, input := range inputs {
		key := strings.TrimSpace(input.Key)
		if key == "" {
			return nil, settingdomain.ErrInvalidKey
		}
		settingType := input.Type
		if settingType == "" {
			settingType = settingdomain.TypeString
		}
		if !settingType.Valid() {
			return nil, settingdomain.ErrInvalidType
		}
		value := strings.TrimSpace(input.Value)
		if err := validateValue(value, settingType); err != nil {
			return nil, err
		}
		rows = append(rows, settingdomain.Setting{
			ID:    s.genID.Generate(),
			Key:   key,
			Value: value,
			Type:  settingType,
		})
	}
	if len(rows) == 0 {
		return s.List(ctx)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return nil, err
	}

	return s.List(ctx)
}

func (s *Service) String(ctx context.Context, key, def string) (string, error) {
	setting, err := s.settingrepo.FindOne(ctx, &settingdomain.Setting{Key: key})
	if err != nil {
		return def, err
	}
	if setting == nil {
		return def, nil
	}
	return setting.Value, nil
}

func (s *Service) Decimal(ctx context.Context, key string, def decimal.Decimal) (decimal.Decimal, error) {
	setting, err := s.settingrepo.FindOne(ctx, &settingdomain.Setting{Key: key})
	if err != nil {
		return def, err
	}
	if setting == nil {
		return def, nil
	}
	parsed, err := decimal.NewFromString(setting.Value)
	if err != nil {
		s.log.Warn("setting is not numeric, using default", zap.String("key", key), zap.String("value", setting.Value))
		return def, nil
	}
	return parsed, nil
}

func validateValue(value string, settingType settingdomain.SettingType) error {
	switch settingType {
	case settingdomain.TypeNumber:
		if _, err := decimal.NewFromString(value); err != nil {
			return settingdomain.ErrInvalidValue
		}
	case settingdomain.TypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return settingdomain.ErrInvalidValue
		}
	case settingdomain.TypeJSON:
		if !json.Valid([]byte(value)) {
			return settingdomain.ErrInvalidValue
		}
	}
	return nil
}
