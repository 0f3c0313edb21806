package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
	"github.com/wasteworks/hazbill/pkg/db"
	"github.com/wasteworks/hazbill/pkg/db/option"
	"github.com/wasteworks/hazbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

// deps holds the stores shared by both direction services.
type deps struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	companyrepo     repository.Repository[companydomain.Company]
	transporterrepo repository.Repository[transporterdomain.Transporter]
}

func newDeps(p ServiceParam, name string) deps {
	return deps{
		db:    p.DB,
		log:   p.Log.Named(name),
		genID: p.GenID,

		companyrepo:     repository.ProvideStore[companydomain.Company](p.DB),
		transporterrepo: repository.ProvideStore[transporterdomain.Transporter](p.DB),
	}
}

// validated carries the resolved references of a create request.
type validated struct {
	companyID       snowflake.ID
	transporterID   *snowflake.ID
	transporterName string
	manifestNo      string
	wasteName       string
}

func (d deps) validateCreate(ctx context.Context, req entrydomain.CreateEntryRequest) (validated, error) {
	var out validated

	out.manifestNo = strings.TrimSpace(req.ManifestNo)
	if out.manifestNo == "" {
		return out, entrydomain.ErrInvalidManifest
	}
	out.wasteName = strings.TrimSpace(req.WasteName)
	if out.wasteName == "" {
		return out, entrydomain.ErrInvalidWasteName
	}
	if !req.Quantity.IsPositive() {
		return out, entrydomain.ErrInvalidQuantity
	}
	if !req.Unit.Valid() {
		return out, entrydomain.ErrInvalidUnit
	}
	if req.Rate != nil && req.Rate.IsNegative() {
		return out, entrydomain.ErrInvalidRate
	}

	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return out, entrydomain.ErrInvalidCompany
	}
	company, err := d.companyrepo.FindOne(ctx, &companydomain.Company{ID: companyID})
	if err != nil {
		return out, err
	}
	if company == nil {
		return out, companydomain.ErrNotFound
	}
	out.companyID = company.ID

	if trimmed := strings.TrimSpace(req.TransporterID); trimmed != "" {
		transporterID, err := snowflake.ParseString(trimmed)
		if err != nil || transporterID == 0 {
			return out, entrydomain.ErrInvalidTransporter
		}
		transporter, err := d.transporterrepo.FindOne(ctx, &transporterdomain.Transporter{ID: transporterID})
		if err != nil {
			return out, err
		}
		if transporter == nil {
			return out, transporterdomain.ErrNotFound
		}
		out.transporterID = &transporter.ID
		out.transporterName = transporter.Name
	}

	return out, nil
}

// resolveTransporter resolves an updated transporter reference and its display name.
func (d deps) resolveTransporter(ctx context.Context, raw string) (*snowflake.ID, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, "", nil
	}
	transporterID, err := snowflake.ParseString(trimmed)
	if err != nil || transporterID == 0 {
		return nil, "", entrydomain.ErrInvalidTransporter
	}
	transporter, err := d.transporterrepo.FindOne(ctx, &transporterdomain.Transporter{ID: transporterID})
	if err != nil {
		return nil, "", err
	}
	if transporter == nil {
		return nil, "", transporterdomain.ErrNotFound
	}
	return &transporter.ID, transporter.Name, nil
}

func listOptions(req entrydomain.ListEntryRequest) []option.QueryOption {
	options := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Allow: map[string]bool{"entry_date": true, "created_at": true}, Field: "entry_date", Desc: true}),
	}
	if req.Unbilled {
		options = append(options, option.WithNull("invoice_id", true))
	}
	if req.DateFrom != nil {
		options = append(options, option.ApplyOperator(option.Condition{Field: "entry_date", Operator: option.GTE, Value: *req.DateFrom}))
	}
	if req.DateTo != nil {
		options = append(options, option.ApplyOperator(option.Condition{Field: "entry_date", Operator: option.LTE, Value: *req.DateTo}))
	}
	return options
}

func parseEntryID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return 0, entrydomain.ErrInvalidID
	}
	return parsed, nil
}

func entryDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func mapCreateErr(err error) error {
	if db.IsDuplicateKeyErr(err) {
		return entrydomain.ErrDuplicateManifest
	}
	return err
}
