package domain

import "errors"

var (
	ErrNotFound      = errors.New("company_not_found")
	ErrInvalidID     = errors.New("invalid_company_id")
	ErrInvalidCode   = errors.New("invalid_company_code")
	ErrInvalidName   = errors.New("invalid_company_name")
	ErrInvalidRate   = errors.New("invalid_material_rate")
	ErrDuplicateCode = errors.New("duplicate_company_code")
)
