package domain

import "errors"

var (
	ErrNotFound            = errors.New("invoice_not_found")
	ErrInvalidID           = errors.New("invalid_invoice_id")
	ErrInvalidType         = errors.New("invalid_invoice_type")
	ErrInvalidParty        = errors.New("invalid_invoice_party")
	ErrInvalidMaterial     = errors.New("invalid_invoice_material")
	ErrInvalidAmount       = errors.New("invalid_invoice_amount")
	ErrInvalidPayment      = errors.New("invalid_invoice_payment")
	ErrMissingRate         = errors.New("missing_material_rate")
	ErrEntryAlreadyBilled  = errors.New("entry_already_billed")
	ErrEntryImportType     = errors.New("entry_import_not_allowed_for_type")
	ErrHasLinkedEntries    = errors.New("invoice_has_linked_entries")
	ErrNumberConflict      = errors.New("invoice_number_conflict")
	ErrImmutableField      = errors.New("invoice_field_immutable")
)
