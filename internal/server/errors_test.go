package server

import (
	"fmt"
	"net/http"
	"testing"

	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
)

func TestMapErrorWrappedValidationSentinel(t *testing.T) {
	err := fmt.Errorf("%w: %s", invoicedomain.ErrMissingRate, "Unpriced Waste")

	status, payload := mapError(err)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if len(payload.Errors) != 1 {
		t.Fatalf("expected one validation error, got %d", len(payload.Errors))
	}
	if payload.Errors[0].Code != invoicedomain.ErrMissingRate.Error() {
		t.Fatalf("expected bare sentinel code, got %q", payload.Errors[0].Code)
	}
	if payload.Errors[0].Message != err.Error() {
		t.Fatalf("expected detail in message, got %q", payload.Errors[0].Message)
	}
}

func TestMapErrorBareValidationSentinel(t *testing.T) {
	status, payload := mapError(companydomain.ErrInvalidCode)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if payload.Errors[0].Code != "invalid_company_code" {
		t.Fatalf("expected invalid_company_code, got %q", payload.Errors[0].Code)
	}
	if payload.Errors[0].Field != "company_code" {
		t.Fatalf("expected field company_code, got %q", payload.Errors[0].Field)
	}
	if payload.Errors[0].Message != "invalid value" {
		t.Fatalf("expected generic message for a bare sentinel, got %q", payload.Errors[0].Message)
	}
}

func TestMapErrorWrappedConflictKeepsManifest(t *testing.T) {
	err := fmt.Errorf("%w: manifest MAN-007", invoicedomain.ErrEntryAlreadyBilled)

	status, payload := mapError(err)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if payload.Message != err.Error() {
		t.Fatalf("expected manifest in conflict message, got %q", payload.Message)
	}
}
