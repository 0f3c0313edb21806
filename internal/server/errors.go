package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	companydomain "github.com/wasteworks/hazbill/internal/company/domain"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRenderFailed   = errors.New("render_failed")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		message := validationErrorMessage(code)
		if detail := err.Error(); detail != code {
			message = detail
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: message,
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRenderFailed):
		return http.StatusBadGateway, errorPayload{
			Type:    "render_failed",
			Message: "document rendering failed",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isCompanyValidationError(err),
		isTransporterValidationError(err),
		isEntryValidationError(err),
		isSettingValidationError(err),
		isInvoiceValidationError(err):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, companydomain.ErrDuplicateCode),
		errors.Is(err, transporterdomain.ErrDuplicateCode),
		errors.Is(err, entrydomain.ErrDuplicateManifest),
		errors.Is(err, entrydomain.ErrEntryBilled),
		errors.Is(err, invoicedomain.ErrEntryAlreadyBilled),
		errors.Is(err, invoicedomain.ErrNumberConflict),
		errors.Is(err, invoicedomain.ErrHasLinkedEntries):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, companydomain.ErrDuplicateCode):
		return companydomain.ErrDuplicateCode.Error()
	case errors.Is(err, transporterdomain.ErrDuplicateCode):
		return transporterdomain.ErrDuplicateCode.Error()
	case errors.Is(err, entrydomain.ErrDuplicateManifest):
		return entrydomain.ErrDuplicateManifest.Error()
	case errors.Is(err, entrydomain.ErrEntryBilled):
		return entrydomain.ErrEntryBilled.Error()
	case errors.Is(err, invoicedomain.ErrEntryAlreadyBilled):
		return err.Error()
	case errors.Is(err, invoicedomain.ErrNumberConflict):
		return invoicedomain.ErrNumberConflict.Error()
	case errors.Is(err, invoicedomain.ErrHasLinkedEntries):
		return invoicedomain.ErrHasLinkedEntries.Error()
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, transporterdomain.ErrNotFound),
		errors.Is(err, entrydomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// validationErrorCode reduces a validation error to its sentinel's
// bare name. Services wrap sentinels with detail (material names,
// manifests); that detail belongs in the message, not the code.
func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	root := err
	for {
		unwrapped := errors.Unwrap(root)
		if unwrapped == nil {
			break
		}
		root = unwrapped
	}
	return root.Error()
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "invalid_request" {
		return "request"
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
