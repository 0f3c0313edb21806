package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/wasteworks/hazbill/internal/invoice/domain"
	"go.uber.org/zap"
)

type invoiceCreatePayload struct {
	Type          string `json:"type"`
	InvoiceDate   string `json:"invoice_date"`
	CompanyID     string `json:"company_id"`
	TransporterID string `json:"transporter_id"`
	CustomerName  string `json:"customer_name"`

	Materials []invoicedomain.MaterialInput `json:"materials"`
	EntryIDs  []string                      `json:"entry_ids"`

	Subtotal    *decimal.Decimal                `json:"subtotal"`
	CGSTRate    *decimal.Decimal                `json:"cgst_rate"`
	SGSTRate    *decimal.Decimal                `json:"sgst_rate"`
	OtherCharge *invoicedomain.OtherChargeInput `json:"other_charge"`

	PaymentReceived *decimal.Decimal `json:"payment_received"`
	PaymentDate     *string          `json:"payment_date"`

	Metadata map[string]any `json:"metadata"`
}

type invoiceUpdatePayload struct {
	InvoiceDate  *string `json:"invoice_date"`
	CustomerName *string `json:"customer_name"`

	Materials *[]invoicedomain.MaterialInput `json:"materials"`

	Subtotal         *decimal.Decimal                `json:"subtotal"`
	CGSTRate         *decimal.Decimal                `json:"cgst_rate"`
	SGSTRate         *decimal.Decimal                `json:"sgst_rate"`
	OtherCharge      *invoicedomain.OtherChargeInput `json:"other_charge"`
	ClearOtherCharge bool                            `json:"clear_other_charge"`

	PaymentReceived *decimal.Decimal `json:"payment_received"`
	PaymentDate     *string          `json:"payment_date"`
	ClearPayment    bool             `json:"clear_payment"`

	Metadata map[string]any `json:"metadata"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var payload invoiceCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoiceDate, err := parseRequiredTime(payload.InvoiceDate)
	if err != nil {
		AbortWithError(c, newValidationError("invoice_date", "invalid_invoice_date", "invalid invoice_date"))
		return
	}

	var paymentDate *time.Time
	if payload.PaymentDate != nil {
		paymentDate, err = parseOptionalTime(*payload.PaymentDate, false)
		if err != nil {
			AbortWithError(c, newValidationError("payment_date", "invalid_payment_date", "invalid payment_date"))
			return
		}
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		Type:            invoicedomain.InvoiceType(strings.TrimSpace(payload.Type)),
		InvoiceDate:     invoiceDate,
		CompanyID:       strings.TrimSpace(payload.CompanyID),
		TransporterID:   strings.TrimSpace(payload.TransporterID),
		CustomerName:    strings.TrimSpace(payload.CustomerName),
		Materials:       payload.Materials,
		EntryIDs:        payload.EntryIDs,
		Subtotal:        payload.Subtotal,
		CGSTRate:        payload.CGSTRate,
		SGSTRate:        payload.SGSTRate,
		OtherCharge:     payload.OtherCharge,
		PaymentReceived: payload.PaymentReceived,
		PaymentDate:     paymentDate,
		Metadata:        payload.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	dateFrom, err := parseOptionalTime(c.Query("date_from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("date_from", "invalid_date_from", "invalid date_from"))
		return
	}

	dateTo, err := parseOptionalTime(c.Query("date_to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("date_to", "invalid_date_to", "invalid date_to"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Type:          strings.TrimSpace(c.Query("type")),
		Status:        strings.TrimSpace(c.Query("status")),
		CompanyID:     strings.TrimSpace(c.Query("company_id")),
		TransporterID: strings.TrimSpace(c.Query("transporter_id")),
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var payload invoiceUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := invoicedomain.UpdateInvoiceRequest{
		CustomerName:     payload.CustomerName,
		Materials:        payload.Materials,
		Subtotal:         payload.Subtotal,
		CGSTRate:         payload.CGSTRate,
		SGSTRate:         payload.SGSTRate,
		OtherCharge:      payload.OtherCharge,
		ClearOtherCharge: payload.ClearOtherCharge,
		PaymentReceived:  payload.PaymentReceived,
		ClearPayment:     payload.ClearPayment,
		Metadata:         payload.Metadata,
	}
	if payload.InvoiceDate != nil {
		invoiceDate, err := parseRequiredTime(*payload.InvoiceDate)
		if err != nil {
			AbortWithError(c, newValidationError("invoice_date", "invalid_invoice_date", "invalid invoice_date"))
			return
		}
		req.InvoiceDate = &invoiceDate
	}
	if payload.PaymentDate != nil {
		paymentDate, err := parseOptionalTime(*payload.PaymentDate, false)
		if err != nil {
			AbortWithError(c, newValidationError("payment_date", "invalid_payment_date", "invalid payment_date"))
			return
		}
		req.PaymentDate = paymentDate
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	snapshot, err := s.invoiceSvc.Snapshot(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdfProvider.RenderInvoice(c.Request.Context(), snapshot)
	if err != nil {
		zap.L().Warn("invoice pdf render failed",
			zap.String("invoice_no", snapshot.Invoice.InvoiceNo),
			zap.Error(err),
		)
		AbortWithError(c, ErrRenderFailed)
		return
	}

	doc, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, ErrRenderFailed)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", snapshot.Invoice.InvoiceNo+".pdf"))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func isInvoiceValidationError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidType),
		errors.Is(err, invoicedomain.ErrInvalidParty),
		errors.Is(err, invoicedomain.ErrInvalidMaterial),
		errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, invoicedomain.ErrInvalidPayment),
		errors.Is(err, invoicedomain.ErrMissingRate),
		errors.Is(err, invoicedomain.ErrEntryImportType),
		errors.Is(err, invoicedomain.ErrImmutableField):
		return true
	default:
		return false
	}
}
