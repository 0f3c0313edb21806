package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	entrydomain "github.com/wasteworks/hazbill/internal/entry/domain"
)

type entryCreatePayload struct {
	EntryDate       string           `json:"entry_date"`
	ManifestNo      string           `json:"manifest_no"`
	CompanyID       string           `json:"company_id"`
	TransporterID   string           `json:"transporter_id"`
	WasteName       string           `json:"waste_name"`
	DestinationName string           `json:"destination_name"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Unit            string           `json:"unit"`
	Rate            *decimal.Decimal `json:"rate"`
	VehicleNo       string           `json:"vehicle_no"`
}

type entryUpdatePayload struct {
	EntryDate       *string          `json:"entry_date"`
	ManifestNo      *string          `json:"manifest_no"`
	TransporterID   *string          `json:"transporter_id"`
	WasteName       *string          `json:"waste_name"`
	DestinationName *string          `json:"destination_name"`
	Quantity        *decimal.Decimal `json:"quantity"`
	Unit            *string          `json:"unit"`
	Rate            *decimal.Decimal `json:"rate"`
	VehicleNo       *string          `json:"vehicle_no"`
}

func bindCreateEntry(c *gin.Context) (entrydomain.CreateEntryRequest, bool) {
	var payload entryCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return entrydomain.CreateEntryRequest{}, false
	}

	entryDate, err := parseRequiredTime(payload.EntryDate)
	if err != nil {
		AbortWithError(c, newValidationError("entry_date", "invalid_entry_date", "invalid entry_date"))
		return entrydomain.CreateEntryRequest{}, false
	}

	return entrydomain.CreateEntryRequest{
		EntryDate:       entryDate,
		ManifestNo:      strings.TrimSpace(payload.ManifestNo),
		CompanyID:       strings.TrimSpace(payload.CompanyID),
		TransporterID:   strings.TrimSpace(payload.TransporterID),
		WasteName:       strings.TrimSpace(payload.WasteName),
		DestinationName: strings.TrimSpace(payload.DestinationName),
		Quantity:        payload.Quantity,
		Unit:            entrydomain.Unit(strings.TrimSpace(payload.Unit)),
		Rate:            payload.Rate,
		VehicleNo:       strings.TrimSpace(payload.VehicleNo),
	}, true
}

func bindUpdateEntry(c *gin.Context) (entrydomain.UpdateEntryRequest, bool) {
	var payload entryUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return entrydomain.UpdateEntryRequest{}, false
	}

	req := entrydomain.UpdateEntryRequest{
		ManifestNo:      payload.ManifestNo,
		TransporterID:   payload.TransporterID,
		WasteName:       payload.WasteName,
		DestinationName: payload.DestinationName,
		Quantity:        payload.Quantity,
		Rate:            payload.Rate,
		VehicleNo:       payload.VehicleNo,
	}
	if payload.EntryDate != nil {
		entryDate, err := parseRequiredTime(*payload.EntryDate)
		if err != nil {
			AbortWithError(c, newValidationError("entry_date", "invalid_entry_date", "invalid entry_date"))
			return entrydomain.UpdateEntryRequest{}, false
		}
		req.EntryDate = &entryDate
	}
	if payload.Unit != nil {
		unit := entrydomain.Unit(strings.TrimSpace(*payload.Unit))
		req.Unit = &unit
	}

	return req, true
}

func bindListEntries(c *gin.Context) (entrydomain.ListEntryRequest, bool) {
	unbilled, err := parseOptionalBool(c.Query("unbilled"))
	if err != nil {
		AbortWithError(c, newValidationError("unbilled", "invalid_unbilled", "invalid unbilled"))
		return entrydomain.ListEntryRequest{}, false
	}

	dateFrom, err := parseOptionalTime(c.Query("date_from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("date_from", "invalid_date_from", "invalid date_from"))
		return entrydomain.ListEntryRequest{}, false
	}

	dateTo, err := parseOptionalTime(c.Query("date_to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("date_to", "invalid_date_to", "invalid date_to"))
		return entrydomain.ListEntryRequest{}, false
	}

	return entrydomain.ListEntryRequest{
		CompanyID:     strings.TrimSpace(c.Query("company_id")),
		TransporterID: strings.TrimSpace(c.Query("transporter_id")),
		Unbilled:      unbilled,
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	}, true
}

func (s *Server) CreateInwardEntry(c *gin.Context) {
	req, ok := bindCreateEntry(c)
	if !ok {
		return
	}

	resp, err := s.inwardSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInwardEntries(c *gin.Context) {
	req, ok := bindListEntries(c)
	if !ok {
		return
	}

	resp, err := s.inwardSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInwardEntryByID(c *gin.Context) {
	resp, err := s.inwardSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInwardEntry(c *gin.Context) {
	req, ok := bindUpdateEntry(c)
	if !ok {
		return
	}

	resp, err := s.inwardSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInwardEntry(c *gin.Context) {
	if err := s.inwardSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) CreateOutwardEntry(c *gin.Context) {
	req, ok := bindCreateEntry(c)
	if !ok {
		return
	}

	resp, err := s.outwardSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListOutwardEntries(c *gin.Context) {
	req, ok := bindListEntries(c)
	if !ok {
		return
	}

	resp, err := s.outwardSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOutwardEntryByID(c *gin.Context) {
	resp, err := s.outwardSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOutwardEntry(c *gin.Context) {
	req, ok := bindUpdateEntry(c)
	if !ok {
		return
	}

	resp, err := s.outwardSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteOutwardEntry(c *gin.Context) {
	if err := s.outwardSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isEntryValidationError(err error) bool {
	switch err {
	case entrydomain.ErrInvalidID,
		entrydomain.ErrInvalidManifest,
		entrydomain.ErrInvalidWasteName,
		entrydomain.ErrInvalidQuantity,
		entrydomain.ErrInvalidUnit,
		entrydomain.ErrInvalidRate,
		entrydomain.ErrInvalidCompany,
		entrydomain.ErrInvalidTransporter:
		return true
	default:
		return false
	}
}
