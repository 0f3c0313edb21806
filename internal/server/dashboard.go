package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetDashboardRevenue(c *gin.Context) {
	year, err := parseOptionalInt(c.Query("year"), time.Now().UTC().Year())
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	resp, err := s.dashboardSvc.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDashboardPayments(c *gin.Context) {
	now := time.Now().UTC()

	year, err := parseOptionalInt(c.Query("year"), now.Year())
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	month, err := parseOptionalInt(c.Query("month"), int(now.Month()))
	if err != nil || month < 1 || month > 12 {
		AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
		return
	}

	resp, err := s.dashboardSvc.PaymentSummary(c.Request.Context(), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDashboardWasteFlow(c *gin.Context) {
	year, err := parseOptionalInt(c.Query("year"), time.Now().UTC().Year())
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	resp, err := s.dashboardSvc.WasteFlow(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
