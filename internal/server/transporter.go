package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	transporterdomain "github.com/wasteworks/hazbill/internal/transporter/domain"
)

func (s *Server) CreateTransporter(c *gin.Context) {
	var req transporterdomain.CreateTransporterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.transporterSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTransporters(c *gin.Context) {
	resp, err := s.transporterSvc.List(c.Request.Context(), transporterdomain.ListTransporterRequest{
		Code: strings.TrimSpace(c.Query("code")),
		Name: strings.TrimSpace(c.Query("name")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTransporterByID(c *gin.Context) {
	resp, err := s.transporterSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateTransporter(c *gin.Context) {
	var req transporterdomain.UpdateTransporterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.transporterSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTransporter(c *gin.Context) {
	if err := s.transporterSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isTransporterValidationError(err error) bool {
	switch err {
	case transporterdomain.ErrInvalidID,
		transporterdomain.ErrInvalidCode,
		transporterdomain.ErrInvalidName:
		return true
	default:
		return false
	}
}
