package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingdomain "github.com/wasteworks/hazbill/internal/setting/domain"
)

func (s *Server) ListSettings(c *gin.Context) {
	resp, err := s.settingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReplaceSettings(c *gin.Context) {
	var req struct {
		Settings []settingdomain.UpsertSettingInput `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingSvc.BulkUpsert(c.Request.Context(), req.Settings)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isSettingValidationError(err error) bool {
	switch err {
	case settingdomain.ErrInvalidKey,
		settingdomain.ErrInvalidType,
		settingdomain.ErrInvalidValue:
		return true
	default:
		return false
	}
}
