package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) ListSettings(c *gin.Context) {
	rows, err := s.settingsSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rows)
}

type putSettingRequest struct {
	Value string `json:"value"`
}

// PutSetting upserts one operational key. Threshold writes that would leave
// warning >= critical are rejected and the stored value stays untouched.
func (s *Server) PutSetting(c *gin.Context) {
	var req putSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	key := c.Param("key")
	if err := s.settingsSvc.Set(c.Request.Context(), key, req.Value); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"key": key, "value": req.Value})
}
