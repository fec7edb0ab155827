package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) ListOpenSessions(c *gin.Context) {
	sessions, err := s.sessionSvc.ListOpen(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, sessions)
}

// ListDuplicatePlates surfaces plates holding more than one open session.
// The gate allows this; operations use the report to chase missed exits.
func (s *Server) ListDuplicatePlates(c *gin.Context) {
	plates, err := s.sessionSvc.ListDuplicateOpenPlates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, plates)
}
