package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
)

func (s *Server) ListSpecialRates(c *gin.Context) {
	rules, err := s.specialSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rules)
}

func (s *Server) CreateSpecialRate(c *gin.Context) {
	var req specialratedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rule, err := s.specialSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, rule)
}

func (s *Server) UpdateSpecialRate(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req specialratedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rule, err := s.specialSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, rule)
}
