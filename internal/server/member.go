package server

import (
	"github.com/gin-gonic/gin"

	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
)

func (s *Server) ListMembers(c *gin.Context) {
	members, err := s.memberSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, members)
}

func (s *Server) CreateMember(c *gin.Context) {
	var req memberdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	m, err := s.memberSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, m)
}
