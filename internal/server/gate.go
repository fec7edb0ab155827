package server

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

type gateEntryRequest struct {
	PlateNumber string  `json:"plate_number"`
	VehicleType string  `json:"vehicle_type"`
	MemberCode  *string `json:"member_code"`
}

// GateEntry opens a session for a vehicle at the entry barrier and returns
// the ticket to print.
func (s *Server) GateEntry(c *gin.Context) {
	var req gateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	sess, err := s.sessionSvc.Open(c.Request.Context(), sessiondomain.OpenRequest{
		PlateNumber: req.PlateNumber,
		VehicleType: req.VehicleType,
		MemberCode:  req.MemberCode,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, sess)
}

type gateExitRequest struct {
	TicketNumber string `json:"ticket_number"`
}

// GateExit closes the session, computes the fee and returns the closed
// session. Re-submitting for an already closed ticket is rejected, never
// re-charged.
func (s *Server) GateExit(c *gin.Context) {
	id, ok := s.bindTicket(c)
	if !ok {
		return
	}

	sess, err := s.sessionSvc.Close(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, sess)
}

// GateLostTicket resolves an exit where the ticket cannot be produced; the
// configured penalty replaces the duration-based fee.
func (s *Server) GateLostTicket(c *gin.Context) {
	id, ok := s.bindTicket(c)
	if !ok {
		return
	}

	sess, err := s.sessionSvc.CloseLostTicket(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, sess)
}

// LookupTicket fetches the open session for a scanned ticket, or 404 when
// the ticket is unknown or already closed.
func (s *Server) LookupTicket(c *gin.Context) {
	id, ok := s.parseTicketParam(c)
	if !ok {
		return
	}

	sess, err := s.sessionSvc.FindOpenByTicket(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if sess == nil {
		AbortWithError(c, sessiondomain.ErrSessionNotFound)
		return
	}
	respondData(c, sess)
}

// FeeQuote previews the charge for an open ticket as of now, without
// mutating the session. The cashier screen shows this before confirming.
func (s *Server) FeeQuote(c *gin.Context) {
	id, ok := s.parseTicketParam(c)
	if !ok {
		return
	}

	sess, err := s.sessionSvc.FindOpenByTicket(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if sess == nil {
		AbortWithError(c, sessiondomain.ErrSessionNotFound)
		return
	}

	fee, err := s.tariff.ResolveFee(c.Request.Context(), tariffdomain.ResolveInput{
		VehicleType: sess.VehicleType,
		EntryTime:   sess.EntryTime,
		ExitTime:    time.Now(),
		TicketLost:  c.Query("lost") == "true",
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, fee)
}

func (s *Server) bindTicket(c *gin.Context) (snowflake.ID, bool) {
	var req gateExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return 0, false
	}
	id, err := snowflake.ParseString(req.TicketNumber)
	if err != nil {
		s.log.Debug("bad ticket number", zap.String("ticket", req.TicketNumber))
		AbortWithError(c, invalidRequestError())
		return 0, false
	}
	return id, true
}

func (s *Server) parseTicketParam(c *gin.Context) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return 0, false
	}
	return id, true
}
