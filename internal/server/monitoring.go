package server

import (
	"github.com/gin-gonic/gin"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
)

// CapacitySnapshots reports current occupancy per class, or a single class
// when ?class= is given.
func (s *Server) CapacitySnapshots(c *gin.Context) {
	if class := c.Query("class"); class != "" {
		snap, err := s.capacity.Snapshot(c.Request.Context(), capacitydomain.Class(class))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondData(c, snap)
		return
	}

	snaps, err := s.capacity.SnapshotAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, snaps)
}

func (s *Server) ListNotifications(c *gin.Context) {
	records, err := s.notifySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, records)
}
