package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

var errInvalidRequest = errors.New("invalid request")

// AbortWithError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the detail stays in the log.
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, ratedomain.ErrInvalidRate),
		errors.Is(err, specialratedomain.ErrInvalidSpecialRate),
		errors.Is(err, sessiondomain.ErrInvalidSession),
		errors.Is(err, memberdomain.ErrInvalidMember),
		errors.Is(err, settings.ErrInvalidThresholds),
		errors.Is(err, tariffdomain.ErrInvalidInterval):
		status = http.StatusBadRequest
	case errors.Is(err, sessiondomain.ErrSessionNotFound),
		errors.Is(err, specialratedomain.ErrSpecialRateNotFound),
		errors.Is(err, memberdomain.ErrMemberNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ratedomain.ErrRateNotFound):
		// A missing tariff is a configuration fault, not a bad request.
		status = http.StatusUnprocessableEntity
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func invalidRequestError() error { return errInvalidRequest }
