// Package domain holds the parking-session lifecycle: OPEN at the entry
// gate, CLOSED or LOST_TICKET at exit, never reopened.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

var (
	ErrSessionNotFound = errors.New("session not found or already closed")
	ErrInvalidSession  = errors.New("plate number and vehicle type are required")
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusClosed     Status = "CLOSED"
	StatusLostTicket Status = "LOST_TICKET"
)

// ParkingSession is one vehicle's stay. The snowflake ID doubles as the
// printed ticket number. Fee is nil until the terminal transition and is
// written exactly once.
type ParkingSession struct {
	ID          snowflake.ID         `json:"id" gorm:"primaryKey"`
	PlateNumber string               `json:"plate_number" gorm:"type:text;not null;index"`
	VehicleType string               `json:"vehicle_type" gorm:"type:text;not null;index"`
	MemberCode  *string              `json:"member_code,omitempty" gorm:"type:text"`
	EntryTime   time.Time            `json:"entry_time" gorm:"not null"`
	ExitTime    *time.Time           `json:"exit_time,omitempty"`
	Fee         *int64               `json:"fee,omitempty"`
	FeeSource   tariffdomain.FeeSource `json:"fee_source,omitempty" gorm:"type:text"`
	Status      Status               `json:"status" gorm:"type:text;not null;index"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func (ParkingSession) TableName() string { return "parking_sessions" }

// DuplicatePlate reports a plate holding more than one OPEN session, which
// the gate permits but operations may want to chase.
type DuplicatePlate struct {
	PlateNumber string `json:"plate_number"`
	OpenCount   int    `json:"open_count"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, s *ParkingSession) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ParkingSession, error)
	FindOpenByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ParkingSession, error)
	ListOpen(ctx context.Context, db *gorm.DB) ([]ParkingSession, error)
	ListDuplicateOpenPlates(ctx context.Context, db *gorm.DB) ([]DuplicatePlate, error)

	// Close flips an OPEN session to its terminal state. It must guard on
	// status so a raced second close affects zero rows.
	Close(ctx context.Context, db *gorm.DB, id snowflake.ID, exit time.Time, fee int64, source tariffdomain.FeeSource, status Status) (bool, error)
}

type OpenRequest struct {
	PlateNumber string  `json:"plate_number"`
	VehicleType string  `json:"vehicle_type"`
	MemberCode  *string `json:"member_code"`
}

type Service interface {
	Open(ctx context.Context, req OpenRequest) (*ParkingSession, error)
	Close(ctx context.Context, id snowflake.ID) (*ParkingSession, error)
	CloseLostTicket(ctx context.Context, id snowflake.ID) (*ParkingSession, error)
	FindOpenByTicket(ctx context.Context, id snowflake.ID) (*ParkingSession, error)
	ListOpen(ctx context.Context) ([]ParkingSession, error)
	ListDuplicateOpenPlates(ctx context.Context) ([]DuplicatePlate, error)
}

// FeePolicy lets a membership scheme waive the computed fee. The default
// implementation lives in the member package; a nil policy charges everyone.
type FeePolicy interface {
	Complimentary(ctx context.Context, memberCode string, at time.Time) bool
}
