// Package domain holds the standard tariff catalog: one hourly rate per
// vehicle type plus the fixed lost-ticket penalty.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrRateNotFound = errors.New("no active rate for vehicle type")

// RateRule prices a vehicle type by the hour. All amounts are in the
// smallest currency unit (rupiah). NextHourRate nil means the first-hour
// rate repeats; FlatRate non-zero overrides the hourly formula entirely.
type RateRule struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey"`
	VehicleType       string       `json:"vehicle_type" gorm:"type:text;not null;index"`
	HourlyRate        int64        `json:"hourly_rate" gorm:"not null"`
	NextHourRate      *int64       `json:"next_hour_rate,omitempty"`
	FlatRate          int64        `json:"flat_rate" gorm:"not null;default:0"`
	LostTicketPenalty int64        `json:"lost_ticket_penalty" gorm:"not null"`
	Active            bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (RateRule) TableName() string { return "parking_rates" }

// PerExtraHour resolves the optional next-hour rate.
func (r RateRule) PerExtraHour() int64 {
	if r.NextHourRate != nil {
		return *r.NextHourRate
	}
	return r.HourlyRate
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, r *RateRule) error
	Update(ctx context.Context, db *gorm.DB, r *RateRule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RateRule, error)
	List(ctx context.Context, db *gorm.DB) ([]RateRule, error)

	// FindActiveByVehicleType matches case-insensitively. When duplicate
	// active rules exist the most recently created one wins.
	FindActiveByVehicleType(ctx context.Context, db *gorm.DB, vehicleType string) (*RateRule, error)
}

type CreateRequest struct {
	VehicleType       string `json:"vehicle_type"`
	HourlyRate        int64  `json:"hourly_rate"`
	NextHourRate      *int64 `json:"next_hour_rate"`
	FlatRate          int64  `json:"flat_rate"`
	LostTicketPenalty int64  `json:"lost_ticket_penalty"`
	Active            *bool  `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RateRule, error)
	Update(ctx context.Context, id snowflake.ID, req CreateRequest) (*RateRule, error)
	List(ctx context.Context) ([]RateRule, error)
}

var ErrInvalidRate = errors.New("rate amounts must be non-negative and vehicle type set")
