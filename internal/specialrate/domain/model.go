// Package domain holds time/day-windowed flat-rate overrides, e.g. a rush
// hour ("Jam Sibuk") price that replaces the hourly tariff.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrInvalidSpecialRate = errors.New("special rate window, days or amount invalid")

// SpecialRateRule charges a flat amount when entry falls inside the rule's
// day-of-week set and time-of-day window. StartTime/EndTime are "HH:MM"
// wall-clock strings; EndTime at or before StartTime means the window wraps
// across midnight. Days is a comma-separated list of weekday numbers with
// Sunday = 0.
type SpecialRateRule struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	VehicleType string       `json:"vehicle_type" gorm:"type:text;not null;index"`
	Category    string       `json:"category" gorm:"type:text;not null"`
	Description string       `json:"description" gorm:"type:text"`
	StartTime   string       `json:"start_time" gorm:"type:text;not null"`
	EndTime     string       `json:"end_time" gorm:"type:text;not null"`
	Days        string       `json:"days" gorm:"type:text;not null"`
	FlatRate    int64        `json:"flat_rate" gorm:"not null"`
	Active      bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (SpecialRateRule) TableName() string { return "special_rates" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, r *SpecialRateRule) error
	Update(ctx context.Context, db *gorm.DB, r *SpecialRateRule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SpecialRateRule, error)
	List(ctx context.Context, db *gorm.DB) ([]SpecialRateRule, error)
	ListActiveByVehicleType(ctx context.Context, db *gorm.DB, vehicleType string) ([]SpecialRateRule, error)
}

type CreateRequest struct {
	VehicleType string `json:"vehicle_type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Days        []int  `json:"days"`
	FlatRate    int64  `json:"flat_rate"`
	Active      *bool  `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*SpecialRateRule, error)
	Update(ctx context.Context, id snowflake.ID, req CreateRequest) (*SpecialRateRule, error)
	List(ctx context.Context) ([]SpecialRateRule, error)
}

var ErrSpecialRateNotFound = errors.New("special rate not found")
