// Package domain holds deduplicated alert records: at most one row exists
// per condition key at any time.
package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
)

type Type string

const (
	TypeLongParking      Type = "LONG_PARKING"
	TypeCapacityWarning  Type = "CAPACITY_WARNING"
	TypeCapacityCritical Type = "CAPACITY_CRITICAL"
)

// Record is one active alert. ConditionKey carries the dedup invariant via
// its unique index; while the condition persists the row is refreshed in
// place, and when the condition is confirmed clear the row is removed.
type Record struct {
	ID            snowflake.ID   `json:"id" gorm:"primaryKey"`
	ConditionKey  string         `json:"condition_key" gorm:"type:text;not null;uniqueIndex"`
	Type          Type           `json:"type" gorm:"type:text;not null;index"`
	Message       string         `json:"message" gorm:"type:text;not null"`
	Payload       datatypes.JSON `json:"payload,omitempty" gorm:"type:jsonb"`
	FirstRaisedAt time.Time      `json:"first_raised_at" gorm:"not null"`
	LastUpdatedAt time.Time      `json:"last_updated_at" gorm:"not null"`
}

func (Record) TableName() string { return "notifications" }

// LongParkingKey keys the alert by session, not plate: a session is exactly
// one parking episode, so a later stay by the same plate gets a fresh key.
func LongParkingKey(sessionID snowflake.ID) string {
	return fmt.Sprintf("long_parking:%s", sessionID)
}

func CapacityKey(t Type, class capacitydomain.Class) string {
	switch t {
	case TypeCapacityCritical:
		return fmt.Sprintf("capacity_critical:%s", class)
	default:
		return fmt.Sprintf("capacity_warning:%s", class)
	}
}

// CapacityType maps an occupancy level to its alert type. Only WARNING and
// CRITICAL levels have one.
func CapacityType(level capacitydomain.Level) (Type, bool) {
	switch level {
	case capacitydomain.LevelWarning:
		return TypeCapacityWarning, true
	case capacitydomain.LevelCritical:
		return TypeCapacityCritical, true
	default:
		return "", false
	}
}

type Repository interface {
	FindByKey(ctx context.Context, db *gorm.DB, key string) (*Record, error)
	Create(ctx context.Context, db *gorm.DB, r *Record) error
	Refresh(ctx context.Context, db *gorm.DB, key, message string, at time.Time) error
	DeleteByKey(ctx context.Context, db *gorm.DB, key string) error
	List(ctx context.Context, db *gorm.DB) ([]Record, error)
	ListByType(ctx context.Context, db *gorm.DB, t Type) ([]Record, error)
}

// Evaluator runs one notification cycle.
type Evaluator interface {
	Evaluate(ctx context.Context) error
}

// Beeper sounds the audible alert for severities that warrant one. The
// default implementation just logs; the operator console wires a real one.
type Beeper interface {
	Beep(ctx context.Context, t Type)
}
