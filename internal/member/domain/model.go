package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidMember  = errors.New("member code and name are required")
)

// Member is a season-pass holder. An active membership waives the parking
// fee until ActiveUntil passes.
type Member struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Code        string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	PlateNumber string       `json:"plate_number" gorm:"type:text"`
	VehicleType string       `json:"vehicle_type" gorm:"type:text"`
	Phone       string       `json:"phone" gorm:"type:text"`
	Active      bool         `json:"active" gorm:"not null;default:true"`
	ActiveUntil time.Time    `json:"active_until" gorm:"not null"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Member) TableName() string { return "members" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, m *Member) error
	Update(ctx context.Context, db *gorm.DB, m *Member) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Member, error)
	List(ctx context.Context, db *gorm.DB) ([]Member, error)
}

type CreateRequest struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	PlateNumber string    `json:"plate_number"`
	VehicleType string    `json:"vehicle_type"`
	Phone       string    `json:"phone"`
	ActiveUntil time.Time `json:"active_until"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	FindByCode(ctx context.Context, code string) (*Member, error)
}
