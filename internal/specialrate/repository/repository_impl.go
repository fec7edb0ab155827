package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
)

type repo struct{}

func Provide() specialratedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *specialratedomain.SpecialRateRule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *specialratedomain.SpecialRateRule) error {
	return db.WithContext(ctx).Save(rule).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*specialratedomain.SpecialRateRule, error) {
	var rule specialratedomain.SpecialRateRule
	err := db.WithContext(ctx).Where("id = ?", id).Take(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]specialratedomain.SpecialRateRule, error) {
	var rules []specialratedomain.SpecialRateRule
	err := db.WithContext(ctx).Order("vehicle_type ASC, start_time ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) ListActiveByVehicleType(ctx context.Context, db *gorm.DB, vehicleType string) ([]specialratedomain.SpecialRateRule, error) {
	var rules []specialratedomain.SpecialRateRule
	err := db.WithContext(ctx).
		Where("LOWER(vehicle_type) = LOWER(?) AND active = ?", vehicleType, true).
		Order("id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}
