package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
)

type repo struct{}

func Provide() ratedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *ratedomain.RateRule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *ratedomain.RateRule) error {
	return db.WithContext(ctx).Save(rule).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ratedomain.RateRule, error) {
	var rule ratedomain.RateRule
	err := db.WithContext(ctx).Where("id = ?", id).Take(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]ratedomain.RateRule, error) {
	var rules []ratedomain.RateRule
	err := db.WithContext(ctx).Order("vehicle_type ASC, created_at ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) FindActiveByVehicleType(ctx context.Context, db *gorm.DB, vehicleType string) (*ratedomain.RateRule, error) {
	var rule ratedomain.RateRule
	err := db.WithContext(ctx).
		Where("LOWER(vehicle_type) = LOWER(?) AND active = ?", vehicleType, true).
		Order("created_at DESC, id DESC").
		Limit(1).
		Take(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}
