package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	notificationdomain "github.com/idiarso/parkingLot-sub000/internal/notification/domain"
)

type repo struct{}

func Provide() notificationdomain.Repository {
	return &repo{}
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, key string) (*notificationdomain.Record, error) {
	var rec notificationdomain.Record
	err := db.WithContext(ctx).Where("condition_key = ?", key).Take(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, rec *notificationdomain.Record) error {
	return db.WithContext(ctx).Create(rec).Error
}

func (r *repo) Refresh(ctx context.Context, db *gorm.DB, key, message string, at time.Time) error {
	return db.WithContext(ctx).
		Model(&notificationdomain.Record{}).
		Where("condition_key = ?", key).
		Updates(map[string]any{
			"message":         message,
			"last_updated_at": at,
		}).Error
}

func (r *repo) DeleteByKey(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).
		Where("condition_key = ?", key).
		Delete(&notificationdomain.Record{}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]notificationdomain.Record, error) {
	var rows []notificationdomain.Record
	err := db.WithContext(ctx).Order("first_raised_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListByType(ctx context.Context, db *gorm.DB, t notificationdomain.Type) ([]notificationdomain.Record, error) {
	var rows []notificationdomain.Record
	err := db.WithContext(ctx).
		Where("type = ?", t).
		Order("first_raised_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
