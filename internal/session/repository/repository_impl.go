package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

type repo struct{}

func Provide() sessiondomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, s *sessiondomain.ParkingSession) error {
	return db.WithContext(ctx).Create(s).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*sessiondomain.ParkingSession, error) {
	var s sessiondomain.ParkingSession
	err := db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) FindOpenByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*sessiondomain.ParkingSession, error) {
	var s sessiondomain.ParkingSession
	err := db.WithContext(ctx).
		Where("id = ? AND status = ?", id, sessiondomain.StatusOpen).
		Take(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) ListOpen(ctx context.Context, db *gorm.DB) ([]sessiondomain.ParkingSession, error) {
	var rows []sessiondomain.ParkingSession
	err := db.WithContext(ctx).
		Where("status = ?", sessiondomain.StatusOpen).
		Order("entry_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListDuplicateOpenPlates(ctx context.Context, db *gorm.DB) ([]sessiondomain.DuplicatePlate, error) {
	var rows []sessiondomain.DuplicatePlate
	err := db.WithContext(ctx).Raw(`
		SELECT plate_number, COUNT(*) AS open_count
		FROM parking_sessions
		WHERE status = ?
		GROUP BY plate_number
		HAVING COUNT(*) > 1
	`, sessiondomain.StatusOpen).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Close(ctx context.Context, db *gorm.DB, id snowflake.ID, exit time.Time, fee int64, source tariffdomain.FeeSource, status sessiondomain.Status) (bool, error) {
	result := db.WithContext(ctx).
		Model(&sessiondomain.ParkingSession{}).
		Where("id = ? AND status = ?", id, sessiondomain.StatusOpen).
		Updates(map[string]any{
			"exit_time":  exit,
			"fee":        fee,
			"fee_source": source,
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
