// Package seed bootstraps a fresh installation with a usable tariff
// catalog and the default operational settings.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
)

// EnsureDefaults seeds the standard motor/mobil rates, the rush-hour
// special rate and the settings keys the engine reads. Existing rows are
// left untouched, so the seeder is safe to run on every startup.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRates(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureSpecialRates(ctx, tx, node); err != nil {
			return err
		}
		return ensureSettings(ctx, tx)
	})
}

func ensureRates(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&ratedomain.RateRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	motorNext := int64(2000)
	mobilNext := int64(3000)
	now := time.Now().UTC()
	rates := []ratedomain.RateRule{
		{
			ID:                node.Generate(),
			VehicleType:       "motor",
			HourlyRate:        3000,
			NextHourRate:      &motorNext,
			LostTicketPenalty: 25000,
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                node.Generate(),
			VehicleType:       "mobil",
			HourlyRate:        5000,
			NextHourRate:      &mobilNext,
			LostTicketPenalty: 50000,
			Active:            true,
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
	return tx.WithContext(ctx).Create(&rates).Error
}

func ensureSpecialRates(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&specialratedomain.SpecialRateRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	rule := specialratedomain.SpecialRateRule{
		ID:          node.Generate(),
		VehicleType: "motor",
		Category:    "Jam Sibuk",
		Description: "Rush hour flat rate, weekdays",
		StartTime:   "17:00",
		EndTime:     "19:00",
		Days:        "1,2,3,4,5",
		FlatRate:    5000,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return tx.WithContext(ctx).Create(&rule).Error
}

func ensureSettings(ctx context.Context, tx *gorm.DB) error {
	defaults := map[string]string{
		settings.KeyLongParkingThreshold: "120",
		settings.KeyWarningCapacity:      "75",
		settings.KeyCriticalCapacity:     "90",
		settings.KeyMotorCapacity:        "100",
		settings.KeyCarCapacity:          "50",
		settings.KeyEmailEnabled:         "false",
		settings.KeySMSEnabled:           "false",
	}

	now := time.Now().UTC()
	rows := make([]settings.Setting, 0, len(defaults))
	for key, value := range defaults {
		rows = append(rows, settings.Setting{Key: key, Value: value, UpdatedAt: now})
	}
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
