package settings

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("settings.service"),
	}
}

func (s *Service) Get(ctx context.Context, key string) (string, error) {
	var row Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

func (s *Service) List(ctx context.Context) ([]Setting, error) {
	var rows []Setting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Set upserts a single key. Threshold keys are validated against their
// counterpart before anything is written, so a rejected update leaves the
// prior configuration intact.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.validate(ctx, key, value); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Setting{Key: key, Value: value, UpdatedAt: time.Now()}).Error
}

func (s *Service) validate(ctx context.Context, key, value string) error {
	switch key {
	case KeyWarningCapacity:
		warning, err := strconv.Atoi(value)
		if err != nil || warning < 0 {
			return ErrInvalidThresholds
		}
		critical, err := s.intOr(ctx, KeyCriticalCapacity, DefaultCriticalPercent)
		if err != nil {
			return err
		}
		if warning >= critical {
			return ErrInvalidThresholds
		}
	case KeyCriticalCapacity:
		critical, err := strconv.Atoi(value)
		if err != nil || critical < 0 {
			return ErrInvalidThresholds
		}
		warning, err := s.intOr(ctx, KeyWarningCapacity, DefaultWarningPercent)
		if err != nil {
			return err
		}
		if warning >= critical {
			return ErrInvalidThresholds
		}
	}
	return nil
}

func (s *Service) intOr(ctx context.Context, key string, fallback int) (int, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

// Load reads the full snapshot used by one evaluation cycle. A stored
// threshold pair that no longer satisfies warning < critical falls back to
// the defaults rather than poisoning classification.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		LongParkingThreshold: DefaultLongParkingMinutes * time.Minute,
		WarningPercent:       DefaultWarningPercent,
		CriticalPercent:      DefaultCriticalPercent,
		MotorCapacity:        DefaultMotorCapacity,
		CarCapacity:          DefaultCarCapacity,
	}

	rows, err := s.List(ctx)
	if err != nil {
		return snap, err
	}

	for _, row := range rows {
		switch row.Key {
		case KeyLongParkingThreshold:
			if n, err := strconv.Atoi(row.Value); err == nil && n > 0 {
				snap.LongParkingThreshold = time.Duration(n) * time.Minute
			}
		case KeyWarningCapacity:
			if n, err := strconv.Atoi(row.Value); err == nil && n >= 0 {
				snap.WarningPercent = n
			}
		case KeyCriticalCapacity:
			if n, err := strconv.Atoi(row.Value); err == nil && n >= 0 {
				snap.CriticalPercent = n
			}
		case KeyMotorCapacity:
			if n, err := strconv.Atoi(row.Value); err == nil && n >= 0 {
				snap.MotorCapacity = n
			}
		case KeyCarCapacity:
			if n, err := strconv.Atoi(row.Value); err == nil && n >= 0 {
				snap.CarCapacity = n
			}
		case KeyEmailEnabled:
			snap.EmailEnabled = row.Value == "true" || row.Value == "1"
		case KeyAdminEmail:
			snap.AdminEmail = row.Value
		case KeySMSEnabled:
			snap.SMSEnabled = row.Value == "true" || row.Value == "1"
		case KeyAdminPhone:
			snap.AdminPhone = row.Value
		}
	}

	if snap.WarningPercent >= snap.CriticalPercent {
		s.log.Warn("stored thresholds invalid, using defaults",
			zap.Int("warning", snap.WarningPercent),
			zap.Int("critical", snap.CriticalPercent))
		snap.WarningPercent = DefaultWarningPercent
		snap.CriticalPercent = DefaultCriticalPercent
	}

	return snap, nil
}
