package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
	"github.com/idiarso/parkingLot-sub000/internal/observability"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
)

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	sessionRepo sessiondomain.Repository
	settings    *settings.Service
	metrics     *observability.Metrics
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	SessionRepo sessiondomain.Repository
	Settings    *settings.Service
	Metrics     *observability.Metrics `optional:"true"`
}

func NewService(p ServiceParam) capacitydomain.Monitor {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("capacity.service"),
		sessionRepo: p.SessionRepo,
		settings:    p.Settings,
		metrics:     p.Metrics,
	}
}

func (s *Service) Snapshot(ctx context.Context, class capacitydomain.Class) (capacitydomain.Snapshot, error) {
	snap, err := s.settings.Load(ctx)
	if err != nil {
		return capacitydomain.Snapshot{}, err
	}
	counts, err := s.countOpen(ctx)
	if err != nil {
		return capacitydomain.Snapshot{}, err
	}
	return s.build(class, counts[class], snap), nil
}

// SnapshotAll recomputes occupancy from the open-session set on every call.
// There is deliberately no cached counter to drift.
func (s *Service) SnapshotAll(ctx context.Context) ([]capacitydomain.Snapshot, error) {
	snap, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.countOpen(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]capacitydomain.Snapshot, 0, len(capacitydomain.Classes))
	for _, class := range capacitydomain.Classes {
		out = append(out, s.build(class, counts[class], snap))
	}
	return out, nil
}

func (s *Service) countOpen(ctx context.Context) (map[capacitydomain.Class]int, error) {
	sessions, err := s.sessionRepo.ListOpen(ctx, s.db)
	if err != nil {
		return nil, err
	}

	counts := make(map[capacitydomain.Class]int, len(capacitydomain.Classes))
	for _, sess := range sessions {
		class, fellBack := capacitydomain.Classify(sess.VehicleType)
		if fellBack {
			s.log.Warn("unknown vehicle type counted as car",
				zap.String("vehicle_type", sess.VehicleType),
				zap.String("ticket", sess.ID.String()))
		}
		counts[class]++
	}
	return counts, nil
}

func (s *Service) build(class capacitydomain.Class, occupied int, snap settings.Snapshot) capacitydomain.Snapshot {
	capacity := snap.CarCapacity
	if class == capacitydomain.ClassMotor {
		capacity = snap.MotorCapacity
	}

	percent := 0
	if capacity > 0 {
		percent = occupied * 100 / capacity
	}

	out := capacitydomain.Snapshot{
		Class:       class,
		Capacity:    capacity,
		Occupied:    occupied,
		PercentFull: percent,
		Level:       capacitydomain.ClassifyLevel(percent, snap.WarningPercent, snap.CriticalPercent),
	}

	if s.metrics != nil {
		s.metrics.Occupancy.WithLabelValues(string(class)).Set(float64(occupied))
		s.metrics.CapacityPercent.WithLabelValues(string(class)).Set(float64(percent))
	}
	return out
}
