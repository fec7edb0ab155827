// Package scheduler drives the periodic evaluation work: notification
// cycles and capacity refreshes. Exactly one run of each job is in flight
// at a time; a tick that lands while the previous run is still going is
// skipped rather than queued.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
	"github.com/idiarso/parkingLot-sub000/internal/config"
	notificationservice "github.com/idiarso/parkingLot-sub000/internal/notification/service"
)

type Scheduler struct {
	log      *zap.Logger
	cfg      *config.Config
	notify   *notificationservice.Service
	capacity capacitydomain.Monitor

	notifyRunning  atomic.Bool
	refreshRunning atomic.Bool
}

type SchedulerParam struct {
	fx.In

	Log      *zap.Logger
	Cfg      *config.Config
	Notify   *notificationservice.Service
	Capacity capacitydomain.Monitor
}

func NewScheduler(p SchedulerParam) *Scheduler {
	return &Scheduler{
		log:      p.Log.Named("scheduler"),
		cfg:      p.Cfg,
		notify:   p.Notify,
		capacity: p.Capacity,
	}
}

// RunForever ticks both jobs until ctx is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	s.log.Info("scheduler started",
		zap.Duration("notify_interval", s.cfg.NotifyInterval),
		zap.Duration("capacity_refresh_interval", s.cfg.CapacityRefreshInterval))

	notifyTicker := time.NewTicker(s.cfg.NotifyInterval)
	refreshTicker := time.NewTicker(s.cfg.CapacityRefreshInterval)
	defer notifyTicker.Stop()
	defer refreshTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-notifyTicker.C:
			s.runNotify(ctx)
		case <-refreshTicker.C:
			s.runCapacityRefresh(ctx)
		}
	}
}

func (s *Scheduler) runNotify(ctx context.Context) {
	if !s.notifyRunning.CompareAndSwap(false, true) {
		s.log.Warn("notification cycle still running, skipping tick")
		return
	}
	defer s.notifyRunning.Store(false)

	if err := s.notify.Evaluate(ctx); err != nil {
		s.log.Error("notification cycle failed", zap.Error(err))
	}
}

// runCapacityRefresh recomputes snapshots so the occupancy gauges stay fresh
// between notification cycles.
func (s *Scheduler) runCapacityRefresh(ctx context.Context) {
	if !s.refreshRunning.CompareAndSwap(false, true) {
		s.log.Warn("capacity refresh still running, skipping tick")
		return
	}
	defer s.refreshRunning.Store(false)

	if _, err := s.capacity.SnapshotAll(ctx); err != nil {
		s.log.Error("capacity refresh failed", zap.Error(err))
	}
}
