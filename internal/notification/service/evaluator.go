package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
	"github.com/idiarso/parkingLot-sub000/internal/clock"
	notificationdomain "github.com/idiarso/parkingLot-sub000/internal/notification/domain"
	"github.com/idiarso/parkingLot-sub000/internal/notification/repository"
	notifierdomain "github.com/idiarso/parkingLot-sub000/internal/notifier/domain"
	notifierservice "github.com/idiarso/parkingLot-sub000/internal/notifier/service"
	"github.com/idiarso/parkingLot-sub000/internal/observability"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node

	repo        notificationdomain.Repository
	sessionRepo sessiondomain.Repository
	capacity    capacitydomain.Monitor
	settings    *settings.Service
	dispatcher  *notifierservice.Dispatcher
	beeper      notificationdomain.Beeper
	metrics     *observability.Metrics

	machines map[capacitydomain.Class]*notificationdomain.CapacityMachine
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	GenID       *snowflake.Node
	SessionRepo sessiondomain.Repository
	Capacity    capacitydomain.Monitor
	Settings    *settings.Service
	Dispatcher  *notifierservice.Dispatcher
	Beeper      notificationdomain.Beeper `optional:"true"`
	Metrics     *observability.Metrics    `optional:"true"`
}

func NewService(p ServiceParam) *Service {
	beeper := p.Beeper
	if beeper == nil {
		beeper = logBeeper{log: p.Log.Named("notification.beeper")}
	}

	machines := make(map[capacitydomain.Class]*notificationdomain.CapacityMachine, len(capacitydomain.Classes))
	for _, class := range capacitydomain.Classes {
		machines[class] = notificationdomain.NewCapacityMachine()
	}

	return &Service{
		db:          p.DB,
		log:         p.Log.Named("notification.service"),
		clock:       p.Clock,
		genID:       p.GenID,
		repo:        repository.Provide(),
		sessionRepo: p.SessionRepo,
		capacity:    p.Capacity,
		settings:    p.Settings,
		dispatcher:  p.Dispatcher,
		beeper:      beeper,
		metrics:     p.Metrics,
		machines:    machines,
	}
}

// Evaluate runs one cycle over all conditions. The scheduler guarantees no
// two cycles overlap, so the machines need no locking. A failing condition
// group does not stop the others.
func (s *Service) Evaluate(ctx context.Context) error {
	snap, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}

	longErr := s.evaluateLongParking(ctx, snap)
	capErr := s.evaluateCapacity(ctx, snap)
	return errors.Join(longErr, capErr)
}

func (s *Service) evaluateLongParking(ctx context.Context, snap settings.Snapshot) error {
	now := s.clock.Now(ctx)
	sessions, err := s.sessionRepo.ListOpen(ctx, s.db)
	if err != nil {
		return err
	}

	active := make(map[string]bool)
	for _, sess := range sessions {
		elapsed := now.Sub(sess.EntryTime)
		if elapsed <= snap.LongParkingThreshold {
			continue
		}

		key := notificationdomain.LongParkingKey(sess.ID)
		active[key] = true
		minutes := int(elapsed.Minutes())
		message := fmt.Sprintf("Vehicle %s has been parked for %d minutes (ticket %s)",
			sess.PlateNumber, minutes, sess.ID.String())

		existing, err := s.repo.FindByKey(ctx, s.db, key)
		if err != nil {
			return err
		}
		if existing != nil {
			// Same episode, alert already raised once.
			if err := s.repo.Refresh(ctx, s.db, key, message, now); err != nil {
				return err
			}
			continue
		}

		rec := &notificationdomain.Record{
			ID:            s.genID.Generate(),
			ConditionKey:  key,
			Type:          notificationdomain.TypeLongParking,
			Message:       message,
			Payload:       mustJSON(map[string]any{"plate_number": sess.PlateNumber, "ticket": sess.ID.String(), "entry_time": sess.EntryTime}),
			FirstRaisedAt: now,
			LastUpdatedAt: now,
		}
		if err := s.repo.Create(ctx, s.db, rec); err != nil {
			return err
		}
		s.emitted(notificationdomain.TypeLongParking)
		s.beeper.Beep(ctx, notificationdomain.TypeLongParking)
		s.deliver(snap, "Long parking alert", message)
	}

	// Records whose session has since closed are confirmed clear.
	stale, err := s.repo.ListByType(ctx, s.db, notificationdomain.TypeLongParking)
	if err != nil {
		return err
	}
	for _, rec := range stale {
		if active[rec.ConditionKey] {
			continue
		}
		if err := s.repo.DeleteByKey(ctx, s.db, rec.ConditionKey); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) evaluateCapacity(ctx context.Context, snap settings.Snapshot) error {
	now := s.clock.Now(ctx)
	snapshots, err := s.capacity.SnapshotAll(ctx)
	if err != nil {
		return err
	}

	for _, cs := range snapshots {
		machine := s.machines[cs.Class]
		changed, escalated := machine.Apply(cs.Level)
		message := fmt.Sprintf("Parking area %s at %d%% of capacity (%d/%d)",
			cs.Class, cs.PercentFull, cs.Occupied, cs.Capacity)

		if !changed {
			if t, ok := notificationdomain.CapacityType(cs.Level); ok {
				if err := s.ensureCapacityRecord(ctx, t, cs, message, now, false, snap); err != nil {
					return err
				}
			}
			continue
		}

		// Records for levels the class is no longer at are confirmed clear.
		for _, t := range []notificationdomain.Type{notificationdomain.TypeCapacityWarning, notificationdomain.TypeCapacityCritical} {
			if current, ok := notificationdomain.CapacityType(cs.Level); ok && t == current {
				continue
			}
			if err := s.repo.DeleteByKey(ctx, s.db, notificationdomain.CapacityKey(t, cs.Class)); err != nil {
				return err
			}
		}

		if t, ok := notificationdomain.CapacityType(cs.Level); ok {
			if err := s.ensureCapacityRecord(ctx, t, cs, message, now, escalated, snap); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureCapacityRecord creates or refreshes the singleton record for a class
// and severity. Delivery and the audible alert fire only when the record is
// new and the move was an escalation, so a restart that replays an existing
// condition refreshes quietly.
func (s *Service) ensureCapacityRecord(ctx context.Context, t notificationdomain.Type, cs capacitydomain.Snapshot, message string, now time.Time, escalated bool, snap settings.Snapshot) error {
	key := notificationdomain.CapacityKey(t, cs.Class)
	existing, err := s.repo.FindByKey(ctx, s.db, key)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.repo.Refresh(ctx, s.db, key, message, now)
	}

	rec := &notificationdomain.Record{
		ID:            s.genID.Generate(),
		ConditionKey:  key,
		Type:          t,
		Message:       message,
		Payload:       mustJSON(map[string]any{"class": cs.Class, "occupied": cs.Occupied, "capacity": cs.Capacity, "percent_full": cs.PercentFull}),
		FirstRaisedAt: now,
		LastUpdatedAt: now,
	}
	if err := s.repo.Create(ctx, s.db, rec); err != nil {
		return err
	}
	s.emitted(t)

	if escalated {
		if t == notificationdomain.TypeCapacityCritical {
			s.beeper.Beep(ctx, t)
		}
		s.deliver(snap, fmt.Sprintf("Capacity %s: %s", levelWord(t), cs.Class), message)
	}
	return nil
}

func (s *Service) deliver(snap settings.Snapshot, subject, body string) {
	if snap.EmailEnabled && snap.AdminEmail != "" {
		s.dispatcher.Dispatch("email", notifierdomain.Message{
			Recipient: snap.AdminEmail,
			Subject:   subject,
			Body:      body,
		})
	}
	if snap.SMSEnabled && snap.AdminPhone != "" {
		s.dispatcher.Dispatch("sms", notifierdomain.Message{
			Recipient: snap.AdminPhone,
			Subject:   subject,
			Body:      body,
		})
	}
}

func (s *Service) emitted(t notificationdomain.Type) {
	if s.metrics != nil {
		s.metrics.NotificationsEmitted.WithLabelValues(string(t)).Inc()
	}
}

// List exposes active records to the HTTP layer.
func (s *Service) List(ctx context.Context) ([]notificationdomain.Record, error) {
	return s.repo.List(ctx, s.db)
}

func levelWord(t notificationdomain.Type) string {
	if t == notificationdomain.TypeCapacityCritical {
		return "critical"
	}
	return "warning"
}

func mustJSON(v map[string]any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

type logBeeper struct {
	log *zap.Logger
}

func (b logBeeper) Beep(ctx context.Context, t notificationdomain.Type) {
	b.log.Info("audible alert", zap.String("type", string(t)))
}
