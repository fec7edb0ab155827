package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	capacitydomain "github.com/idiarso/parkingLot-sub000/internal/capacity/domain"
	capacityservice "github.com/idiarso/parkingLot-sub000/internal/capacity/service"
	"github.com/idiarso/parkingLot-sub000/internal/clock"
	"github.com/idiarso/parkingLot-sub000/internal/config"
	notificationdomain "github.com/idiarso/parkingLot-sub000/internal/notification/domain"
	"github.com/idiarso/parkingLot-sub000/internal/notification/repository"
	notifierservice "github.com/idiarso/parkingLot-sub000/internal/notifier/service"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	sessionrepository "github.com/idiarso/parkingLot-sub000/internal/session/repository"
	"github.com/idiarso/parkingLot-sub000/internal/settings"
)

type countingBeeper struct {
	counts map[notificationdomain.Type]int
}

func (b *countingBeeper) Beep(ctx context.Context, t notificationdomain.Type) {
	b.counts[t]++
}

type evaluatorFixture struct {
	svc    *Service
	db     *gorm.DB
	node   *snowflake.Node
	beeper *countingBeeper
}

func newEvaluator(t *testing.T, now time.Time) *evaluatorFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&settings.Setting{},
		&sessiondomain.ParkingSession{},
		&notificationdomain.Record{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	settingsSvc := settings.NewService(settings.ServiceParam{DB: db, Log: log})
	sessionRepo := sessionrepository.Provide()
	monitor := capacityservice.NewService(capacityservice.ServiceParam{
		DB:          db,
		Log:         log,
		SessionRepo: sessionRepo,
		Settings:    settingsSvc,
	})
	dispatcher := notifierservice.NewDispatcher(notifierservice.DispatcherParam{
		Cfg: &config.Config{DispatchTimeout: time.Second},
		Log: log,
	})

	beeper := &countingBeeper{counts: map[notificationdomain.Type]int{}}

	machines := make(map[capacitydomain.Class]*notificationdomain.CapacityMachine)
	for _, class := range capacitydomain.Classes {
		machines[class] = notificationdomain.NewCapacityMachine()
	}

	svc := &Service{
		db:          db,
		log:         log,
		clock:       clock.Fixed{T: now},
		genID:       node,
		repo:        repository.Provide(),
		sessionRepo: sessionRepo,
		capacity:    monitor,
		settings:    settingsSvc,
		dispatcher:  dispatcher,
		beeper:      beeper,
		machines:    machines,
	}
	return &evaluatorFixture{svc: svc, db: db, node: node, beeper: beeper}
}

func (f *evaluatorFixture) openSession(t *testing.T, vehicleType string, entry time.Time) sessiondomain.ParkingSession {
	t.Helper()
	sess := sessiondomain.ParkingSession{
		ID:          f.node.Generate(),
		PlateNumber: "B 1234 XYZ",
		VehicleType: vehicleType,
		EntryTime:   entry,
		Status:      sessiondomain.StatusOpen,
	}
	require.NoError(t, f.db.Create(&sess).Error)
	return sess
}

func (f *evaluatorFixture) records(t *testing.T) []notificationdomain.Record {
	t.Helper()
	recs, err := f.svc.List(context.Background())
	require.NoError(t, err)
	return recs
}

func TestLongParkingAlertDeduplicates(t *testing.T) {
	now := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	f := newEvaluator(t, now)
	ctx := context.Background()

	sess := f.openSession(t, "motor", now.Add(-3*time.Hour))
	f.openSession(t, "motor", now.Add(-30*time.Minute)) // under threshold

	require.NoError(t, f.svc.Evaluate(ctx))

	recs := f.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, notificationdomain.TypeLongParking, recs[0].Type)
	assert.Equal(t, notificationdomain.LongParkingKey(sess.ID), recs[0].ConditionKey)
	assert.Equal(t, 1, f.beeper.counts[notificationdomain.TypeLongParking])

	// A later cycle refreshes the existing record instead of raising again.
	later := now.Add(10 * time.Minute)
	f.svc.clock = clock.Fixed{T: later}
	require.NoError(t, f.svc.Evaluate(ctx))

	recs = f.records(t)
	require.Len(t, recs, 1)
	assert.WithinDuration(t, later, recs[0].LastUpdatedAt, time.Second)
	assert.WithinDuration(t, now, recs[0].FirstRaisedAt, time.Second)
	assert.Equal(t, 1, f.beeper.counts[notificationdomain.TypeLongParking])
}

func TestLongParkingAlertClearsWhenSessionCloses(t *testing.T) {
	now := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	f := newEvaluator(t, now)
	ctx := context.Background()

	sess := f.openSession(t, "motor", now.Add(-3*time.Hour))
	require.NoError(t, f.svc.Evaluate(ctx))
	require.Len(t, f.records(t), 1)

	require.NoError(t, f.db.Model(&sessiondomain.ParkingSession{}).
		Where("id = ?", sess.ID).
		Update("status", sessiondomain.StatusClosed).Error)

	require.NoError(t, f.svc.Evaluate(ctx))
	assert.Empty(t, f.records(t))
}

func TestLongParkingThresholdFromSettings(t *testing.T) {
	now := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	f := newEvaluator(t, now)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&settings.Setting{
		Key: settings.KeyLongParkingThreshold, Value: "30", UpdatedAt: now,
	}).Error)

	f.openSession(t, "motor", now.Add(-45*time.Minute))
	require.NoError(t, f.svc.Evaluate(ctx))
	assert.Len(t, f.records(t), 1)
}

func TestCapacityCriticalAlert(t *testing.T) {
	now := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	f := newEvaluator(t, now)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&settings.Setting{
		Key: settings.KeyMotorCapacity, Value: "10", UpdatedAt: now,
	}).Error)
	for i := 0; i < 10; i++ {
		f.openSession(t, "motor", now.Add(-time.Minute))
	}

	require.NoError(t, f.svc.Evaluate(ctx))

	recs := f.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, notificationdomain.TypeCapacityCritical, recs[0].Type)
	assert.Equal(t, "capacity_critical:motor", recs[0].ConditionKey)
	assert.Equal(t, 1, f.beeper.counts[notificationdomain.TypeCapacityCritical])

	// The lot is still full on the next tick: refresh, no second alert.
	require.NoError(t, f.svc.Evaluate(ctx))
	assert.Len(t, f.records(t), 1)
	assert.Equal(t, 1, f.beeper.counts[notificationdomain.TypeCapacityCritical])
}

func TestCapacityAlertClearsOnDrop(t *testing.T) {
	now := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	f := newEvaluator(t, now)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&settings.Setting{
		Key: settings.KeyMotorCapacity, Value: "10", UpdatedAt: now,
	}).Error)
	for i := 0; i < 10; i++ {
		f.openSession(t, "motor", now.Add(-time.Minute))
	}

	require.NoError(t, f.svc.Evaluate(ctx))
	require.Len(t, f.records(t), 1)

	require.NoError(t, f.db.Model(&sessiondomain.ParkingSession{}).
		Where("vehicle_type = ?", "motor").
		Update("status", sessiondomain.StatusClosed).Error)

	require.NoError(t, f.svc.Evaluate(ctx))
	assert.Empty(t, f.records(t))
}

func TestCapacityEscalationReplacesWarning(t *testing.T) {
	now := time.Date(2026, time.March, 4, 13, 0, 0, 0, time.UTC)
	f := newEvaluator(t, now)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&settings.Setting{
		Key: settings.KeyMotorCapacity, Value: "10", UpdatedAt: now,
	}).Error)
	for i := 0; i < 8; i++ {
		f.openSession(t, "motor", now.Add(-time.Minute))
	}

	// 80% is WARNING with the default 75/90 thresholds. No beep.
	require.NoError(t, f.svc.Evaluate(ctx))
	recs := f.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, notificationdomain.TypeCapacityWarning, recs[0].Type)
	assert.Equal(t, 0, f.beeper.counts[notificationdomain.TypeCapacityCritical])

	for i := 0; i < 2; i++ {
		f.openSession(t, "motor", now.Add(-time.Minute))
	}

	require.NoError(t, f.svc.Evaluate(ctx))
	recs = f.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, notificationdomain.TypeCapacityCritical, recs[0].Type)
	assert.Equal(t, 1, f.beeper.counts[notificationdomain.TypeCapacityCritical])
}
