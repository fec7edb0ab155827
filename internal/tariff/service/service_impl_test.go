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

	ratedomain "github.com/idiarso/parkingLot-sub000/internal/rate/domain"
	raterepository "github.com/idiarso/parkingLot-sub000/internal/rate/repository"
	specialratedomain "github.com/idiarso/parkingLot-sub000/internal/specialrate/domain"
	specialraterepository "github.com/idiarso/parkingLot-sub000/internal/specialrate/repository"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ratedomain.RateRule{}, &specialratedomain.SpecialRateRule{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:          db,
		log:         zap.NewNop(),
		rateRepo:    raterepository.Provide(),
		specialRepo: specialraterepository.Provide(),
	}
	return svc, db, node
}

func seedMotorRate(t *testing.T, db *gorm.DB, node *snowflake.Node) ratedomain.RateRule {
	t.Helper()
	next := int64(2000)
	rule := ratedomain.RateRule{
		ID:                node.Generate(),
		VehicleType:       "motor",
		HourlyRate:        3000,
		NextHourRate:      &next,
		LostTicketPenalty: 25000,
		Active:            true,
	}
	require.NoError(t, db.Create(&rule).Error)
	return rule
}

// Wednesday, 2026-03-04.
func wednesdayAt(hour, minute int) time.Time {
	return time.Date(2026, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func TestBilledHours(t *testing.T) {
	entry := wednesdayAt(10, 0)

	assert.Equal(t, 1, billedHours(entry, entry))
	assert.Equal(t, 1, billedHours(entry, entry.Add(25*time.Minute)))
	assert.Equal(t, 1, billedHours(entry, entry.Add(60*time.Minute)))
	assert.Equal(t, 2, billedHours(entry, entry.Add(61*time.Minute)))
	assert.Equal(t, 2, billedHours(entry, entry.Add(2*time.Hour)))
	assert.Equal(t, 3, billedHours(entry, entry.Add(2*time.Hour+5*time.Minute)))
}

func TestResolveFeeHourly(t *testing.T) {
	svc, db, node := newTestService(t)
	rule := seedMotorRate(t, db, node)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(13, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000+2000*3), fee.Amount) // 4 billed hours
	assert.Equal(t, tariffdomain.SourceHourly, fee.Source)
	assert.Equal(t, rule.ID, fee.RuleID)
	assert.Equal(t, 4, fee.BilledHours)
}

func TestResolveFeeMinimumOneHour(t *testing.T) {
	svc, db, node := newTestService(t)
	seedMotorRate(t, db, node)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(10, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), fee.Amount)
	assert.Equal(t, 1, fee.BilledHours)
}

func TestResolveFeeVehicleTypeCaseInsensitive(t *testing.T) {
	svc, db, node := newTestService(t)
	seedMotorRate(t, db, node)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "Motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(10, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), fee.Amount)
}

func TestResolveFeeSpecialWindowOverridesHourly(t *testing.T) {
	svc, db, node := newTestService(t)
	seedMotorRate(t, db, node)

	special := specialratedomain.SpecialRateRule{
		ID:          node.Generate(),
		VehicleType: "motor",
		Category:    "Jam Sibuk",
		StartTime:   "17:00",
		EndTime:     "19:00",
		Days:        "1,2,3,4,5",
		FlatRate:    5000,
		Active:      true,
	}
	require.NoError(t, db.Create(&special).Error)

	// Entry inside the window charges the flat rate no matter how long
	// the stay runs.
	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(17, 30),
		ExitTime:    wednesdayAt(23, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), fee.Amount)
	assert.Equal(t, tariffdomain.SourceSpecial, fee.Source)
	assert.Equal(t, "Jam Sibuk", fee.Category)

	// Entry outside the window falls through to the hourly formula.
	fee, err = svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(11, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, tariffdomain.SourceHourly, fee.Source)
}

func TestResolveFeeOvernightSpecialWindow(t *testing.T) {
	svc, db, node := newTestService(t)
	seedMotorRate(t, db, node)

	special := specialratedomain.SpecialRateRule{
		ID:          node.Generate(),
		VehicleType: "motor",
		Category:    "Tarif Malam",
		StartTime:   "22:00",
		EndTime:     "02:00",
		Days:        "0,1,2,3,4,5,6",
		FlatRate:    8000,
		Active:      true,
	}
	require.NoError(t, db.Create(&special).Error)

	for _, entry := range []time.Time{wednesdayAt(23, 30), wednesdayAt(1, 0)} {
		fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
			VehicleType: "motor",
			EntryTime:   entry,
			ExitTime:    entry.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(8000), fee.Amount, entry)
		assert.Equal(t, tariffdomain.SourceSpecial, fee.Source)
	}

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(11, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, tariffdomain.SourceHourly, fee.Source)
}

func TestResolveFeeNarrowestSpecialWins(t *testing.T) {
	svc, db, node := newTestService(t)
	seedMotorRate(t, db, node)

	wide := specialratedomain.SpecialRateRule{
		ID:          node.Generate(),
		VehicleType: "motor",
		Category:    "Siang",
		StartTime:   "08:00",
		EndTime:     "20:00",
		Days:        "1,2,3,4,5",
		FlatRate:    4000,
		Active:      true,
	}
	narrow := specialratedomain.SpecialRateRule{
		ID:          node.Generate(),
		VehicleType: "motor",
		Category:    "Jam Sibuk",
		StartTime:   "17:00",
		EndTime:     "19:00",
		Days:        "1,2,3,4,5",
		FlatRate:    5000,
		Active:      true,
	}
	require.NoError(t, db.Create(&wide).Error)
	require.NoError(t, db.Create(&narrow).Error)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(17, 30),
		ExitTime:    wednesdayAt(18, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, narrow.ID, fee.RuleID)
	assert.Equal(t, int64(5000), fee.Amount)
}

func TestResolveFeeFlatOverride(t *testing.T) {
	svc, db, node := newTestService(t)
	rule := ratedomain.RateRule{
		ID:                node.Generate(),
		VehicleType:       "bus",
		HourlyRate:        10000,
		FlatRate:          20000,
		LostTicketPenalty: 100000,
		Active:            true,
	}
	require.NoError(t, db.Create(&rule).Error)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "bus",
		EntryTime:   wednesdayAt(8, 0),
		ExitTime:    wednesdayAt(18, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), fee.Amount)
	assert.Equal(t, tariffdomain.SourceFlat, fee.Source)
}

func TestResolveFeeLostTicket(t *testing.T) {
	svc, db, node := newTestService(t)
	seedMotorRate(t, db, node)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(10, 30),
		TicketLost:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), fee.Amount)
	assert.Equal(t, tariffdomain.SourceLostTicket, fee.Source)
}

func TestResolveFeeErrors(t *testing.T) {
	svc, db, node := newTestService(t)

	_, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(10, 0),
		ExitTime:    wednesdayAt(11, 0),
	})
	assert.ErrorIs(t, err, ratedomain.ErrRateNotFound)

	seedMotorRate(t, db, node)
	_, err = svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(11, 0),
		ExitTime:    wednesdayAt(10, 0),
	})
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidInterval)
}

func TestResolveFeeLatestRateWins(t *testing.T) {
	svc, db, node := newTestService(t)

	old := seedMotorRate(t, db, node)
	require.NoError(t, db.Model(&old).Update("created_at", wednesdayAt(0, 0)).Error)

	newer := ratedomain.RateRule{
		ID:                node.Generate(),
		VehicleType:       "motor",
		HourlyRate:        4000,
		LostTicketPenalty: 25000,
		Active:            true,
		CreatedAt:         wednesdayAt(12, 0),
	}
	require.NoError(t, db.Create(&newer).Error)

	fee, err := svc.ResolveFee(context.Background(), tariffdomain.ResolveInput{
		VehicleType: "motor",
		EntryTime:   wednesdayAt(13, 0),
		ExitTime:    wednesdayAt(13, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, newer.ID, fee.RuleID)
	assert.Equal(t, int64(4000), fee.Amount)
}
