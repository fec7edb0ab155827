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

	"github.com/idiarso/parkingLot-sub000/internal/clock"
	sessiondomain "github.com/idiarso/parkingLot-sub000/internal/session/domain"
	"github.com/idiarso/parkingLot-sub000/internal/session/repository"
	tariffdomain "github.com/idiarso/parkingLot-sub000/internal/tariff/domain"
)

type stubResolver struct {
	fee      tariffdomain.Fee
	lastIn   tariffdomain.ResolveInput
	resolved int
}

func (r *stubResolver) ResolveFee(ctx context.Context, in tariffdomain.ResolveInput) (tariffdomain.Fee, error) {
	r.lastIn = in
	r.resolved++
	return r.fee, nil
}

type stubPolicy struct {
	complimentary bool
}

func (p stubPolicy) Complimentary(ctx context.Context, memberCode string, at time.Time) bool {
	return p.complimentary
}

func newTestService(t *testing.T, resolver tariffdomain.Resolver, policy sessiondomain.FeePolicy, at time.Time) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&sessiondomain.ParkingSession{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return &Service{
		db:     db,
		log:    zap.NewNop(),
		clock:  clock.Fixed{T: at},
		genID:  node,
		repo:   repository.Provide(),
		tariff: resolver,
		policy: policy,
	}
}

func TestOpenNormalizesInput(t *testing.T) {
	entry := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	svc := newTestService(t, &stubResolver{}, nil, entry)

	sess, err := svc.Open(context.Background(), sessiondomain.OpenRequest{
		PlateNumber: " b 1234 xyz ",
		VehicleType: "Motor",
	})
	require.NoError(t, err)
	assert.Equal(t, "B 1234 XYZ", sess.PlateNumber)
	assert.Equal(t, "motor", sess.VehicleType)
	assert.Equal(t, sessiondomain.StatusOpen, sess.Status)
	assert.Equal(t, entry, sess.EntryTime)
	assert.NotZero(t, sess.ID)
}

func TestOpenRejectsMissingFields(t *testing.T) {
	svc := newTestService(t, &stubResolver{}, nil, time.Now())

	_, err := svc.Open(context.Background(), sessiondomain.OpenRequest{PlateNumber: "", VehicleType: "motor"})
	assert.ErrorIs(t, err, sessiondomain.ErrInvalidSession)

	_, err = svc.Open(context.Background(), sessiondomain.OpenRequest{PlateNumber: "B 1 A", VehicleType: "  "})
	assert.ErrorIs(t, err, sessiondomain.ErrInvalidSession)
}

func TestCloseSetsFeeOnce(t *testing.T) {
	exit := time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	resolver := &stubResolver{fee: tariffdomain.Fee{Amount: 5000, Source: tariffdomain.SourceHourly}}
	svc := newTestService(t, resolver, nil, exit)

	sess, err := svc.Open(context.Background(), sessiondomain.OpenRequest{PlateNumber: "B 1 A", VehicleType: "motor"})
	require.NoError(t, err)

	closed, err := svc.Close(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StatusClosed, closed.Status)
	require.NotNil(t, closed.Fee)
	assert.Equal(t, int64(5000), *closed.Fee)
	assert.Equal(t, tariffdomain.SourceHourly, closed.FeeSource)
	require.NotNil(t, closed.ExitTime)
	assert.Equal(t, exit, *closed.ExitTime)
	assert.False(t, resolver.lastIn.TicketLost)

	// A second close finds no open session.
	_, err = svc.Close(context.Background(), sess.ID)
	assert.ErrorIs(t, err, sessiondomain.ErrSessionNotFound)
	assert.Equal(t, 1, resolver.resolved)
}

func TestCloseUnknownTicket(t *testing.T) {
	svc := newTestService(t, &stubResolver{}, nil, time.Now())

	_, err := svc.Close(context.Background(), snowflake.ID(42))
	assert.ErrorIs(t, err, sessiondomain.ErrSessionNotFound)
}

func TestCloseLostTicket(t *testing.T) {
	resolver := &stubResolver{fee: tariffdomain.Fee{Amount: 25000, Source: tariffdomain.SourceLostTicket}}
	svc := newTestService(t, resolver, nil, time.Now().UTC())

	sess, err := svc.Open(context.Background(), sessiondomain.OpenRequest{PlateNumber: "B 1 A", VehicleType: "motor"})
	require.NoError(t, err)

	closed, err := svc.CloseLostTicket(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StatusLostTicket, closed.Status)
	assert.Equal(t, int64(25000), *closed.Fee)
	assert.True(t, resolver.lastIn.TicketLost)
}

func TestCloseComplimentaryMember(t *testing.T) {
	resolver := &stubResolver{fee: tariffdomain.Fee{Amount: 5000, Source: tariffdomain.SourceHourly}}
	svc := newTestService(t, resolver, stubPolicy{complimentary: true}, time.Now().UTC())

	code := "M-001"
	sess, err := svc.Open(context.Background(), sessiondomain.OpenRequest{
		PlateNumber: "B 1 A",
		VehicleType: "motor",
		MemberCode:  &code,
	})
	require.NoError(t, err)

	closed, err := svc.Close(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), *closed.Fee)
	assert.Equal(t, tariffdomain.SourceMember, closed.FeeSource)
	assert.Equal(t, 0, resolver.resolved)
}

func TestCloseLostTicketIgnoresMembership(t *testing.T) {
	resolver := &stubResolver{fee: tariffdomain.Fee{Amount: 25000, Source: tariffdomain.SourceLostTicket}}
	svc := newTestService(t, resolver, stubPolicy{complimentary: true}, time.Now().UTC())

	code := "M-001"
	sess, err := svc.Open(context.Background(), sessiondomain.OpenRequest{
		PlateNumber: "B 1 A",
		VehicleType: "motor",
		MemberCode:  &code,
	})
	require.NoError(t, err)

	closed, err := svc.CloseLostTicket(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), *closed.Fee)
	assert.Equal(t, 1, resolver.resolved)
}

func TestListDuplicateOpenPlates(t *testing.T) {
	svc := newTestService(t, &stubResolver{}, nil, time.Now().UTC())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Open(ctx, sessiondomain.OpenRequest{PlateNumber: "B 1234 XYZ", VehicleType: "motor"})
		require.NoError(t, err)
	}
	_, err := svc.Open(ctx, sessiondomain.OpenRequest{PlateNumber: "B 9 Z", VehicleType: "mobil"})
	require.NoError(t, err)

	dups, err := svc.ListDuplicateOpenPlates(ctx)
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "B 1234 XYZ", dups[0].PlateNumber)
	assert.Equal(t, 2, dups[0].OpenCount)
}
