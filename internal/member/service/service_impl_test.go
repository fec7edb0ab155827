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

	memberdomain "github.com/idiarso/parkingLot-sub000/internal/member/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&memberdomain.Member{}))
	return db
}

func TestCreateAndFindByCode(t *testing.T) {
	db := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
	ctx := context.Background()

	created, err := svc.Create(ctx, memberdomain.CreateRequest{
		Code:        "M-001",
		Name:        "Budi",
		PlateNumber: "b 1234 xyz",
		VehicleType: "Motor",
		ActiveUntil: time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "B 1234 XYZ", created.PlateNumber)
	assert.Equal(t, "motor", created.VehicleType)
	assert.True(t, created.Active)

	found, err := svc.FindByCode(ctx, "M-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.FindByCode(ctx, "M-999")
	assert.ErrorIs(t, err, memberdomain.ErrMemberNotFound)

	_, err = svc.Create(ctx, memberdomain.CreateRequest{Code: "", Name: "x"})
	assert.ErrorIs(t, err, memberdomain.ErrInvalidMember)
}

func TestFeePolicyComplimentary(t *testing.T) {
	db := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
	policy := NewFeePolicy(db, zap.NewNop())
	ctx := context.Background()

	now := time.Now().UTC()
	_, err = svc.Create(ctx, memberdomain.CreateRequest{
		Code:        "M-001",
		Name:        "Budi",
		ActiveUntil: now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, memberdomain.CreateRequest{
		Code:        "M-002",
		Name:        "Sari",
		ActiveUntil: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	assert.True(t, policy.Complimentary(ctx, "M-001", now))
	assert.False(t, policy.Complimentary(ctx, "M-002", now), "expired membership pays")
	assert.False(t, policy.Complimentary(ctx, "M-999", now), "unknown code pays")

	// Membership expiring exactly at the exit instant pays.
	assert.False(t, policy.Complimentary(ctx, "M-001", now.Add(24*time.Hour)))
}
