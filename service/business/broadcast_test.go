package business_test

import (
	"context"
	"testing"

	"github.com/openrelay/service-filerelay/service/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastAdmission(t *testing.T) {
	cfg := testConfig()
	ctx, svc := newTestService(t, cfg)

	broadcaster := business.NewBroadcaster(svc, business.NewAdmission([]int64{100}), cfg.QueueBroadcastName)

	err := broadcaster.Broadcast(ctx, 7, "hello everyone")
	assert.ErrorIs(t, err, business.ErrPermissionDenied)

	err = broadcaster.Broadcast(ctx, 100, "")
	assert.ErrorIs(t, err, business.ErrEmptyBroadcast)

	err = broadcaster.Broadcast(ctx, 100, "hello everyone")
	assert.NoError(t, err)
}

func TestStatsTotals(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepository()
	files := newFakeFileRepository()

	identity := business.NewIdentity(users)
	_, err := identity.Touch(ctx, 7, "Ada")
	require.NoError(t, err)
	_, err = identity.Touch(ctx, 8, "Grace")
	require.NoError(t, err)

	require.NoError(t, files.Register(ctx, registeredRecord("AgADBAAD")))

	stats := business.NewStats(business.NewAdmission([]int64{100}), users, files)

	_, err = stats.Totals(ctx, 7)
	assert.ErrorIs(t, err, business.ErrPermissionDenied)

	totals, err := stats.Totals(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Users)
	assert.Equal(t, int64(1), totals.Files)
}

func TestIdentityTouch(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepository()
	identity := business.NewIdentity(users)

	created, err := identity.Touch(ctx, 7, "Ada")
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.TelegramID)
	assert.Equal(t, "Ada", created.FirstName)

	// A later interaction refreshes the display name in place.
	refreshed, err := identity.Touch(ctx, 7, "Ada L.")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", refreshed.FirstName)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
