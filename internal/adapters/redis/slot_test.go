package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/sections-ui/internal/session"
	"github.com/campusbook/sections-ui/internal/testutil"
)

func TestIdentitySlotRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	slot := NewIdentitySlotWithKey(client, "sections-ui-test:identity")
	ctx := context.Background()
	t.Cleanup(func() { _ = slot.Clear(context.Background()) })

	_, err := slot.Read(ctx)
	assert.ErrorIs(t, err, session.ErrSlotEmpty)

	payload := []byte(`{"id":"t-1","userType":"TEACHER","department":"Math"}`)
	require.NoError(t, slot.Write(ctx, payload))

	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	require.NoError(t, slot.Clear(ctx))
	_, err = slot.Read(ctx)
	assert.ErrorIs(t, err, session.ErrSlotEmpty)
}

func TestIdentitySlotClearIsIdempotent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	slot := NewIdentitySlotWithKey(client, "sections-ui-test:identity-clear")
	ctx := context.Background()

	require.NoError(t, slot.Clear(ctx))
	require.NoError(t, slot.Clear(ctx))
}

func TestIdentitySlotDefaultKey(t *testing.T) {
	slot := NewIdentitySlotWithKey(nil, "")
	assert.Equal(t, defaultSlotKey, slot.key)
}
