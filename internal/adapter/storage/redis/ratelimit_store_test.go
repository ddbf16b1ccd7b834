package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitStore_AllowWithinLimit(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := store.Allow(ctx, "client-a:mint", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d within limit", i+1)
	}

	result, err := store.Allow(ctx, "client-a:mint", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestRateLimitStore_IndependentKeys(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRateLimitStore(client)
	ctx := context.Background()

	_, err := store.Allow(ctx, "client-a:mint", 1, time.Minute)
	require.NoError(t, err)

	result, err := store.Allow(ctx, "client-b:mint", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
