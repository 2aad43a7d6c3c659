package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_BurstThenReject(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lim := NewMemoryLimiter(2, time.Minute)
	lim.now = func() time.Time { return now }

	ctx := context.Background()
	for range 2 {
		ok, err := lim.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := lim.Allow(ctx, "ip")
	assert.False(t, ok)

	ok, _ = lim.Allow(ctx, "other")
	assert.True(t, ok)

	// One token refills every 30s.
	now = now.Add(31 * time.Second)
	ok, _ = lim.Allow(ctx, "ip")
	assert.True(t, ok)
}

func TestMemoryLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lim := NewMemoryLimiter(10, time.Minute)
	lim.now = func() time.Time { return now }

	_, _ = lim.Allow(context.Background(), "a")
	now = now.Add(3 * time.Minute)
	_, _ = lim.Allow(context.Background(), "b")
	now = now.Add(3 * time.Minute)

	assert.Equal(t, 1, lim.Sweep())
	assert.Len(t, lim.buckets, 1)
	assert.Contains(t, lim.buckets, "b")
}

func TestMemoryLimiter_RunStopsOnCancel(t *testing.T) {
	lim := NewMemoryLimiter(1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		lim.Run(ctx, 10*time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
