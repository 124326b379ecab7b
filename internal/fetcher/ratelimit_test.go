package fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostRateLimiterUnlimited(t *testing.T) {
	t.Parallel()

	r := NewHostRateLimiter(0, 0, 0)
	start := time.Now()
	for i := 0; i < 50; i++ {
		require.NoError(t, r.Wait(context.Background(), "example.com"))
	}
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, r.CanAccess("example.com"))
}

func TestHostRateLimiterHostDelay(t *testing.T) {
	t.Parallel()

	r := NewHostRateLimiter(0, 1, 100*time.Millisecond)

	require.NoError(t, r.Wait(context.Background(), "a.example.com"))
	assert.False(t, r.CanAccess("a.example.com"))
	assert.True(t, r.CanAccess("b.example.com"), "hosts are limited independently")

	start := time.Now()
	require.NoError(t, r.Wait(context.Background(), "a.example.com"))
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestHostRateLimiterCanceled(t *testing.T) {
	t.Parallel()

	r := NewHostRateLimiter(0, 1, time.Hour)
	require.NoError(t, r.Wait(context.Background(), "example.com"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx, "example.com"), context.DeadlineExceeded)
}

func TestHostRateLimiterPrunesExpiredHosts(t *testing.T) {
	t.Parallel()

	r := NewHostRateLimiter(0, 1, 10*time.Millisecond)
	for _, host := range []string{"a.example.com", "b.example.com", "c.example.com"} {
		require.NoError(t, r.Wait(context.Background(), host))
	}
	assert.Equal(t, 3, r.tracked())

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, r.Wait(context.Background(), "d.example.com"))
	assert.Equal(t, 1, r.tracked(), "only the host just reserved remains")
}
