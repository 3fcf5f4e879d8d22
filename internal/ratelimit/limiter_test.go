package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move through windows without sleeping.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestCheck_FreshKey(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(NewMemoryStore(), clock.now)

	result := limiter.Check("1.2.3.4", Options{Max: 5, Window: 60})

	assert.True(t, result.Success)
	assert.Equal(t, 5, result.Limit)
	assert.Equal(t, 4, result.Remaining)
	assert.Equal(t, clock.now().UnixMilli()+60_000, result.Reset)
}

func TestCheck_ExhaustsWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(NewMemoryStore(), clock.now)
	opts := Options{Max: 3, Window: 60}

	for i := 0; i < 3; i++ {
		result := limiter.Check("1.2.3.4", opts)
		require.True(t, result.Success, "call %d", i+1)
		assert.Equal(t, 3-(i+1), result.Remaining)
	}

	rejected := limiter.Check("1.2.3.4", opts)
	assert.False(t, rejected.Success)
	assert.Equal(t, 0, rejected.Remaining)
	assert.Greater(t, rejected.RetryAfter, 0)
	assert.LessOrEqual(t, rejected.RetryAfter, 60)
}

func TestCheck_WindowResets(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(NewMemoryStore(), clock.now)
	opts := Options{Max: 1, Window: 60}

	require.True(t, limiter.Check("1.2.3.4", opts).Success)
	require.False(t, limiter.Check("1.2.3.4", opts).Success)

	clock.advance(61 * time.Second)

	result := limiter.Check("1.2.3.4", opts)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Remaining)
}

func TestCheck_IdentifiersAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(NewMemoryStore(), clock.now)
	opts := Options{Max: 1, Window: 60}

	require.True(t, limiter.Check("1.2.3.4", opts).Success)
	require.False(t, limiter.Check("1.2.3.4", opts).Success)

	other := limiter.Check("5.6.7.8", opts)
	assert.True(t, other.Success)
	assert.Equal(t, 0, other.Remaining)
}

func TestCheck_BucketsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewWithClock(NewMemoryStore(), clock.now)

	require.True(t, limiter.Check("1.2.3.4", Options{Max: 1, Window: 60, Bucket: "payment"}).Success)
	require.False(t, limiter.Check("1.2.3.4", Options{Max: 1, Window: 60, Bucket: "payment"}).Success)

	assert.True(t, limiter.Check("1.2.3.4", Options{Max: 1, Window: 60, Bucket: "auth"}).Success)
}

func TestSweep_DropsExpiredRecords(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore()
	limiter := NewWithClock(store, clock.now)

	limiter.Check("1.2.3.4", Options{Max: 5, Window: 60})
	limiter.Check("5.6.7.8", Options{Max: 5, Window: 120})
	require.Equal(t, 2, store.Len())

	clock.advance(90 * time.Second)
	limiter.Sweep()

	assert.Equal(t, 1, store.Len())

	// A swept key starts a fresh window, same as an expired one.
	result := limiter.Check("1.2.3.4", Options{Max: 5, Window: 60})
	assert.True(t, result.Success)
	assert.Equal(t, 4, result.Remaining)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, Options{Max: 5, Window: 60}, Strict)
	assert.Equal(t, Options{Max: 100, Window: 60}, Standard)
	assert.Equal(t, Options{Max: 200, Window: 60}, Lenient)
	assert.Equal(t, Options{Max: 10, Window: 60}, Payment)
	assert.Equal(t, Options{Max: 5, Window: 60}, Auth)
}
