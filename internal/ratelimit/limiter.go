// Package ratelimit implements fixed-window request counting keyed by client
// identity and bucket name. The default store is an in-process map, so limits
// are best-effort and per-instance; a Redis-backed store can be swapped in
// for multi-instance deployments without changing the algorithm.
package ratelimit

import (
	"log"
	"math"
	"time"
)

// Options configures a single rate-limit check.
type Options struct {
	// Max is the number of requests allowed per window.
	Max int
	// Window is the window length in seconds.
	Window int
	// Bucket names an independent counter per identifier, so one caller can
	// have separate limits per operation category. Empty means "default".
	Bucket string
}

// Result is the outcome of a rate-limit check. The limiter never returns an
// error; it is safe to call unconditionally on every request.
type Result struct {
	Success   bool
	Limit     int
	Remaining int
	// Reset is the absolute window expiry in epoch milliseconds.
	Reset int64
	// RetryAfter is seconds until the window resets, set only on rejection.
	RetryAfter int
}

// Store holds the per-key window counters. Increment creates or resets the
// record when the window has expired, otherwise bumps the count, returning
// the count after the call and the window's expiry in epoch milliseconds.
type Store interface {
	Increment(key string, windowMS, now int64) (count int, resetTime int64, err error)
	Sweep(now int64)
}

// Limiter owns a store and a clock. The clock is injectable so tests can
// drive window expiry deterministically.
type Limiter struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// NewWithClock is New with an explicit clock.
func NewWithClock(store Store, now func() time.Time) *Limiter {
	return &Limiter{store: store, now: now}
}

// Check records one request for the identifier under opts and reports
// whether it is allowed. Store failures fail open.
func (l *Limiter) Check(identifier string, opts Options) Result {
	bucket := opts.Bucket
	if bucket == "" {
		bucket = "default"
	}
	key := identifier + ":" + bucket
	now := l.now().UnixMilli()
	windowMS := int64(opts.Window) * 1000

	count, resetTime, err := l.store.Increment(key, windowMS, now)
	if err != nil {
		log.Printf("rate limit store error for %s: %v", key, err)
		return Result{Success: true, Limit: opts.Max, Remaining: opts.Max - 1, Reset: now + windowMS}
	}

	if count > opts.Max {
		retryAfter := int(math.Ceil(float64(resetTime-now) / 1000))
		return Result{Success: false, Limit: opts.Max, Remaining: 0, Reset: resetTime, RetryAfter: retryAfter}
	}
	return Result{Success: true, Limit: opts.Max, Remaining: opts.Max - count, Reset: resetTime}
}

// Sweep deletes expired records from the store. Advisory cleanup only: a
// swept record is recreated fresh on the next request, identical to an
// expired-but-unswept one.
func (l *Limiter) Sweep() {
	l.store.Sweep(l.now().UnixMilli())
}

// Preset policies. Values are part of the contract callers rely on.
var (
	Strict   = Options{Max: 5, Window: 60}
	Standard = Options{Max: 100, Window: 60}
	Lenient  = Options{Max: 200, Window: 60}
	Payment  = Options{Max: 10, Window: 60}
	Auth     = Options{Max: 5, Window: 60}
)
