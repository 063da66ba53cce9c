package webhook

import (
	"math/rand"
	"time"
)

const (
	defaultBaseDelay = time.Second
	defaultMaxDelay  = 30 * time.Second
	defaultJitter    = 300 * time.Millisecond
)

// BackoffScheduler computes the delay before the next delivery attempt:
// min(maxDelay, baseDelay * 2^attempt) plus a uniformly random jitter in
// [0, jitter). Jitter avoids thundering-herd synchronization when many
// deliveries fail at once; the cap bounds worst-case latency to the
// merchant regardless of retry count.
type BackoffScheduler struct {
	baseDelay time.Duration
	maxDelay  time.Duration
	jitter    time.Duration
}

// NewBackoffScheduler returns a scheduler with production defaults:
// 1s base, 30s cap, 300ms jitter. First retry (attempt 1) waits ~2s.
func NewBackoffScheduler() *BackoffScheduler {
	return NewBackoffSchedulerWith(defaultBaseDelay, defaultMaxDelay, defaultJitter)
}

// NewBackoffSchedulerWith returns a scheduler with explicit parameters.
// Non-positive base or max fall back to the defaults.
func NewBackoffSchedulerWith(base, max, jitter time.Duration) *BackoffScheduler {
	if base <= 0 {
		base = defaultBaseDelay
	}
	if max <= 0 {
		max = defaultMaxDelay
	}
	if jitter < 0 {
		jitter = 0
	}
	return &BackoffScheduler{
		baseDelay: base,
		maxDelay:  max,
		jitter:    jitter,
	}
}

// DelayFor returns the delay before the next attempt. attempt is the count
// after incrementing following a failed send, so the first retry passes 1.
func (b *BackoffScheduler) DelayFor(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := b.maxDelay
	// Shift overflows past 62 doublings; anything that far in is capped anyway.
	if attempt < 62 {
		if d := b.baseDelay << uint(attempt); d > 0 && d < b.maxDelay {
			delay = d
		}
	}

	if b.jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(b.jitter)))
	}

	return delay
}
