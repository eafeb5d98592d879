package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket holds up to capacity tokens refilled at rate tokens per second.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
}

func newTokenBucket(capacity int, rate float64, now func() time.Time) *tokenBucket {
	if now == nil {
		now = time.Now
	}
	return &tokenBucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: now(),
		now:        now,
	}
}

// refill must be called with mu held.
func (b *tokenBucket) refill() time.Time {
	t := b.now()
	b.tokens = min(b.capacity, b.tokens+t.Sub(b.lastRefill).Seconds()*b.rate)
	b.lastRefill = t
	return t
}

// state is the bucket after one take.
type state struct {
	ok        bool
	remaining int
	reset     time.Time     // when the bucket is full again
	wait      time.Duration // until the next token, zero when ok
}

// take consumes one token if available.
func (b *tokenBucket) take() state {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := b.refill()
	st := state{reset: t}
	if b.tokens >= 1 {
		b.tokens--
		st.ok = true
	}
	st.remaining = int(b.tokens)

	if b.rate > 0 {
		if b.tokens < b.capacity {
			st.reset = t.Add(seconds((b.capacity - b.tokens) / b.rate))
		}
		if !st.ok {
			st.wait = seconds((1 - b.tokens) / b.rate)
		}
	}
	return st
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
