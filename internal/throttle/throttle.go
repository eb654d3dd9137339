// Package throttle rate-limits a visible side effect (scrolling, redraws)
// while always delivering the most recent value.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle runs fn at most once per interval. A value submitted inside the
// interval replaces any earlier pending one and runs when the interval
// ends, so the final state is never lost.
//
// fn runs either on the submitting goroutine or on a timer goroutine.
type Throttle[T any] struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	fn      func(T)

	pending    T
	hasPending bool
	timer      *time.Timer
	stopped    bool
}

// New returns a Throttle allowing one call to fn per interval.
func New[T any](interval time.Duration, fn func(T)) *Throttle[T] {
	return &Throttle[T]{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		fn:      fn,
	}
}

// Submit offers v. It runs fn(v) now if the interval has passed, otherwise
// keeps v as the trailing value.
func (t *Throttle[T]) Submit(v T) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending, t.hasPending = v, true
	if t.timer != nil {
		// A trailing run is already scheduled and will pick up v.
		t.mu.Unlock()
		return
	}

	now := time.Now()
	r := t.limiter.ReserveN(now, 1)
	if d := r.DelayFrom(now); d > 0 {
		t.timer = time.AfterFunc(d, t.fire)
		t.mu.Unlock()
		return
	}
	t.hasPending = false
	t.mu.Unlock()

	t.fn(v)
}

// Flush runs any pending value immediately.
func (t *Throttle[T]) Flush() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	v, ok := t.pending, t.hasPending
	t.hasPending = false
	t.mu.Unlock()

	if ok {
		t.fn(v)
	}
}

// Stop drops any pending value and ignores later submissions.
func (t *Throttle[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.hasPending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Throttle[T]) fire() {
	t.mu.Lock()
	t.timer = nil
	if t.stopped || !t.hasPending {
		t.mu.Unlock()
		return
	}
	v := t.pending
	t.hasPending = false
	t.mu.Unlock()

	t.fn(v)
}
