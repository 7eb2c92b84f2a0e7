// Package clock abstracts wall-clock time so the session controller's
// live-hours tick can be driven deterministically in tests. Production code
// injects Real(); tests inject NewFake() and advance it by hand.
package clock

import "time"

type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a Ticker delivering ticks on C at the given
	// interval. Call Stop when done.
	NewTicker(d time.Duration) *Ticker
}

// Ticker wraps a periodic timer. The C channel has capacity 1; ticks are
// dropped rather than queued if the consumer falls behind, matching
// time.Ticker.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns off the ticker. No more ticks arrive on C after Stop returns.
// Stop does not close C.
func (t *Ticker) Stop() { t.stop() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) *Ticker {
	ticker := time.NewTicker(d)
	return &Ticker{C: ticker.C, stop: ticker.Stop}
}
