package clock

import (
	"sync"
	"time"
)

// NewFake returns a Fake clock frozen at the given time. Time moves only
// when Advance or Set is called. Advance delivers one tick to every active
// ticker, regardless of the ticker interval, which is all the controller
// tests need: every tick handler reads Now() rather than the tick value's
// wall time.
func NewFake(initial time.Time) *Fake {
	return &Fake{now: initial}
}

// Fake is a deterministic Clock for tests. Safe for concurrent use.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("non-positive ticker interval")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ft := &fakeTicker{ch: make(chan time.Time, 1)}
	f.tickers = append(f.tickers, ft)
	return &Ticker{
		C: ft.ch,
		stop: func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			ft.stopped = true
		},
	}
}

// Advance moves the clock forward and fires every active ticker once. Like
// time.Ticker, a tick is dropped when the consumer has not drained the
// previous one.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
	for _, ft := range f.tickers {
		if ft.stopped {
			continue
		}
		select {
		case ft.ch <- f.now:
		default:
		}
	}
}

// Set jumps the clock to an absolute time without firing tickers.
func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}
