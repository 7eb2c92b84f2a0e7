// Package controller implements the client-side attendance state machine:
// it reconciles local state with the server's record on start, derives a
// live working-hours value from a ticking clock, and drives the
// clock-in/clock-out transitions against the gateway.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hris-attendance/internal/clock"
	"hris-attendance/internal/gateway"
	"hris-attendance/internal/model"
	"hris-attendance/internal/session"
	"hris-attendance/internal/timeutil"
)

// State of today's attendance as seen by this client.
type State int

const (
	// StateUnknown holds only while the initial reconciliation runs; it is
	// never re-entered.
	StateUnknown State = iota
	StateNotCheckedIn
	StateCheckedIn
)

func (s State) String() string {
	switch s {
	case StateNotCheckedIn:
		return "not_checked_in"
	case StateCheckedIn:
		return "checked_in"
	default:
		return "unknown"
	}
}

type NotificationKind int

const (
	NoticeSuccess NotificationKind = iota
	NoticeError
	// NoticeSessionExpired is actionable: the session has been invalidated
	// and the user must log in again.
	NoticeSessionExpired
)

// Notification is a user-facing, dismissable message emitted by the state
// machine.
type Notification struct {
	Kind    NotificationKind
	Message string
}

const sessionExpiredMessage = "Your session has expired. Please log in again."

// Gateway is the slice of the attendance gateway the controller drives.
type Gateway interface {
	FetchToday(ctx context.Context, credential string) (*model.Attendance, error)
	ClockIn(ctx context.Context, credential string) (*model.ClockResponse, error)
	ClockOut(ctx context.Context, credential string) (*model.ClockResponse, error)
}

// Snapshot is a consistent read of the controller's view state.
type Snapshot struct {
	State State

	// CheckInAt is the instant of today's clock-in; zero when not checked
	// in.
	CheckInAt time.Time

	// LiveHours is the elapsed working time in decimal hours, two
	// decimals, recomputed on every tick.
	LiveHours float64

	// Record is the last known server record for today, nil if absent.
	Record *model.Attendance
}

var (
	ErrAlreadyStarted   = errors.New("controller already started")
	ErrClosed           = errors.New("controller is closed")
	ErrInFlight         = errors.New("another attendance request is in flight")
	ErrNotReady         = errors.New("attendance state is still loading")
	ErrAlreadyCheckedIn = errors.New("already clocked in today")
	ErrNotCheckedIn     = errors.New("not clocked in")
)

type Option func(*Controller)

// WithClock replaces the wall clock; tests inject a fake.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) { ctrl.clk = c }
}

// WithTickInterval overrides the default 1 s live-hours tick.
func WithTickInterval(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.interval = d }
}

// WithNotify registers the sink for user-facing notifications.
func WithNotify(fn func(Notification)) Option {
	return func(ctrl *Controller) { ctrl.notify = fn }
}

// WithOnChange registers a callback invoked with a fresh snapshot after
// every state transition and tick.
func WithOnChange(fn func(Snapshot)) Option {
	return func(ctrl *Controller) { ctrl.onChange = fn }
}

type Controller struct {
	gw       Gateway
	sessions *session.Store
	clk      clock.Clock
	interval time.Duration
	notify   func(Notification)
	onChange func(Snapshot)

	mu        sync.Mutex
	state     State
	checkInAt time.Time
	liveHours float64
	record    *model.Attendance
	inFlight  bool
	started   bool
	closed    bool
	done      chan struct{}
}

func New(gw Gateway, sessions *session.Store, opts ...Option) *Controller {
	c := &Controller{
		gw:       gw,
		sessions: sessions,
		clk:      clock.Real(),
		interval: time.Second,
		notify:   func(Notification) {},
		state:    StateUnknown,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start reconciles local state against the server record (exactly once per
// controller lifetime) and then starts the live-hours ticker. The
// reconciliation result is reflected in Snapshot when Start returns.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	c.reconcile(ctx)
	go c.run()
	return nil
}

// Close tears the controller down: the ticker stops, and any response still
// in flight is discarded without mutating state. Safe to call more than
// once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     c.state,
		CheckInAt: c.checkInAt,
		LiveHours: c.liveHours,
	}
	if c.record != nil {
		rec := *c.record
		snap.Record = &rec
	}
	return snap
}

// reconcile synchronizes with the authoritative server record. A missing
// record or a completed one means NotCheckedIn; an open record restores
// CheckedIn with the server's clock-in instant. Failures are non-fatal: the
// state falls back to NotCheckedIn, and only a 401 invalidates the session.
func (c *Controller) reconcile(ctx context.Context) {
	record, err := c.gw.FetchToday(ctx, c.sessions.Credential())

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	switch {
	case err != nil && gateway.IsAuth(err):
		c.state = StateNotCheckedIn
		c.mu.Unlock()
		c.sessions.Logout()
		c.notify(Notification{Kind: NoticeSessionExpired, Message: sessionExpiredMessage})

	case err != nil:
		c.state = StateNotCheckedIn
		c.mu.Unlock()
		c.notify(Notification{Kind: NoticeError, Message: gateway.UserMessage(err)})

	case record == nil || record.ClockIn == "" || record.ClockOut != nil:
		// No record yet, or the workday is already complete. Not an error;
		// no notification.
		c.state = StateNotCheckedIn
		c.record = record
		c.mu.Unlock()

	default:
		instant, perr := timeutil.CombineDateClock(record.Date, record.ClockIn)
		if perr != nil {
			c.state = StateNotCheckedIn
			c.mu.Unlock()
			c.notify(Notification{Kind: NoticeError, Message: "Failed to load attendance data"})
			break
		}
		c.state = StateCheckedIn
		c.checkInAt = instant
		c.liveHours = timeutil.HoursBetween(instant, c.clk.Now())
		c.record = record
		c.mu.Unlock()
	}

	c.emitChange()
}

// ClockIn requests the start of the workday. Valid only from NotCheckedIn,
// with no other mutating call in flight.
func (c *Controller) ClockIn(ctx context.Context) error {
	if err := c.beginMutation(StateNotCheckedIn); err != nil {
		return err
	}

	resp, err := c.gw.ClockIn(ctx, c.sessions.Credential())

	c.mu.Lock()
	c.inFlight = false
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if err != nil {
		// Remain NotCheckedIn.
		c.mu.Unlock()
		c.fail(err)
		return err
	}

	record := resp.Attendance
	instant, perr := timeutil.CombineDateClock(record.Date, record.ClockIn)
	if perr != nil {
		c.mu.Unlock()
		verr := &gateway.ValidationError{Message: "unexpected clock-in time from server"}
		c.notify(Notification{Kind: NoticeError, Message: verr.Message})
		return verr
	}

	c.state = StateCheckedIn
	c.checkInAt = instant
	c.liveHours = timeutil.HoursBetween(instant, c.clk.Now())
	c.record = &record
	c.mu.Unlock()

	c.notify(Notification{
		Kind:    NoticeSuccess,
		Message: fmt.Sprintf("Checked in at %s", record.ClockIn),
	})
	c.emitChange()
	return nil
}

// ClockOut requests the end of the workday. Valid only from CheckedIn, with
// no other mutating call in flight.
func (c *Controller) ClockOut(ctx context.Context) error {
	if err := c.beginMutation(StateCheckedIn); err != nil {
		return err
	}

	resp, err := c.gw.ClockOut(ctx, c.sessions.Credential())

	c.mu.Lock()
	c.inFlight = false
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if err != nil {
		// Remain CheckedIn.
		c.mu.Unlock()
		c.fail(err)
		return err
	}

	record := resp.Attendance
	c.state = StateNotCheckedIn
	c.checkInAt = time.Time{}
	c.liveHours = 0
	c.record = &record
	c.mu.Unlock()

	c.notify(Notification{
		Kind:    NoticeSuccess,
		Message: fmt.Sprintf("Checked out. Total hours today: %s", record.TotalHours),
	})
	c.emitChange()
	return nil
}

// beginMutation validates the transition and claims the single in-flight
// slot. A request from the wrong state is a caller bug and never reaches
// the server.
func (c *Controller) beginMutation(required State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.inFlight {
		return ErrInFlight
	}
	if c.state != required {
		switch c.state {
		case StateUnknown:
			return ErrNotReady
		case StateCheckedIn:
			return ErrAlreadyCheckedIn
		default:
			return ErrNotCheckedIn
		}
	}
	c.inFlight = true
	return nil
}

// fail routes a gateway error to the right notification, invalidating the
// session on auth failures.
func (c *Controller) fail(err error) {
	if gateway.IsAuth(err) {
		c.sessions.Logout()
		c.notify(Notification{Kind: NoticeSessionExpired, Message: sessionExpiredMessage})
		return
	}
	c.notify(Notification{Kind: NoticeError, Message: gateway.UserMessage(err)})
}

func (c *Controller) run() {
	ticker := c.clk.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick recomputes the live elapsed hours. It never changes state, and it
// only reads checkInAt. LiveHours is kept monotonically non-decreasing
// between transitions.
func (c *Controller) tick() {
	c.mu.Lock()
	if c.closed || c.checkInAt.IsZero() {
		c.mu.Unlock()
		return
	}
	if elapsed := timeutil.HoursBetween(c.checkInAt, c.clk.Now()); elapsed > c.liveHours {
		c.liveHours = elapsed
	}
	c.mu.Unlock()

	c.emitChange()
}

func (c *Controller) emitChange() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Snapshot())
}
