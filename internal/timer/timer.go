// Package timer implements the server-anchored countdown for active tasks.
// Remaining time is always recomputed from the server's start timestamp and
// the wall clock; nothing here accumulates elapsed time, so the countdown
// survives reloads, backgrounding, and reconnects for free.
package timer

import (
	"fmt"
	"time"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// completionSafetyMargin guards the first evaluation after activation: a
// freshly started task is only auto-completed before the first tick if the
// wall clock has already overshot the duration by this much.
const completionSafetyMargin = 3 * time.Second

// Remaining computes the time left on a countdown purely from the anchor
// timestamp and the current wall clock. Never negative.
func Remaining(now, startedAt time.Time, total time.Duration) time.Duration {
	elapsed := now.Sub(startedAt)
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

// FormatMMSS renders a duration as an MM:SS countdown string.
func FormatMMSS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Snapshot is one evaluation of the countdown.
type Snapshot struct {
	// Remaining is the seconds left, never negative.
	Remaining int
	// Progress runs from 0 at start to 100 at expiry.
	Progress float64
	// Formatted is the MM:SS rendering of Remaining.
	Formatted string
	// Running is true while an active, valid countdown has time left.
	Running bool
}

// sessionState tracks the per-session completion machine. It only moves
// forward: idle -> running -> completed, re-keyed when startedAt changes.
type sessionState int

const (
	sessionIdle sessionState = iota
	sessionRunning
	sessionCompleted
)

// Countdown derives a live countdown for an active, timer-using task. The
// completion callback fires at most once per distinct startedAt value.
type Countdown struct {
	onComplete func()
	clock      func() time.Time

	state      sessionState
	sessionKey string
	startedAt  time.Time
	total      time.Duration
	ticks      int
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Countdown) {
		c.clock = clock
	}
}

// New creates a Countdown. onComplete may be nil.
func New(onComplete func(), opts ...Option) *Countdown {
	c := &Countdown{
		onComplete: onComplete,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure points the countdown at a task session. startedAt is the raw
// server timestamp (empty when the task has no start time); active gates the
// whole countdown. Deactivating or clearing startedAt resets the tick count
// and the completion guard. An unparseable startedAt is treated as "not a
// valid timer": full duration, zero progress, completion never fires.
func (c *Countdown) Configure(startedAt string, durationMinutes int, active bool) {
	c.total = time.Duration(durationMinutes) * time.Minute

	if !active || startedAt == "" {
		c.reset()
		return
	}

	if startedAt == c.sessionKey {
		return
	}

	// New session: re-anchor and re-arm the completion guard.
	anchor, err := models.ParseServerTime(startedAt)
	if err != nil {
		c.reset()
		return
	}
	c.sessionKey = startedAt
	c.startedAt = anchor
	c.state = sessionRunning
	c.ticks = 0
}

// reset returns the countdown to idle and clears all session tracking.
func (c *Countdown) reset() {
	c.state = sessionIdle
	c.sessionKey = ""
	c.startedAt = time.Time{}
	c.ticks = 0
}

// Active reports whether a session is currently anchored.
func (c *Countdown) Active() bool {
	return c.state != sessionIdle
}

// Tick records one periodic re-evaluation and returns the fresh snapshot.
// The tick only forces recomputation; skipped ticks lose no information.
func (c *Countdown) Tick() Snapshot {
	if c.state != sessionIdle {
		c.ticks++
	}
	return c.Evaluate()
}

// Evaluate recomputes the countdown from the wall clock. Safe to call any
// number of times; the completion callback still fires at most once per
// session.
func (c *Countdown) Evaluate() Snapshot {
	if c.state == sessionIdle {
		return Snapshot{
			Remaining: int(c.total.Seconds()),
			Formatted: FormatMMSS(c.total),
		}
	}

	now := c.clock()
	rem := Remaining(now, c.startedAt, c.total)

	snap := Snapshot{
		Remaining: int(rem.Seconds()),
		Formatted: FormatMMSS(rem),
		Running:   c.state == sessionRunning && rem > 0,
	}
	if c.total > 0 {
		snap.Progress = 100 * (1 - rem.Seconds()/c.total.Seconds())
	}

	if rem == 0 && c.state == sessionRunning {
		// Do not complete on the very first evaluation after activation
		// unless the clock has meaningfully overshot the duration; a fresh
		// start evaluated instantly must not expire on the spot.
		elapsed := now.Sub(c.startedAt)
		if c.ticks >= 1 || elapsed >= c.total+completionSafetyMargin {
			c.state = sessionCompleted
			if c.onComplete != nil {
				c.onComplete()
			}
		}
	}

	return snap
}
