package service

import (
	"sync"
	"time"
)

// SessionClock enforces the idle-expiry window for one authenticated
// session. At most one expiry callback is pending at any time: arming
// always disarms the previous timer first, so a burst of activity can
// never produce duplicate logouts.
type SessionClock struct {
	onExpire func()

	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	gen      uint64
}

// NewSessionClock constructs a clock that invokes onExpire when the idle
// window elapses without activity. onExpire runs on the timer goroutine.
func NewSessionClock(onExpire func()) *SessionClock {
	return &SessionClock{onExpire: onExpire}
}

// Start (re)arms the expiry callback to fire after d of inactivity,
// cancelling any previously armed timer first. Restart is idempotent.
func (c *SessionClock) Start(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked()
	c.duration = d
	c.armLocked(d)
}

// NotifyActivity restarts the window with the same duration if a timer is
// armed. This makes the window an idle timeout, not an absolute lifetime.
func (c *SessionClock) NotifyActivity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return
	}
	c.disarmLocked()
	c.armLocked(c.duration)
}

// Stop cancels the pending callback. Used on logout.
func (c *SessionClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked()
}

// Armed reports whether an expiry callback is pending.
func (c *SessionClock) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

func (c *SessionClock) armLocked(d time.Duration) {
	gen := c.gen
	c.timer = time.AfterFunc(d, func() { c.fire(gen) })
}

// disarmLocked cancels the current timer and invalidates its generation so
// an already-fired callback racing the lock becomes a no-op.
func (c *SessionClock) disarmLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *SessionClock) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire()
	}
}
