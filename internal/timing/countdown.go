package timing

import (
	"fmt"
	"sync"
	"time"
)

// Countdown decrements a remaining-seconds value once per second and fires
// an expiration callback exactly once on reaching zero. Bonus time can be
// injected while running without disturbing the tick cadence.
type Countdown struct {
	mu        sync.Mutex
	initial   int
	remaining int
	interval  time.Duration
	onExpire  func()
	cancel    chan struct{}
	expired   bool
}

// NewCountdown builds a countdown from seconds. onExpire may be nil.
func NewCountdown(seconds int, onExpire func()) *Countdown {
	return newCountdownInterval(seconds, time.Second, onExpire)
}

// newCountdownInterval exists so tests can shorten the tick cadence.
func newCountdownInterval(seconds int, interval time.Duration, onExpire func()) *Countdown {
	return &Countdown{
		initial:   seconds,
		remaining: seconds,
		interval:  interval,
		onExpire:  onExpire,
	}
}

// Start begins or restarts the tick cadence. Starting an expired countdown
// has no effect.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired {
		return
	}
	c.stopLocked()
	cancel := make(chan struct{})
	c.cancel = cancel
	go c.loop(cancel)
}

// Stop halts the cadence without firing the callback. Idempotent.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

func (c *Countdown) stopLocked() {
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
}

// AddTime grants bonus seconds without restarting the cadence. It has no
// effect once the countdown has expired.
func (c *Countdown) AddTime(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expired {
		return
	}
	c.remaining += seconds
}

// Remaining returns the seconds left, never below zero.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}

// Expired reports whether the countdown has run out.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Reset stops the cadence and restores the initial seconds, re-arming the
// expiration callback.
func (c *Countdown) Reset() {
	c.mu.Lock()
	c.stopLocked()
	c.remaining = c.initial
	c.expired = false
	c.mu.Unlock()
}

// Format renders the remaining time as m:ss.
func (c *Countdown) Format() string {
	seconds := c.Remaining()
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (c *Countdown) loop(cancel chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.cancel != cancel {
				c.mu.Unlock()
				return
			}
			c.remaining--
			if c.remaining > 0 {
				c.mu.Unlock()
				continue
			}
			c.expired = true
			c.stopLocked()
			onExpire := c.onExpire
			c.mu.Unlock()
			if onExpire != nil {
				onExpire()
			}
			return
		}
	}
}
