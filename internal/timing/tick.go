// Package timing provides the tick, countdown, and tries primitives that
// drive exercise rounds.
package timing

import (
	"sync"
	"time"
)

// Guards against runaway timers. Runs outside these bounds are silently
// dropped rather than rejected with an error.
const (
	MinTickInterval   = 250 * time.Millisecond
	MaxTickInterval   = 10 * time.Second
	MaxTickIterations = 100
)

// TickScheduler runs a callback a fixed number of times at a fixed
// interval. Only one run is active per instance: starting a new run cancels
// the in-flight one and releases its awaiter immediately.
type TickScheduler struct {
	mu     sync.Mutex
	gen    int
	cancel chan struct{}
	done   chan struct{}
}

// Run schedules onTick for the given number of iterations. The returned
// channel closes when the iterations are exhausted, Stop is called, or a
// newer run takes over. With fireOnStart the first invocation happens
// synchronously before any delay. Out-of-bounds configuration is a no-op
// whose channel is already closed.
func (s *TickScheduler) Run(iterations int, interval time.Duration, onTick func(), fireOnStart bool) <-chan struct{} {
	s.mu.Lock()
	s.stopLocked()

	if interval < MinTickInterval || interval > MaxTickInterval || iterations > MaxTickIterations {
		s.mu.Unlock()
		return closedChan()
	}

	s.gen++
	gen := s.gen
	cancel := make(chan struct{})
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	remaining := iterations
	if fireOnStart {
		s.mu.Unlock()
		if onTick != nil {
			onTick()
		}
		remaining--
		s.mu.Lock()
		if s.gen != gen {
			// The callback restarted or stopped us; done is already closed.
			s.mu.Unlock()
			return done
		}
	}
	if remaining <= 0 {
		s.stopLocked()
		s.mu.Unlock()
		return done
	}
	s.mu.Unlock()

	go s.loop(gen, remaining, interval, onTick, cancel)
	return done
}

// Stop cancels the active run, if any, and releases its awaiter. Safe to
// call repeatedly or when nothing is running.
func (s *TickScheduler) Stop() {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
}

func (s *TickScheduler) stopLocked() {
	s.gen++
	if s.cancel != nil {
		close(s.cancel)
		s.cancel = nil
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func (s *TickScheduler) loop(gen, remaining int, interval time.Duration, onTick func(), cancel chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.gen != gen {
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
			if onTick != nil {
				onTick()
			}
			remaining--
			if remaining <= 0 {
				s.mu.Lock()
				if s.gen == gen {
					s.stopLocked()
				}
				s.mu.Unlock()
				return
			}
		}
	}
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
