package timing

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickSchedulerRunsExactCount(t *testing.T) {
	var s TickScheduler
	var calls atomic.Int32
	start := time.Now()
	done := s.Run(3, MinTickInterval, func() { calls.Add(1) }, true)

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one synchronous call before any delay, got %d", got)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not finish")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
	if elapsed := time.Since(start); elapsed < 2*MinTickInterval {
		t.Fatalf("finished too early: %v", elapsed)
	}
}

func TestTickSchedulerNoFireOnStart(t *testing.T) {
	var s TickScheduler
	var calls atomic.Int32
	done := s.Run(2, MinTickInterval, func() { calls.Add(1) }, false)
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no synchronous call, got %d", got)
	}
	<-done
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestTickSchedulerRestartCancelsPrevious(t *testing.T) {
	var s TickScheduler
	var first, second atomic.Int32
	done1 := s.Run(100, MinTickInterval, func() { first.Add(1) }, false)
	done2 := s.Run(1, MinTickInterval, func() { second.Add(1) }, true)

	select {
	case <-done1:
	case <-time.After(time.Second):
		t.Fatalf("previous run's awaiter was not released on restart")
	}
	<-done2

	firstCalls := first.Load()
	time.Sleep(2 * MinTickInterval)
	if got := first.Load(); got != firstCalls {
		t.Fatalf("cancelled run kept ticking: %d -> %d", firstCalls, got)
	}
	if got := second.Load(); got != 1 {
		t.Fatalf("expected 1 call on the new run, got %d", got)
	}
}

func TestTickSchedulerRejectsRunawayConfig(t *testing.T) {
	var s TickScheduler
	var calls atomic.Int32
	cb := func() { calls.Add(1) }

	for _, run := range []func() <-chan struct{}{
		func() <-chan struct{} { return s.Run(3, 100*time.Millisecond, cb, true) },
		func() <-chan struct{} { return s.Run(3, 11*time.Second, cb, true) },
		func() <-chan struct{} { return s.Run(101, time.Second, cb, true) },
	} {
		select {
		case <-run():
		case <-time.After(time.Second):
			t.Fatalf("rejected run should resolve immediately")
		}
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("rejected runs must not invoke the callback, got %d", got)
	}
}

func TestTickSchedulerStopIdempotent(t *testing.T) {
	var s TickScheduler
	s.Stop()
	done := s.Run(10, MinTickInterval, nil, false)
	s.Stop()
	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("stop did not release the awaiter")
	}
}

func TestCountdownExpiresOnce(t *testing.T) {
	var fired atomic.Int32
	c := newCountdownInterval(3, 10*time.Millisecond, func() { fired.Add(1) })
	c.Start()
	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected exactly one expiration, got %d", got)
	}
	if !c.Expired() {
		t.Fatalf("countdown should report expired")
	}
	if got := c.Remaining(); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}

	// Restarting or adding time after expiry must not revive it.
	c.AddTime(5)
	c.Start()
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expired countdown fired again: %d", got)
	}
}

func TestCountdownAddTime(t *testing.T) {
	c := newCountdownInterval(2, 50*time.Millisecond, nil)
	c.Start()
	defer c.Stop()
	c.AddTime(60)
	time.Sleep(120 * time.Millisecond)
	if c.Expired() {
		t.Fatalf("bonus time should have kept the countdown alive")
	}
	if got := c.Remaining(); got > 62 || got < 58 {
		t.Fatalf("unexpected remaining %d", got)
	}
}

func TestCountdownStopAndReset(t *testing.T) {
	var fired atomic.Int32
	c := newCountdownInterval(1, 10*time.Millisecond, func() { fired.Add(1) })
	c.Start()
	c.Stop()
	c.Stop()
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Fatalf("stopped countdown fired: %d", got)
	}

	c.Start()
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected expiry after restart, got %d", got)
	}
	c.Reset()
	if c.Expired() || c.Remaining() != 1 {
		t.Fatalf("reset did not restore initial state")
	}
}

func TestCountdownFormat(t *testing.T) {
	c := NewCountdown(65, nil)
	if got := c.Format(); got != "1:05" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestTriesCounter(t *testing.T) {
	var fired atomic.Int32
	tc := NewTriesCounter(3, func() { fired.Add(1) })
	tc.Decrement()
	tc.Decrement()
	if got := fired.Load(); got != 0 {
		t.Fatalf("fired too early: %d", got)
	}
	tc.Decrement()
	if got := fired.Load(); got != 1 {
		t.Fatalf("expected exhaustion on third decrement, got %d", got)
	}

	// Further decrements go below zero without refiring.
	tc.Decrement()
	if got := tc.Remaining(); got != -1 {
		t.Fatalf("expected -1 remaining, got %d", got)
	}
	if got := fired.Load(); got != 1 {
		t.Fatalf("callback refired: %d", got)
	}

	tc.Reset()
	if got := tc.Remaining(); got != 3 {
		t.Fatalf("reset remaining = %d", got)
	}
	tc.Decrement()
	tc.Decrement()
	tc.Decrement()
	if got := fired.Load(); got != 2 {
		t.Fatalf("reset should re-arm the callback, got %d", got)
	}
}
