package timing

import "sync"

// TriesCounter holds remaining attempts and fires an exhaustion callback on
// the first decrement that reaches zero. It does not clamp below zero and
// does not block further decrements; callers gate input themselves once
// exhausted.
type TriesCounter struct {
	mu        sync.Mutex
	initial   int
	remaining int
	onOut     func()
	fired     bool
}

// NewTriesCounter builds a counter with the given attempt budget.
func NewTriesCounter(count int, onOut func()) *TriesCounter {
	return &TriesCounter{initial: count, remaining: count, onOut: onOut}
}

// Decrement consumes one attempt. The exhaustion callback runs
// synchronously, exactly once, on the call that first reaches zero.
func (t *TriesCounter) Decrement() {
	t.mu.Lock()
	t.remaining--
	fire := t.remaining <= 0 && !t.fired
	if fire {
		t.fired = true
	}
	onOut := t.onOut
	t.mu.Unlock()
	if fire && onOut != nil {
		onOut()
	}
}

// Remaining returns the attempts left.
func (t *TriesCounter) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Reset restores the initial attempt budget and re-arms the callback.
func (t *TriesCounter) Reset() {
	t.mu.Lock()
	t.remaining = t.initial
	t.fired = false
	t.mu.Unlock()
}
