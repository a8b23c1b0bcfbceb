// Package midiin normalizes live MIDI input into attack events for the
// exercise sessions.
package midiin

import (
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/verte-zerg/triad/internal/theory"
)

// MessageType discriminates normalized MIDI events.
type MessageType int

// Normalized event types.
const (
	TypeNoteOn MessageType = iota
	TypeNoteOff
	TypeOther
)

// AttackType classifies a note-on event after coalescing.
type AttackType int

// Attack classes. Non-attack messages carry AttackNone.
const (
	AttackNone AttackType = iota
	AttackSingle
	AttackChord
)

// Message is one normalized event. Note-ons are pre-coalesced: several keys
// struck within the detection window arrive as a single chord attack.
type Message struct {
	Type   MessageType
	Notes  []theory.Note
	Attack AttackType
}

// chordDetectionWindow is the quiet period after which buffered note-ons
// flush as one attack.
const chordDetectionWindow = 40 * time.Millisecond

// Coalescer buffers raw note-on keys and emits attack messages once the
// keyboard goes quiet for the detection window. Note-offs pass through
// immediately.
type Coalescer struct {
	mu        sync.Mutex
	buffer    []int
	debounced func(func())
	emit      func(Message)
}

// NewCoalescer builds a coalescer delivering messages to emit. The emit
// callback runs on the debounce timer goroutine.
func NewCoalescer(emit func(Message)) *Coalescer {
	return newCoalescerWindow(chordDetectionWindow, emit)
}

func newCoalescerWindow(window time.Duration, emit func(Message)) *Coalescer {
	return &Coalescer{debounced: debounce.New(window), emit: emit}
}

// NoteOn buffers a struck key and (re)starts the quiet window.
func (c *Coalescer) NoteOn(key int) {
	c.mu.Lock()
	c.buffer = append(c.buffer, key)
	c.mu.Unlock()
	c.debounced(c.flush)
}

// NoteOff forwards a released key immediately.
func (c *Coalescer) NoteOff(key int) {
	c.emit(Message{
		Type:   TypeNoteOff,
		Notes:  []theory.Note{theory.MIDIToNote(key)},
		Attack: AttackNone,
	})
}

func (c *Coalescer) flush() {
	c.mu.Lock()
	keys := c.buffer
	c.buffer = nil
	c.mu.Unlock()
	if len(keys) == 0 {
		return
	}
	sort.Ints(keys)

	notes := make([]theory.Note, 0, len(keys))
	for _, key := range keys {
		notes = append(notes, theory.MIDIToNote(key))
	}
	attack := AttackSingle
	if len(notes) > 1 {
		attack = AttackChord
	}
	c.emit(Message{Type: TypeNoteOn, Notes: notes, Attack: attack})
}
