package midiin

import (
	"sync"
	"testing"
	"time"

	"github.com/verte-zerg/triad/internal/theory"
)

type capture struct {
	mu       sync.Mutex
	messages []Message
}

func (c *capture) emit(msg Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

func (c *capture) wait(t *testing.T, n int) []Message {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		if len(c.messages) >= n {
			out := make([]Message, len(c.messages))
			copy(out, c.messages)
			c.mu.Unlock()
			return out
		}
		c.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages", n)
	return nil
}

func TestCoalescerSingleAttack(t *testing.T) {
	var cap capture
	co := newCoalescerWindow(20*time.Millisecond, cap.emit)
	co.NoteOn(60) // middle C

	msgs := cap.wait(t, 1)
	if msgs[0].Type != TypeNoteOn || msgs[0].Attack != AttackSingle {
		t.Fatalf("unexpected message %+v", msgs[0])
	}
	if len(msgs[0].Notes) != 1 || msgs[0].Notes[0] != theory.NewNote("C", theory.Natural, 4) {
		t.Fatalf("unexpected notes %v", msgs[0].Notes)
	}
}

func TestCoalescerChordAttack(t *testing.T) {
	var cap capture
	co := newCoalescerWindow(20*time.Millisecond, cap.emit)
	// Struck almost together, highest first: must arrive as one sorted chord.
	co.NoteOn(67)
	co.NoteOn(60)
	co.NoteOn(64)

	msgs := cap.wait(t, 1)
	if len(msgs) != 1 {
		t.Fatalf("expected one coalesced attack, got %d", len(msgs))
	}
	msg := msgs[0]
	if msg.Attack != AttackChord {
		t.Fatalf("expected chord attack, got %+v", msg)
	}
	want := []theory.Note{
		theory.NewNote("C", theory.Natural, 4),
		theory.NewNote("E", theory.Natural, 4),
		theory.NewNote("G", theory.Natural, 4),
	}
	if len(msg.Notes) != len(want) {
		t.Fatalf("unexpected notes %v", msg.Notes)
	}
	for i := range want {
		if msg.Notes[i] != want[i] {
			t.Fatalf("note %d = %s, want %s", i, msg.Notes[i], want[i])
		}
	}
}

func TestCoalescerSeparatedAttacks(t *testing.T) {
	var cap capture
	co := newCoalescerWindow(20*time.Millisecond, cap.emit)
	co.NoteOn(60)
	time.Sleep(60 * time.Millisecond)
	co.NoteOn(62)

	msgs := cap.wait(t, 2)
	if msgs[0].Attack != AttackSingle || msgs[1].Attack != AttackSingle {
		t.Fatalf("expected two single attacks, got %+v", msgs)
	}
}

func TestCoalescerNoteOffPassesThrough(t *testing.T) {
	var cap capture
	co := newCoalescerWindow(20*time.Millisecond, cap.emit)
	co.NoteOff(60)

	msgs := cap.wait(t, 1)
	if msgs[0].Type != TypeNoteOff || msgs[0].Attack != AttackNone {
		t.Fatalf("unexpected message %+v", msgs[0])
	}
}
