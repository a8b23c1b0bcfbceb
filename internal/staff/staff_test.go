package staff

import (
	"strings"
	"testing"

	"github.com/verte-zerg/triad/internal/rhythm"
	"github.com/verte-zerg/triad/internal/theory"
)

func TestParseToken(t *testing.T) {
	note, dur, err := ParseToken("C#4q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := theory.NewNote("C", theory.Sharp, 4)
	if note != want {
		t.Fatalf("expected %v, got %v", want, note)
	}
	if dur != "q" {
		t.Fatalf("expected duration q, got %q", dur)
	}

	for _, bad := range []string{"", "C4", "H4q", "C4x", "q"} {
		if _, _, err := ParseToken(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDiatonicStep(t *testing.T) {
	tests := []struct {
		note theory.Note
		want int
	}{
		{theory.NewNote("C", theory.Natural, 4), 28},
		{theory.NewNote("E", theory.Natural, 4), 30},
		{theory.NewNote("F", theory.Natural, 5), 38},
		{theory.NewNote("C", theory.Sharp, 4), 28},
		{theory.NewNote("G", theory.Natural, 2), 18},
	}
	for _, tt := range tests {
		if got := diatonicStep(tt.note); got != tt.want {
			t.Fatalf("diatonicStep(%v): expected %d, got %d", tt.note, tt.want, got)
		}
	}
}

func TestRenderScrollingAdvances(t *testing.T) {
	s := New(ClefTreble, DarkTheme())
	s.QueueNotes([]string{"C4q", "E4q", "G4q"})

	before := s.Render(80)
	if !strings.Contains(before, "o") {
		t.Fatalf("expected a notehead in the render")
	}

	s.AdvanceNotes()
	s.AdvanceNotes()
	s.AdvanceNotes()
	after := s.Render(80)
	if strings.Contains(after, "o") {
		t.Fatalf("expected an empty staff after exhausting the queue")
	}
	if !strings.Contains(after, "-") {
		t.Fatalf("expected staff lines to remain")
	}
}

func TestRenderChordStacksNotes(t *testing.T) {
	s := New(ClefTreble, DarkTheme())
	s.DrawChord([]string{"C4q", "E4q", "G4q"})

	out := s.Render(80)
	if got := strings.Count(out, "o"); got != 3 {
		t.Fatalf("expected 3 noteheads, got %d", got)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 treble rows, got %d", len(lines))
	}
}

func TestRenderAccidentalGlyph(t *testing.T) {
	s := New(ClefTreble, DarkTheme())
	s.DrawChord([]string{"F#4q"})
	if out := s.Render(80); !strings.Contains(out, "#o") {
		t.Fatalf("expected sharp glyph in render, got:\n%s", out)
	}
}

func TestClearAll(t *testing.T) {
	s := New(ClefTreble, DarkTheme())
	s.DrawChord([]string{"C4q"})
	s.ClearAll()
	if out := s.Render(80); strings.Contains(out, "o") {
		t.Fatalf("expected no noteheads after clear")
	}
}

func TestRenderRhythm(t *testing.T) {
	s := New(ClefTreble, DarkTheme())
	s.DrawRhythm(rhythm.GroupDurations([]string{"e", "e", "rq", "h"}))

	out := s.Render(80)
	if !strings.Contains(out, "e=e") {
		t.Fatalf("expected beamed eighths, got %q", out)
	}
	if !strings.Contains(out, "(q)") {
		t.Fatalf("expected a parenthesized rest, got %q", out)
	}
	if !strings.Contains(out, "h") {
		t.Fatalf("expected the half note, got %q", out)
	}
}

func TestUnknownClefFallsBack(t *testing.T) {
	s := New(Clef("alto"), DarkTheme())
	if s.grid.top != clefGrids[ClefTreble].top {
		t.Fatalf("expected treble grid for unknown clef")
	}
}
