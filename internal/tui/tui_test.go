package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/triad/internal/exercise"
	"github.com/verte-zerg/triad/internal/staff"
)

func TestStylesForTheme(t *testing.T) {
	dark := StylesForTheme("dark")
	light := StylesForTheme("light")
	if dark.Title.GetForeground() == light.Title.GetForeground() {
		t.Fatalf("expected distinct themes")
	}
	fallback := StylesForTheme("unknown")
	if fallback.Title.GetForeground() != dark.Title.GetForeground() {
		t.Fatalf("expected dark fallback for unknown theme")
	}
}

func TestChordModelIgnoresOptionBeforeRound(t *testing.T) {
	session := exercise.NewChordGuesser("easy", exercise.Deps{})
	defer session.Destroy()
	board := staff.New(staff.ClefTreble, staff.DarkTheme())
	session.SetRenderer(board)
	m := NewChordModel(session, board, DarkStyles(), "Chord Guesser")

	// No round is live yet; option keys must not panic or score.
	m.handleOption("1")
	m.handleOption("4")
	if session.Score() != 0 {
		t.Fatalf("expected no score before the first round")
	}
}

func TestSightModelViewShowsStatus(t *testing.T) {
	session := exercise.NewSightReading("easy", "treble", exercise.Deps{})
	defer session.Destroy()
	board := staff.New(staff.ClefTreble, staff.DarkTheme())
	session.SetRenderer(board)
	m := NewSightModel(session, board, DarkStyles(), "Sight Reading")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	if !strings.Contains(view, "Sight Reading") {
		t.Fatalf("expected title in view")
	}
	if !strings.Contains(view, "Score 0") {
		t.Fatalf("expected status line in view:\n%s", view)
	}
}

func TestRhythmModelSummary(t *testing.T) {
	session := exercise.NewRhythmTrainer("easy", exercise.Deps{})
	defer session.Destroy()
	board := staff.New(staff.ClefTreble, staff.DarkTheme())
	session.SetRenderer(board)
	m := NewRhythmModel(session, board, DarkStyles(), "Rhythm Training")

	summary := m.Summary("easy")
	if summary.Exercise != "Rhythm Training" || summary.Difficulty != "easy" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
