package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/triad/internal/exercise"
	"github.com/verte-zerg/triad/internal/staff"
	"github.com/verte-zerg/triad/internal/stats"
	"github.com/verte-zerg/triad/internal/theory"
)

type sightKeys struct {
	commonKeys
	Notes key.Binding
}

func newSightKeys() sightKeys {
	return sightKeys{
		commonKeys: newCommonKeys(),
		Notes: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "e", "f", "g", "A", "B", "C", "D", "E", "F", "G"),
			key.WithHelp("a-g / A-G", "note / sharp"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k sightKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Notes, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k sightKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// SightModel implements the Bubble Tea sight-reading UI.
type SightModel struct {
	session   *exercise.SightReading
	board     *staff.Staff
	styles    Styles
	keys      sightKeys
	help      help.Model
	title     string
	width     int
	height    int
	startedAt time.Time
	endedAt   time.Time
}

// NewSightModel wires a sight-reading session to its view. The board must
// already be attached to the session as its renderer.
func NewSightModel(session *exercise.SightReading, board *staff.Staff, styles Styles, title string) *SightModel {
	return &SightModel{
		session: session,
		board:   board,
		styles:  styles,
		keys:    newSightKeys(),
		help:    newHelp(),
		title:   title,
	}
}

// Init implements tea.Model.
func (m *SightModel) Init() tea.Cmd {
	m.startedAt = time.Now()
	m.session.Start()
	return tick()
}

// Update implements tea.Model.
func (m *SightModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.session.IsGameOver() && m.endedAt.IsZero() {
			m.endedAt = time.Now()
		}
		return m, tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.session.Destroy()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			if m.session.IsGameOver() {
				m.session.Reset()
				m.startedAt = time.Now()
				m.endedAt = time.Time{}
			}
			return m, nil
		case msg.Type == tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		}
	}
	return m, nil
}

func (m *SightModel) handleRunes(runes []rune) {
	for _, r := range runes {
		switch {
		case r >= 'a' && r <= 'g':
			m.session.HandleNote(theory.PitchClass(strings.ToUpper(string(r)), theory.Natural))
		case r >= 'A' && r <= 'G':
			m.session.HandleNote(theory.PitchClass(string(r), theory.Sharp))
		}
	}
}

// View implements tea.Model.
func (m *SightModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.board.Render(m.width))
	b.WriteString("\n\n")

	correct, total := m.session.Progress()
	status := fmt.Sprintf("Score %d   Correct %d/%d   Time %s",
		m.session.Score(), correct, total, m.session.TimeLeftString())
	b.WriteString(m.styles.Status.Render(status))
	b.WriteString("\n")

	if m.session.IsGameOver() {
		b.WriteString(m.styles.GameOver.Render("Time! Press enter to play again."))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Summary reports the finished run for the end-of-run printout.
func (m *SightModel) Summary(difficulty string) stats.Summary {
	correct, total := m.session.Progress()
	end := m.endedAt
	if end.IsZero() {
		end = time.Now()
	}
	return stats.Summary{
		Exercise:   m.title,
		Difficulty: difficulty,
		Score:      m.session.Score(),
		Correct:    correct,
		Total:      total,
		Duration:   end.Sub(m.startedAt),
	}
}
