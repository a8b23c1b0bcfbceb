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
)

type rhythmKeys struct {
	commonKeys
	Tap key.Binding
}

func newRhythmKeys() rhythmKeys {
	return rhythmKeys{
		commonKeys: newCommonKeys(),
		Tap: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "tap"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k rhythmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Tap, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k rhythmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// RhythmModel implements the Bubble Tea rhythm-trainer UI.
type RhythmModel struct {
	session   *exercise.RhythmTrainer
	board     *staff.Staff
	styles    Styles
	keys      rhythmKeys
	help      help.Model
	title     string
	width     int
	height    int
	startedAt time.Time
	endedAt   time.Time
}

// NewRhythmModel wires a rhythm-trainer session to its view.
func NewRhythmModel(session *exercise.RhythmTrainer, board *staff.Staff, styles Styles, title string) *RhythmModel {
	return &RhythmModel{
		session: session,
		board:   board,
		styles:  styles,
		keys:    newRhythmKeys(),
		help:    newHelp(),
		title:   title,
	}
}

// Init implements tea.Model.
func (m *RhythmModel) Init() tea.Cmd {
	m.startedAt = time.Now()
	if err := m.session.StartGameLoop(); err != nil {
		logErrf("failed to start rhythm trainer: %v\n", err)
		return tea.Quit
	}
	return tick()
}

// Update implements tea.Model.
func (m *RhythmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Tap):
			m.session.HandleTap()
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *RhythmModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.board.Render(m.width))
	b.WriteString("\n\n")

	switch {
	case m.session.CountIn() > 0:
		b.WriteString(m.styles.Selected.Render(fmt.Sprintf("Get ready: %d", m.session.CountIn())))
	case m.session.IsListening():
		b.WriteString(m.styles.Selected.Render("Tap!"))
	default:
		b.WriteString(m.styles.Status.Render("Listen..."))
	}
	b.WriteString("\n\n")

	correct, rounds := m.session.Progress()
	status := fmt.Sprintf("Score %d   Correct %d/%d   Tries %d",
		m.session.Score(), correct, rounds, m.session.TriesLeft())
	b.WriteString(m.styles.Status.Render(status))
	b.WriteString("\n")

	if m.session.IsGameOver() {
		b.WriteString(m.styles.GameOver.Render("Game over! Press enter to play again."))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Summary reports the finished run for the end-of-run printout.
func (m *RhythmModel) Summary(difficulty string) stats.Summary {
	correct, rounds := m.session.Progress()
	end := m.endedAt
	if end.IsZero() {
		end = time.Now()
	}
	return stats.Summary{
		Exercise:   m.title,
		Difficulty: difficulty,
		Score:      m.session.Score(),
		Correct:    correct,
		Total:      rounds,
		Duration:   end.Sub(m.startedAt),
	}
}
