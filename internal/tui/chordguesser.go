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

type chordKeys struct {
	commonKeys
	Options key.Binding
}

func newChordKeys() chordKeys {
	return chordKeys{
		commonKeys: newCommonKeys(),
		Options: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "answer"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k chordKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Options, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k chordKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ChordModel implements the Bubble Tea chord-guesser UI.
type ChordModel struct {
	session   *exercise.ChordGuesser
	board     *staff.Staff
	styles    Styles
	keys      chordKeys
	help      help.Model
	title     string
	width     int
	height    int
	startedAt time.Time
	endedAt   time.Time
}

// NewChordModel wires a chord-guesser session to its view.
func NewChordModel(session *exercise.ChordGuesser, board *staff.Staff, styles Styles, title string) *ChordModel {
	return &ChordModel{
		session: session,
		board:   board,
		styles:  styles,
		keys:    newChordKeys(),
		help:    newHelp(),
		title:   title,
	}
}

// Init implements tea.Model.
func (m *ChordModel) Init() tea.Cmd {
	m.startedAt = time.Now()
	m.session.Start()
	return tick()
}

// Update implements tea.Model.
func (m *ChordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Options):
			m.handleOption(msg.String())
			return m, nil
		}
	}
	return m, nil
}

func (m *ChordModel) handleOption(keyStr string) {
	idx := int(keyStr[0] - '1')
	options := m.session.Options()
	if idx < 0 || idx >= len(options) {
		return
	}
	m.session.HandleAnswer(options[idx])
}

// View implements tea.Model.
func (m *ChordModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.board.Render(m.width))
	b.WriteString("\n\n")

	for i, option := range m.session.Options() {
		b.WriteString(m.styles.Option.Render(fmt.Sprintf("%d. %s", i+1, option)))
		b.WriteString("  ")
	}
	b.WriteString("\n\n")

	correct, rounds := m.session.Progress()
	timeLeft := "-"
	if m.session.IsListening() {
		timeLeft = fmt.Sprintf("%ds", m.session.TimeLeft())
	}
	status := fmt.Sprintf("Score %d   Correct %d/%d   Tries %d   Time %s",
		m.session.Score(), correct, rounds, m.session.TriesLeft(), timeLeft)
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
func (m *ChordModel) Summary(difficulty string) stats.Summary {
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
