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

type intervalKeys struct {
	commonKeys
	Options key.Binding
	Replay  key.Binding
	Skip    key.Binding
}

func newIntervalKeys() intervalKeys {
	return intervalKeys{
		commonKeys: newCommonKeys(),
		Options: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "answer"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k intervalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Options, k.Replay, k.Skip, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k intervalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// IntervalModel implements the Bubble Tea interval-drill UI.
type IntervalModel struct {
	session   *exercise.IntervalDrill
	board     *staff.Staff
	styles    Styles
	keys      intervalKeys
	help      help.Model
	title     string
	width     int
	height    int
	startedAt time.Time
	endedAt   time.Time
}

// NewIntervalModel wires an interval-drill session to its view.
func NewIntervalModel(session *exercise.IntervalDrill, board *staff.Staff, styles Styles, title string) *IntervalModel {
	return &IntervalModel{
		session: session,
		board:   board,
		styles:  styles,
		keys:    newIntervalKeys(),
		help:    newHelp(),
		title:   title,
	}
}

// Init implements tea.Model.
func (m *IntervalModel) Init() tea.Cmd {
	m.startedAt = time.Now()
	if err := m.session.StartGameLoop(); err != nil {
		logErrf("failed to start interval drill: %v\n", err)
		return tea.Quit
	}
	return tick()
}

// Update implements tea.Model.
func (m *IntervalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Replay):
			m.session.Replay()
			return m, nil
		case key.Matches(msg, m.keys.Skip):
			m.session.Skip()
			return m, nil
		case key.Matches(msg, m.keys.Options):
			m.handleOption(msg.String())
			return m, nil
		}
	}
	return m, nil
}

func (m *IntervalModel) handleOption(keyStr string) {
	idx := int(keyStr[0] - '1')
	options := m.session.Options()
	if idx < 0 || idx >= len(options) {
		return
	}
	m.session.HandleAnswer(options[idx])
}

// View implements tea.Model.
func (m *IntervalModel) View() string {
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
func (m *IntervalModel) Summary(difficulty string) stats.Summary {
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
