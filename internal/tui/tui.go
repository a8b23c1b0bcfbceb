// Package tui provides the Bubble Tea exercise interfaces.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/triad/internal/staff"
)

// refreshInterval drives periodic redraws for clocks and count-ins.
const refreshInterval = 250 * time.Millisecond

// tickMsg is the periodic redraw message.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Styles bundles the lipgloss styles shared by the exercise views.
type Styles struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Option   lipgloss.Style
	Selected lipgloss.Style
	GameOver lipgloss.Style
	Staff    staff.Theme
}

// DarkStyles is the default style set.
func DarkStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		GameOver: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
		Staff:    staff.DarkTheme(),
	}
}

// LightStyles adapts the views to light terminals.
func LightStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
		Option:   lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#9A6A00")),
		GameOver: lipgloss.NewStyle().Foreground(lipgloss.Color("#B00020")).Bold(true),
		Staff:    staff.LightTheme(),
	}
}

// StylesForTheme resolves a theme name, defaulting to dark.
func StylesForTheme(theme string) Styles {
	if theme == "light" {
		return LightStyles()
	}
	return DarkStyles()
}

// commonKeys are the bindings every exercise shares.
type commonKeys struct {
	Quit    key.Binding
	Restart key.Binding
}

func newCommonKeys() commonKeys {
	return commonKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "restart"),
		),
	}
}

func newHelp() help.Model {
	return help.New()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
