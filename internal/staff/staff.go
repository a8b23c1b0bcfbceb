// Package staff renders notes and rhythm bars as a text staff for the TUI.
// It implements the drawing surfaces the exercise sessions draw on and is
// safe for calls from session goroutines.
package staff

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/triad/internal/rhythm"
	"github.com/verte-zerg/triad/internal/theory"
)

// Clef selects which staff lines are drawn.
type Clef string

// Supported clefs.
const (
	ClefTreble Clef = "treble"
	ClefBass   Clef = "bass"
	ClefGrand  Clef = "grand"
)

var tokenRe = regexp.MustCompile(`^([A-G])([b#]?)(-?\d+)(w|h|q|e|s)$`)

// ErrInvalidToken reports a staff token that does not parse.
var ErrInvalidToken = fmt.Errorf("invalid staff token")

// ParseToken splits a staff token like "C#4q" into its note and duration.
func ParseToken(token string) (theory.Note, string, error) {
	m := tokenRe.FindStringSubmatch(token)
	if m == nil {
		return theory.Note{}, "", fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	octave := 0
	if _, err := fmt.Sscanf(m[3], "%d", &octave); err != nil {
		return theory.Note{}, "", fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	return theory.NewNote(m[1], theory.Accidental(m[2]), octave), m[4], nil
}

// diatonicStep maps a note onto the staff's vertical grid: one step per
// letter, seven per octave. Accidentals do not move a note vertically.
func diatonicStep(n theory.Note) int {
	letters := map[string]int{"C": 0, "D": 1, "E": 2, "F": 3, "G": 4, "A": 5, "B": 6}
	return n.Octave*7 + letters[n.Name]
}

// Staff grids per clef, as diatonic steps from the top drawn row down to
// the bottom. Treble spans A5 down to C4, bass C4 down to E2, grand the
// union. Line rows carry the five staff lines plus middle-C style ledger
// rows where notes can land.
type clefGrid struct {
	top, bottom int
	lines       map[int]bool
}

var clefGrids = map[Clef]clefGrid{
	ClefTreble: {
		top: 40, bottom: 28,
		lines: map[int]bool{30: true, 32: true, 34: true, 36: true, 38: true},
	},
	ClefBass: {
		top: 28, bottom: 16,
		lines: map[int]bool{18: true, 20: true, 22: true, 24: true, 26: true},
	},
	ClefGrand: {
		top: 40, bottom: 16,
		lines: map[int]bool{
			18: true, 20: true, 22: true, 24: true, 26: true,
			30: true, 32: true, 34: true, 36: true, 38: true,
		},
	},
}

// Theme carries the lipgloss styles the staff draws with.
type Theme struct {
	Line    lipgloss.Style
	Note    lipgloss.Style
	Current lipgloss.Style
	Done    lipgloss.Style
}

// DarkTheme is the default staff theme.
func DarkTheme() Theme {
	return Theme{
		Line:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Note:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		Current: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	}
}

// LightTheme adapts the staff to light terminals.
func LightTheme() Theme {
	return Theme{
		Line:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
		Note:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")),
		Current: lipgloss.NewStyle().Foreground(lipgloss.Color("#9A6A00")),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")),
	}
}

const noteColumnWidth = 4

// Staff is a text staff. One Staff serves one session; the session draws
// through the surface methods and the TUI reads back through Render.
type Staff struct {
	mu    sync.Mutex
	grid  clefGrid
	theme Theme

	queued []string
	index  int

	chord     []string
	justified bool

	groups []rhythm.Group
}

// New builds a staff for a clef. Unknown clefs fall back to treble.
func New(clef Clef, theme Theme) *Staff {
	grid, ok := clefGrids[clef]
	if !ok {
		grid = clefGrids[ClefTreble]
	}
	return &Staff{grid: grid, theme: theme}
}

// QueueNotes replaces the scrolling note run.
func (s *Staff) QueueNotes(tokens []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = tokens
	s.index = 0
}

// AdvanceNotes shifts the scrolling window past the current note.
func (s *Staff) AdvanceNotes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < len(s.queued) {
		s.index++
	}
}

// DrawChord replaces the drawn chord.
func (s *Staff) DrawChord(tokens []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chord = tokens
	s.justified = false
}

// JustifyNotes spreads chord notes into a sequence instead of a stack.
func (s *Staff) JustifyNotes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.justified = true
}

// DrawRhythm replaces the rhythm bar.
func (s *Staff) DrawRhythm(groups []rhythm.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
}

// ClearAll wipes everything drawn.
func (s *Staff) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = nil
	s.index = 0
	s.chord = nil
	s.justified = false
	s.groups = nil
}

// Render draws the staff no wider than width terminal cells. Rhythm bars
// take precedence over notes when both are set.
func (s *Staff) Render(width int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.groups != nil {
		return s.renderRhythmLocked(width)
	}
	if s.chord != nil && !s.justified {
		return s.renderColumnsLocked([][]string{s.chord}, -1, width)
	}
	if s.chord != nil {
		columns := make([][]string, len(s.chord))
		for i, tok := range s.chord {
			columns[i] = []string{tok}
		}
		return s.renderColumnsLocked(columns, -1, width)
	}
	visible := s.queued[s.index:]
	columns := make([][]string, len(visible))
	for i, tok := range visible {
		columns[i] = []string{tok}
	}
	current := -1
	if len(visible) > 0 {
		current = 0
	}
	return s.renderColumnsLocked(columns, current, width)
}

// renderColumnsLocked draws note columns left to right on the clef grid.
// Each column holds one or more tokens stacked vertically; the column at
// currentCol is highlighted.
func (s *Staff) renderColumnsLocked(columns [][]string, currentCol, width int) string {
	maxCols := len(columns)
	if width > 0 {
		fit := (width - 2) / noteColumnWidth
		if fit < 1 {
			fit = 1
		}
		if maxCols > fit {
			maxCols = fit
		}
	}

	rows := make([]strings.Builder, s.grid.top-s.grid.bottom+1)
	if maxCols == 0 {
		// Nothing left to draw; keep the bare staff visible.
		for row := range rows {
			rows[row].WriteString(s.renderCell(row, "", s.theme.Note))
		}
	}
	for col := 0; col < maxCols; col++ {
		style := s.theme.Note
		if col == currentCol {
			style = s.theme.Current
		}
		marks := map[int]string{}
		for _, tok := range columns[col] {
			note, _, err := ParseToken(tok)
			if err != nil {
				continue
			}
			step := diatonicStep(note)
			if step > s.grid.top || step < s.grid.bottom {
				continue
			}
			glyph := "o"
			if note.Accidental != theory.Natural {
				glyph = string(note.Accidental) + "o"
			}
			marks[s.grid.top-step] = glyph
		}
		for row := range rows {
			rows[row].WriteString(s.renderCell(row, marks[row], style))
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// renderCell pads one column cell to the column width, drawing a staff
// line, a space, or a note glyph.
func (s *Staff) renderCell(row int, glyph string, noteStyle lipgloss.Style) string {
	step := s.grid.top - row
	filler := " "
	if s.grid.lines[step] {
		filler = "-"
	}
	if glyph == "" {
		return s.theme.Line.Render(strings.Repeat(filler, noteColumnWidth))
	}
	pad := noteColumnWidth - runewidth.StringWidth(glyph)
	left := pad / 2
	right := pad - left
	return s.theme.Line.Render(strings.Repeat(filler, left)) +
		noteStyle.Render(glyph) +
		s.theme.Line.Render(strings.Repeat(filler, right))
}

// renderRhythmLocked draws the rhythm bar as one line of duration glyphs.
// Beamed runs join with '=', rests go in parentheses.
func (s *Staff) renderRhythmLocked(width int) string {
	parts := make([]string, 0, len(s.groups))
	for _, g := range s.groups {
		switch g.Kind {
		case rhythm.KindBeam:
			parts = append(parts, s.theme.Note.Render(strings.Join(g.Tokens, "=")))
		case rhythm.KindRest:
			for _, tok := range g.Tokens {
				parts = append(parts, s.theme.Done.Render("("+tok+")"))
			}
		default:
			for _, tok := range g.Tokens {
				parts = append(parts, s.theme.Note.Render(tok))
			}
		}
	}
	line := strings.Join(parts, "  ")
	bar := s.theme.Line.Render("|")
	out := bar + " " + line + " " + bar
	if width > 0 && lipgloss.Width(out) > width {
		return line
	}
	return out
}
