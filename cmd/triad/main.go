// Package main provides the CLI entrypoint for triad.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/triad/internal/audio"
	"github.com/verte-zerg/triad/internal/catalog"
	"github.com/verte-zerg/triad/internal/config"
	"github.com/verte-zerg/triad/internal/exercise"
	"github.com/verte-zerg/triad/internal/midiin"
	"github.com/verte-zerg/triad/internal/model"
	"github.com/verte-zerg/triad/internal/staff"
	"github.com/verte-zerg/triad/internal/stats"
	"github.com/verte-zerg/triad/internal/tui"
)

const (
	defaultDifficulty = "easy"
	defaultClef       = "treble"
	defaultTheme      = "dark"
	defaultVolume     = 100
)

var (
	flagDifficulty string
	flagClef       string
	flagMIDIPort   string
	flagTheme      string
	flagVolume     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "triad",
		Short:         "TUI music trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	for _, slug := range []string{"sight-reading", "chord-guesser", "interval-drill", "rhythm"} {
		rootCmd.AddCommand(newExerciseCmd(slug))
	}
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newExerciseCmd(slug string) *cobra.Command {
	entry, err := catalog.BySlug(slug)
	if err != nil {
		panic(err)
	}
	cmd := &cobra.Command{
		Use:   slug,
		Short: entry.Title,
		Long:  entry.Description + "\n\n" + tutorialText(entry),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExerciseCmd(cmd, slug)
		},
	}
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", defaultDifficulty, "difficulty preset (easy, medium, hard)")
	cmd.Flags().StringVar(&flagMIDIPort, "midi", "", "MIDI input port name (substring match)")
	cmd.Flags().StringVar(&flagTheme, "theme", defaultTheme, "color theme (dark, light)")
	cmd.Flags().IntVar(&flagVolume, "volume", defaultVolume, "sound effect volume (0-100)")
	if slug == "sight-reading" {
		cmd.Flags().StringVar(&flagClef, "clef", defaultClef, "staff clef (treble, bass, grand)")
	}
	return cmd
}

func runExerciseCmd(cmd *cobra.Command, slug string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	entry, err := catalog.BySlug(slug)
	if err != nil {
		return err
	}

	deps := exercise.Deps{
		SFX: audio.NewBellSFX(os.Stderr, cfg.Volume),
	}
	styles := tui.StylesForTheme(cfg.Theme)

	var (
		program    *tea.Program
		summarize  func(string) stats.Summary
		handleMIDI func(midiin.Message)
	)
	switch slug {
	case "sight-reading":
		session := exercise.NewSightReading(cfg.Difficulty, cfg.Clef, deps)
		defer session.Destroy()
		board := staff.New(staff.Clef(cfg.Clef), styles.Staff)
		session.SetRenderer(board)
		m := tui.NewSightModel(session, board, styles, entry.Title)
		program = tea.NewProgram(m, tea.WithAltScreen())
		summarize = m.Summary
		handleMIDI = session.HandleMIDI
	case "chord-guesser":
		session := exercise.NewChordGuesser(cfg.Difficulty, deps)
		defer session.Destroy()
		board := staff.New(staff.ClefTreble, styles.Staff)
		session.SetRenderer(board)
		m := tui.NewChordModel(session, board, styles, entry.Title)
		program = tea.NewProgram(m, tea.WithAltScreen())
		summarize = m.Summary
		handleMIDI = session.HandleMIDI
	case "interval-drill":
		session := exercise.NewIntervalDrill(cfg.Difficulty, deps)
		defer session.Destroy()
		board := staff.New(staff.ClefTreble, styles.Staff)
		session.SetRenderer(board)
		m := tui.NewIntervalModel(session, board, styles, entry.Title)
		program = tea.NewProgram(m, tea.WithAltScreen())
		summarize = m.Summary
	case "rhythm":
		session := exercise.NewRhythmTrainer(cfg.Difficulty, deps)
		defer session.Destroy()
		board := staff.New(staff.ClefTreble, styles.Staff)
		session.SetRenderer(board)
		m := tui.NewRhythmModel(session, board, styles, entry.Title)
		program = tea.NewProgram(m, tea.WithAltScreen())
		summarize = m.Summary
	default:
		return fmt.Errorf("unknown exercise %q", slug)
	}

	if cfg.MIDIPort != "" && handleMIDI != nil {
		svc, err := midiin.Open(cfg.MIDIPort)
		if err != nil {
			logErrf("MIDI input unavailable: %v\n", err)
		} else {
			svc.Subscribe(handleMIDI)
			defer svc.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if err := stats.RenderSummary(os.Stdout, summarize(cfg.Difficulty)); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}
	return nil
}

// resolveConfig merges the config file under any explicitly set flags and
// validates the result. Preference flags set on the command line are
// written back so they stick for the next run.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	path := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "difficulty", &flagDifficulty, fileCfg.Exercise.Difficulty)
	applyStringConfig(cmd, "clef", &flagClef, fileCfg.Exercise.Clef)
	applyStringConfig(cmd, "midi", &flagMIDIPort, fileCfg.Exercise.MIDIPort)
	applyStringConfig(cmd, "theme", &flagTheme, fileCfg.UI.Theme)
	applyIntConfig(cmd, "volume", &flagVolume, fileCfg.UI.Volume)

	cfg := model.Config{
		Difficulty: flagDifficulty,
		Clef:       flagClef,
		MIDIPort:   flagMIDIPort,
		Theme:      flagTheme,
		Volume:     flagVolume,
	}
	if cfg.Clef == "" {
		cfg.Clef = defaultClef
	}
	if cfg.Volume < 0 || cfg.Volume > 100 {
		return model.Config{}, fmt.Errorf("--volume must be between 0 and 100")
	}
	if cfg.Theme != "dark" && cfg.Theme != "light" {
		return model.Config{}, fmt.Errorf("--theme must be dark or light")
	}

	if err := persistPreferences(cmd, path, fileCfg, cfg); err != nil {
		logErrf("failed to save preferences: %v\n", err)
	}
	return cfg, nil
}

// persistPreferences writes theme and volume back to the config file when
// they were changed on the command line.
func persistPreferences(cmd *cobra.Command, path string, fileCfg config.FileConfig, cfg model.Config) error {
	changed := false
	if cmd.Flags().Changed("theme") {
		fileCfg.UI.Theme = &cfg.Theme
		changed = true
	}
	if cmd.Flags().Changed("volume") {
		fileCfg.UI.Volume = &cfg.Volume
		changed = true
	}
	if !changed {
		return nil
	}
	return config.SaveConfig(path, fileCfg)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	nameWidth := 0
	for _, e := range catalog.Entries {
		if l := runewidth.StringWidth(e.Slug); l > nameWidth {
			nameWidth = l
		}
	}
	for _, e := range catalog.Entries {
		desc := e.Description
		avail := width - nameWidth - 3
		if avail > 0 {
			desc = runewidth.Truncate(desc, avail, "…")
		}
		line := fmt.Sprintf("%s   %s", runewidth.FillRight(e.Slug, nameWidth), desc)
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func tutorialText(entry catalog.Entry) string {
	var b strings.Builder
	for _, section := range entry.Tutorial {
		b.WriteString(section.Header)
		b.WriteString(":\n")
		for _, line := range section.Text {
			b.WriteString("  - ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# triad configuration
# Uncomment a value to enable it. CLI flags override config values.

[exercise]
# difficulty = %q     # Difficulty preset (easy, medium, hard)
# clef = %q         # Staff clef for sight reading (treble, bass, grand)
# midi-port = ""          # MIDI input port name (substring match)

[ui]
# theme = %q           # Color theme (dark, light)
# volume = %d            # Sound effect volume (0-100)
`,
		defaultDifficulty,
		defaultClef,
		defaultTheme,
		defaultVolume,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
