// Package stats computes and prints the end-of-run session summary.
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

// Summary aggregates one finished session. Sessions are not persisted;
// the summary prints once when the TUI exits.
type Summary struct {
	Exercise   string
	Difficulty string
	Score      int
	Correct    int
	Total      int
	Duration   time.Duration
}

// Metrics computes accuracy and answers per minute for a session.
func Metrics(correct, total int, duration time.Duration) (accuracy, perMinute float64) {
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}
	minutes := duration.Minutes()
	if minutes > 0 {
		perMinute = float64(correct) / minutes
	}
	return accuracy, perMinute
}

// RenderSummary prints the session summary table.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Total == 0 {
		_, err := fmt.Fprintln(w, "No answers recorded.")
		return err
	}
	accuracy, perMinute := Metrics(s.Correct, s.Total, s.Duration)

	if _, err := fmt.Fprintf(w, "%s (%s)\n", s.Exercise, s.Difficulty); err != nil {
		return err
	}
	rows := [][]string{
		{"Score", fmt.Sprintf("%d", s.Score)},
		{"Correct", fmt.Sprintf("%d/%d", s.Correct, s.Total)},
		{"Accuracy", fmt.Sprintf("%.1f%%", accuracy*100)},
		{"Answers/min", fmt.Sprintf("%.1f", perMinute)},
		{"Duration", formatDuration(s.Duration)},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := utf8.RuneCountInString(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}
