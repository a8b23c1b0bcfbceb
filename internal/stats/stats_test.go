package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	acc, perMin := Metrics(18, 20, 60*time.Second)
	if acc != 0.9 {
		t.Fatalf("expected accuracy 0.9, got %f", acc)
	}
	if perMin != 18 {
		t.Fatalf("expected 18 answers/min, got %f", perMin)
	}

	acc, perMin = Metrics(0, 0, 0)
	if acc != 0 || perMin != 0 {
		t.Fatalf("expected zeros for an empty session, got %f %f", acc, perMin)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, Summary{
		Exercise:   "Sight Reading",
		Difficulty: "easy",
		Score:      12,
		Correct:    12,
		Total:      15,
		Duration:   65 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sight Reading (easy)", "12/15", "80.0%", "1:05"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Summary{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No answers recorded.") {
		t.Fatalf("expected empty-session message, got %q", buf.String())
	}
}
