package report

import (
	"strings"
	"testing"
	"time"

	"github.com/thavelick/just-type-it/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	rec := model.SessionRecord{
		Position:   100,
		Correct:    90,
		Total:      100,
		DurationMs: 60000,
	}
	wpm, acc := SessionMetrics(rec)
	if wpm != 20.0 {
		t.Fatalf("expected 20.0 WPM, got %v", wpm)
	}
	if acc != 90.0 {
		t.Fatalf("expected 90.0%% accuracy, got %v", acc)
	}
}

func TestSessionMetricsZeroes(t *testing.T) {
	wpm, acc := SessionMetrics(model.SessionRecord{})
	if wpm != 0 {
		t.Fatalf("expected 0 WPM for zero duration, got %v", wpm)
	}
	if acc != 100 {
		t.Fatalf("expected 100%% accuracy with no keystrokes, got %v", acc)
	}
}

func TestRenderEmpty(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, nil, nil, 80); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(b.String(), "No sessions recorded yet.") {
		t.Fatalf("unexpected output: %q", b.String())
	}
}

func TestRenderReport(t *testing.T) {
	ended := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []model.SessionRecord{
		{
			EndedAt:    ended,
			Source:     "A Book",
			Position:   100,
			Correct:    100,
			Total:      100,
			DurationMs: 60000,
			Completed:  true,
		},
		{
			EndedAt:    ended.Add(time.Hour),
			Position:   50,
			Correct:    45,
			Total:      50,
			DurationMs: 30000,
		},
	}
	topWords := []model.WordCount{
		{Word: "quick", Count: 4},
		{Word: "fox", Count: 2},
	}

	var b strings.Builder
	if err := Render(&b, sessions, topWords, 80); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"Sessions: 2",
		"Best WPM: 20.00",
		"A Book",
		"WPM trend:",
		"Top mistyped words:",
		"1.  quick",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Sessions without a source render a dash.
	if !strings.Contains(out, "-") {
		t.Fatalf("missing placeholder source:\n%s", out)
	}
}

func TestRenderSingleSessionSkipsTrend(t *testing.T) {
	sessions := []model.SessionRecord{
		{EndedAt: time.Now(), Position: 10, Correct: 10, Total: 10, DurationMs: 10000},
	}
	var b strings.Builder
	if err := Render(&b, sessions, nil, 80); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(b.String(), "WPM trend:") {
		t.Fatalf("trend should be omitted for one session:\n%s", b.String())
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Name", "Count"},
		[][]string{{"alpha", "2"}, {"b", "10"}},
		map[int]bool{1: true},
	)
	want := []string{
		"Name   Count",
		"alpha      2",
		"b         10",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable(nil, [][]string{{"漢字", "x"}, {"ab", "y"}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	// Both value columns start at the same screen column.
	if !strings.HasSuffix(lines[0], "x") || !strings.HasSuffix(lines[1], "  y") {
		t.Fatalf("unexpected padding: %q / %q", lines[0], lines[1])
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10}, 80)
	if len(out) != 3 {
		t.Fatalf("expected 3 cells, got %q", out)
	}
	if out[0] != ' ' || out[2] != '@' {
		t.Fatalf("expected extremes at ends, got %q", out)
	}
}

func TestSparklineFlat(t *testing.T) {
	out := Sparkline([]float64{7, 7, 7, 7}, 80)
	if len(out) != 4 {
		t.Fatalf("expected 4 cells, got %q", out)
	}
	for i := 1; i < len(out); i++ {
		if out[i] != out[0] {
			t.Fatalf("flat input must render uniformly, got %q", out)
		}
	}
}

func TestSparklineResamples(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	out := Sparkline(values, 10)
	if len(out) != 10 {
		t.Fatalf("expected 10 cells, got %d (%q)", len(out), out)
	}
	if out := Sparkline(nil, 10); out != "" {
		t.Fatalf("expected empty sparkline, got %q", out)
	}
}
