package report

import (
	"fmt"
	"io"

	"github.com/thavelick/just-type-it/internal/model"
)

// SessionMetrics computes WPM and accuracy for a stored session.
func SessionMetrics(rec model.SessionRecord) (wpm, accuracy float64) {
	minutes := float64(rec.DurationMs) / 60000.0
	if minutes > 0 {
		wpm = (float64(rec.Position) / 5.0) / minutes
	}
	if rec.Total > 0 {
		accuracy = float64(rec.Correct) / float64(rec.Total) * 100
	} else {
		accuracy = 100
	}
	return wpm, accuracy
}

// Render prints a session-history report: summary, per-session table,
// a WPM sparkline, and all-time top mistyped words.
func Render(w io.Writer, sessions []model.SessionRecord, topWords []model.WordCount, termWidth int) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	var totalWPM, totalAcc, bestWPM float64
	wpms := make([]float64, len(sessions))
	for i, rec := range sessions {
		wpm, acc := SessionMetrics(rec)
		wpms[i] = wpm
		totalWPM += wpm
		totalAcc += acc
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(sessions))
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n\n", totalAcc/count); err != nil {
		return err
	}

	headers := []string{"When", "Source", "WPM", "Accuracy", "Keystrokes", "Done"}
	rows := make([][]string, 0, len(sessions))
	for _, rec := range sessions {
		wpm, acc := SessionMetrics(rec)
		source := rec.Source
		if source == "" {
			source = "-"
		}
		done := "no"
		if rec.Completed {
			done = "yes"
		}
		rows = append(rows, []string{
			rec.EndedAt.Local().Format("2006-01-02 15:04"),
			source,
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc),
			fmt.Sprintf("%d", rec.Total),
			done,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(wpms) > 1 {
		if _, err := fmt.Fprintf(w, "\nWPM trend: %s\n", Sparkline(wpms, termWidth-11)); err != nil {
			return err
		}
	}

	if len(topWords) > 0 {
		if _, err := fmt.Fprintln(w, "\nTop mistyped words:"); err != nil {
			return err
		}
		wordRows := make([][]string, 0, len(topWords))
		for i, wc := range topWords {
			wordRows = append(wordRows, []string{
				fmt.Sprintf("%d.", i+1),
				wc.Word,
				fmt.Sprintf("%d", wc.Count),
			})
		}
		for _, line := range formatTable(nil, wordRows, map[int]bool{2: true}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
