// Package stats tracks keystroke correctness and per-word errors.
package stats

import (
	"sort"
	"time"

	"github.com/thavelick/just-type-it/internal/model"
)

// Tracker accumulates statistics over one typing session. The clock does
// not start until the first keystroke is recorded.
type Tracker struct {
	now func() time.Time

	startedAt time.Time
	started   bool

	correct int
	total   int

	counts map[string]int
	order  []string
}

// NewTracker returns a Tracker using the system clock.
func NewTracker() *Tracker {
	return NewTrackerWithClock(time.Now)
}

// NewTrackerWithClock returns a Tracker using the provided clock.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{now: now, counts: map[string]int{}}
}

// Start starts the session clock if it is not already running.
func (t *Tracker) Start() {
	if t.started {
		return
	}
	t.started = true
	t.startedAt = t.now()
}

// Started reports whether the session clock is running.
func (t *Tracker) Started() bool {
	return t.started
}

// StartedAt returns the time of the first keystroke, zero if none yet.
func (t *Tracker) StartedAt() time.Time {
	return t.startedAt
}

// RecordKeystroke counts one keystroke.
func (t *Tracker) RecordKeystroke(correct bool) {
	t.total++
	if correct {
		t.correct++
	}
}

// RecordMistypedWord increments the error count for a word.
func (t *Tracker) RecordMistypedWord(word string) {
	if _, ok := t.counts[word]; !ok {
		t.order = append(t.order, word)
	}
	t.counts[word]++
}

// Correct returns the number of correct keystrokes.
func (t *Tracker) Correct() int {
	return t.correct
}

// Total returns the number of keystrokes recorded.
func (t *Tracker) Total() int {
	return t.total
}

// Elapsed returns the time since the first keystroke, zero before it.
func (t *Tracker) Elapsed() time.Duration {
	if !t.started {
		return 0
	}
	return t.now().Sub(t.startedAt)
}

// WPM computes words per minute for the given typed character count,
// counting five characters per word. Zero before any time has elapsed.
func (t *Tracker) WPM(charsTyped int) float64 {
	minutes := t.Elapsed().Minutes()
	if minutes <= 0 {
		return 0
	}
	return (float64(charsTyped) / 5.0) / minutes
}

// Accuracy returns the correct-keystroke percentage. With no keystrokes
// recorded it is 100, a deliberate default rather than an error.
func (t *Tracker) Accuracy() float64 {
	if t.total == 0 {
		return 100.0
	}
	return float64(t.correct) / float64(t.total) * 100.0
}

// TopMistyped returns up to n words with the highest error counts,
// descending; ties keep first-seen order.
func (t *Tracker) TopMistyped(n int) []model.WordCount {
	out := make([]model.WordCount, 0, len(t.order))
	for _, word := range t.order {
		out = append(out, model.WordCount{Word: word, Count: t.counts[word]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
