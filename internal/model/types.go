// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Input    string
	TextFile string
	Library  string
	Repeats  int
	Shuffle  bool
	WidthPct float64
	LogPath  string
}

// WordCount pairs a word with its error count.
type WordCount struct {
	Word  string
	Count int
}

// SessionRecord captures a completed typing session.
type SessionRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Source     string
	TextLen    int
	Position   int
	Correct    int
	Total      int
	DurationMs int64
	Completed  bool
}
