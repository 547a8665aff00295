// Package session implements the typing state machine. A session
// consumes one key at a time against a fixed practice string, blocking
// forward progress while mistakes are outstanding in the error buffer.
package session

import (
	"strings"

	"github.com/thavelick/just-type-it/internal/stats"
)

// EnterMarker is the visible stand-in appended to the error buffer when
// Enter is pressed incorrectly.
const EnterMarker = '↵'

// Session holds the mutable state of one typing run. The cursor only
// advances while the error buffer is empty and the typed character
// matches the expected one.
type Session struct {
	target  []rune
	pos     int
	errBuf  []rune
	wordErr bool

	tracker *stats.Tracker
	obs     Observer

	done      bool
	completed bool
}

// New starts a session over text. A nil observer is replaced with a no-op.
func New(text string, tracker *stats.Tracker, obs Observer) *Session {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Session{
		target:  []rune(text),
		tracker: tracker,
		obs:     obs,
	}
}

// Apply feeds one key into the state machine. Keys after the session has
// ended are ignored.
func (s *Session) Apply(key Key) {
	if s.done {
		return
	}
	// Any keystroke, including a cancel, starts the clock.
	s.tracker.Start()

	switch key.Kind {
	case KindCancel:
		s.end(false)
	case KindBackspace:
		s.applyBackspace()
	case KindEnter:
		s.applyExpecting(key, '\n', EnterMarker)
	case KindRune:
		s.applyExpecting(key, key.Rune, key.Rune)
	}
}

func (s *Session) applyBackspace() {
	if len(s.errBuf) > 0 {
		s.errBuf = s.errBuf[:len(s.errBuf)-1]
		return
	}
	// Retreating over a correct character forfeits it; retyping is a
	// fresh correctness check.
	if s.pos > 0 {
		s.pos--
	}
}

// applyExpecting handles Enter and printable runes, which share one
// shape: blocked by a non-empty buffer, advancing on a match, otherwise
// appending a marker to the buffer.
func (s *Session) applyExpecting(key Key, typed, marker rune) {
	if s.pos >= len(s.target) {
		return
	}
	if len(s.errBuf) > 0 {
		s.recordKeystroke(key, false)
		s.errBuf = append(s.errBuf, marker)
		s.wordErr = true
		return
	}
	expected := s.target[s.pos]
	if typed != expected {
		s.recordKeystroke(key, false)
		s.errBuf = append(s.errBuf, marker)
		s.wordErr = true
		return
	}
	s.recordKeystroke(key, true)
	if (expected == ' ' || expected == '\n') && s.wordErr && s.pos > 0 {
		s.commitMistypedWord(s.pos - 1)
		s.wordErr = false
	}
	s.pos++
	if s.pos == len(s.target) {
		s.end(true)
	}
}

func (s *Session) recordKeystroke(key Key, correct bool) {
	s.tracker.RecordKeystroke(correct)
	s.obs.Keystroke(key, correct, s.pos)
}

// end finishes the session. A word still flagged as errored is flushed
// so the last word of a text is never dropped from the stats.
func (s *Session) end(completed bool) {
	if s.wordErr && s.pos > 0 {
		s.commitMistypedWord(s.pos - 1)
		s.wordErr = false
	}
	s.done = true
	s.completed = completed
	s.obs.SessionEnded(completed, s.pos)
}

func (s *Session) commitMistypedWord(at int) {
	word, _ := s.wordAt(at)
	if strings.TrimSpace(word) == "" {
		return
	}
	s.tracker.RecordMistypedWord(word)
	s.obs.WordMistyped(word)
}

// wordAt returns the word containing index at and its start offset,
// delimited by the nearest space/newline or text boundary on each side.
func (s *Session) wordAt(at int) (string, int) {
	start := at
	for start > 0 && !isBoundary(s.target[start-1]) {
		start--
	}
	end := at
	for end < len(s.target) && !isBoundary(s.target[end]) {
		end++
	}
	return string(s.target[start:end]), start
}

func isBoundary(r rune) bool {
	return r == ' ' || r == '\n'
}

// Position returns the cursor index into the practice string.
func (s *Session) Position() int {
	return s.pos
}

// ErrorBuffer returns the outstanding mistyped characters.
func (s *Session) ErrorBuffer() string {
	return string(s.errBuf)
}

// HasError reports whether mistakes are blocking advancement.
func (s *Session) HasError() bool {
	return len(s.errBuf) > 0
}

// Len returns the practice string length in runes.
func (s *Session) Len() int {
	return len(s.target)
}

// Done reports whether the session has ended.
func (s *Session) Done() bool {
	return s.done
}

// Completed reports whether the whole practice string was typed.
func (s *Session) Completed() bool {
	return s.completed
}

// CurrentWord returns the word under the cursor and its start offset.
func (s *Session) CurrentWord() (string, int) {
	return s.wordAt(s.pos)
}
