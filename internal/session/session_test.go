package session

import (
	"testing"

	"github.com/thavelick/just-type-it/internal/stats"
)

func newTestSession(text string) (*Session, *stats.Tracker) {
	tracker := stats.NewTracker()
	return New(text, tracker, nil), tracker
}

func typeString(s *Session, input string) {
	for _, r := range input {
		s.Apply(Rune(r))
	}
}

func TestCleanRun(t *testing.T) {
	s, tracker := newTestSession("cat")
	typeString(s, "cat")

	if tracker.Correct() != 3 || tracker.Total() != 3 {
		t.Fatalf("expected 3/3 keystrokes, got %d/%d", tracker.Correct(), tracker.Total())
	}
	if s.Position() != 3 {
		t.Fatalf("expected position 3, got %d", s.Position())
	}
	if !s.Done() || !s.Completed() {
		t.Fatalf("expected completed session")
	}
	if got := tracker.TopMistyped(10); len(got) != 0 {
		t.Fatalf("expected no mistyped words, got %v", got)
	}
}

func TestErrorCorrectedAndFlushed(t *testing.T) {
	s, tracker := newTestSession("cat")
	s.Apply(Rune('c'))
	s.Apply(Rune('x'))
	s.Apply(Backspace)
	s.Apply(Rune('a'))
	s.Apply(Rune('t'))

	if tracker.Correct() != 3 {
		t.Fatalf("expected 3 correct keystrokes, got %d", tracker.Correct())
	}
	if tracker.Total() != 4 {
		t.Fatalf("expected 4 total keystrokes, got %d", tracker.Total())
	}
	if s.Position() != 3 {
		t.Fatalf("expected position 3, got %d", s.Position())
	}
	top := tracker.TopMistyped(10)
	if len(top) != 1 || top[0].Word != "cat" || top[0].Count != 1 {
		t.Fatalf("expected cat recorded once, got %v", top)
	}
}

func TestErrorBufferBlocksAdvance(t *testing.T) {
	s, _ := newTestSession("ab")
	s.Apply(Rune('x'))
	if s.Position() != 0 {
		t.Fatalf("expected position 0 after mistake, got %d", s.Position())
	}
	// Even the correct character is rejected while the buffer holds errors.
	s.Apply(Rune('a'))
	if s.Position() != 0 {
		t.Fatalf("expected position 0 while buffer non-empty, got %d", s.Position())
	}
	if s.ErrorBuffer() != "xa" {
		t.Fatalf("unexpected error buffer: %q", s.ErrorBuffer())
	}
}

func TestBackspacePopsBufferBeforePosition(t *testing.T) {
	s, _ := newTestSession("ab")
	s.Apply(Rune('a'))
	s.Apply(Rune('x'))
	s.Apply(Backspace)
	if s.ErrorBuffer() != "" {
		t.Fatalf("expected empty buffer, got %q", s.ErrorBuffer())
	}
	if s.Position() != 1 {
		t.Fatalf("expected position 1, got %d", s.Position())
	}
	s.Apply(Backspace)
	if s.Position() != 0 {
		t.Fatalf("expected position 0, got %d", s.Position())
	}
	// No-op at the start with an empty buffer.
	s.Apply(Backspace)
	if s.Position() != 0 {
		t.Fatalf("expected position 0 after no-op backspace, got %d", s.Position())
	}
}

func TestRetypedCharacterIsFreshCheck(t *testing.T) {
	s, tracker := newTestSession("ab")
	s.Apply(Rune('a'))
	s.Apply(Backspace)
	s.Apply(Rune('a'))
	s.Apply(Rune('b'))
	if tracker.Correct() != 3 || tracker.Total() != 3 {
		t.Fatalf("expected 3/3 keystrokes, got %d/%d", tracker.Correct(), tracker.Total())
	}
	if !s.Completed() {
		t.Fatalf("expected completed session")
	}
}

func TestEnterOnNewline(t *testing.T) {
	s, tracker := newTestSession("a\nb")
	s.Apply(Rune('a'))
	s.Apply(Enter)
	s.Apply(Rune('b'))
	if tracker.Correct() != 3 || tracker.Total() != 3 {
		t.Fatalf("expected 3/3 keystrokes, got %d/%d", tracker.Correct(), tracker.Total())
	}
	if !s.Completed() {
		t.Fatalf("expected completed session")
	}
}

func TestEnterWhenNotExpected(t *testing.T) {
	s, tracker := newTestSession("ab")
	s.Apply(Rune('a'))
	s.Apply(Enter)
	if tracker.Correct() != 1 || tracker.Total() != 2 {
		t.Fatalf("expected 1/2 keystrokes, got %d/%d", tracker.Correct(), tracker.Total())
	}
	if s.ErrorBuffer() != string(EnterMarker) {
		t.Fatalf("expected enter marker in buffer, got %q", s.ErrorBuffer())
	}
	if s.Position() != 1 {
		t.Fatalf("expected position 1, got %d", s.Position())
	}
}

func TestEnterWithBufferedErrors(t *testing.T) {
	s, tracker := newTestSession("a\nb")
	s.Apply(Rune('x'))
	s.Apply(Enter)
	if tracker.Total() != 2 || tracker.Correct() != 0 {
		t.Fatalf("expected 0/2 keystrokes, got %d/%d", tracker.Correct(), tracker.Total())
	}
	if s.ErrorBuffer() != "x"+string(EnterMarker) {
		t.Fatalf("unexpected buffer: %q", s.ErrorBuffer())
	}
}

func TestEnterCommitsErroredWord(t *testing.T) {
	s, tracker := newTestSession("word\nnext")
	s.Apply(Rune('x'))
	s.Apply(Backspace)
	typeString(s, "word")
	s.Apply(Enter)
	top := tracker.TopMistyped(10)
	if len(top) != 1 || top[0].Word != "word" {
		t.Fatalf("expected word committed on enter, got %v", top)
	}
}

func TestSpaceCommitsErroredWord(t *testing.T) {
	s, tracker := newTestSession("ab cd")
	s.Apply(Rune('x'))
	s.Apply(Backspace)
	typeString(s, "ab ")
	top := tracker.TopMistyped(10)
	if len(top) != 1 || top[0].Word != "ab" {
		t.Fatalf("expected ab committed on space, got %v", top)
	}
	typeString(s, "cd")
	top = tracker.TopMistyped(10)
	if len(top) != 1 {
		t.Fatalf("expected only ab mistyped, got %v", top)
	}
}

func TestCancelFlushesErroredWord(t *testing.T) {
	s, tracker := newTestSession("hello world")
	typeString(s, "hel")
	s.Apply(Rune('x'))
	s.Apply(Backspace)
	s.Apply(Cancel)

	if s.Completed() {
		t.Fatalf("cancelled session must not be completed")
	}
	if !s.Done() {
		t.Fatalf("expected session done after cancel")
	}
	top := tracker.TopMistyped(10)
	if len(top) != 1 || top[0].Word != "hello" {
		t.Fatalf("expected hello flushed on cancel, got %v", top)
	}
}

func TestKeysIgnoredAfterEnd(t *testing.T) {
	s, tracker := newTestSession("a")
	s.Apply(Rune('a'))
	s.Apply(Rune('b'))
	s.Apply(Backspace)
	if tracker.Total() != 1 {
		t.Fatalf("expected 1 keystroke, got %d", tracker.Total())
	}
	if s.Position() != 1 {
		t.Fatalf("expected position 1, got %d", s.Position())
	}
}

func TestPositionStaysInBounds(t *testing.T) {
	text := "ab cd"
	s, _ := newTestSession(text)
	inputs := []Key{
		Rune('a'), Backspace, Backspace, Rune('a'), Rune('x'),
		Enter, Backspace, Backspace, Rune('b'), Rune(' '),
		Rune('c'), Rune('d'),
	}
	prev := 0
	for _, key := range inputs {
		backward := key.Kind == KindBackspace
		s.Apply(key)
		pos := s.Position()
		if pos < 0 || pos > len([]rune(text)) {
			t.Fatalf("position %d out of bounds", pos)
		}
		if !backward && pos < prev {
			t.Fatalf("position decreased without backspace: %d -> %d", prev, pos)
		}
		prev = pos
	}
	if !s.Completed() {
		t.Fatalf("expected completed session")
	}
}

func TestCurrentWord(t *testing.T) {
	s, _ := newTestSession("one two")
	typeString(s, "one t")
	word, start := s.CurrentWord()
	if word != "two" || start != 4 {
		t.Fatalf("expected (two, 4), got (%q, %d)", word, start)
	}
}
