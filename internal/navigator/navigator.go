// Package navigator drives session flow over a stack of lessons.
package navigator

import (
	"errors"

	"github.com/thavelick/just-type-it/internal/generator"
	"github.com/thavelick/just-type-it/internal/lesson"
	"github.com/thavelick/just-type-it/internal/model"
)

// Drill parameters: how many of the worst words to practice and how many
// bag-shuffled permutations to chain.
const (
	DrillWordLimit = 10
	DrillBagCount  = 3
)

// Navigation errors.
var (
	ErrNoMistakes = errors.New("no mistyped words to drill")
	ErrNoLibrary  = errors.New("no library configured")
	ErrAtBottom   = errors.New("already at the first lesson")
)

type entry struct {
	lesson lesson.Lesson
	// drillWords is set for mistake-drill lessons so a repeat can
	// regenerate a fresh bag shuffle.
	drillWords []string
}

// Navigator holds the lesson stack. The bottom lesson is the one the
// program started with and is never popped.
type Navigator struct {
	stack   []entry
	gen     *generator.Generator
	library string
	repeats int
	shuffle bool
}

// New creates a Navigator with base as the bottom of the stack. The
// library directory may be empty, which disables load-next.
func New(base lesson.Lesson, gen *generator.Generator, library string, repeats int, shuffle bool) *Navigator {
	if repeats < 1 {
		repeats = 1
	}
	return &Navigator{
		stack:   []entry{{lesson: base}},
		gen:     gen,
		library: library,
		repeats: repeats,
		shuffle: shuffle,
	}
}

// Current returns the active (top-of-stack) lesson.
func (n *Navigator) Current() lesson.Lesson {
	return n.stack[len(n.stack)-1].lesson
}

// Depth returns the stack depth.
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// PracticeString regenerates the practice string for the active lesson.
// Drill lessons get a fresh bag shuffle; regular lessons go through the
// repeat/shuffle generator.
func (n *Navigator) PracticeString() string {
	top := n.stack[len(n.stack)-1]
	if top.drillWords != nil {
		return n.gen.BagShuffle(top.drillWords, DrillBagCount)
	}
	return n.gen.Lesson(top.lesson.Text, n.repeats, n.shuffle)
}

// Drill pushes a source-less lesson built from the session's most
// mistyped words. It fails when there are none.
func (n *Navigator) Drill(mistyped []model.WordCount) error {
	if len(mistyped) == 0 {
		return ErrNoMistakes
	}
	if len(mistyped) > DrillWordLimit {
		mistyped = mistyped[:DrillWordLimit]
	}
	words := make([]string, len(mistyped))
	for i, wc := range mistyped {
		words[i] = wc.Word
	}
	text := n.gen.BagShuffle(words, DrillBagCount)
	n.stack = append(n.stack, entry{
		lesson:     lesson.Lesson{Text: text},
		drillWords: words,
	})
	return nil
}

// CanLoadNext reports whether a library is configured.
func (n *Navigator) CanLoadNext() bool {
	return n.library != ""
}

// LoadNext pushes a random lesson from the library.
func (n *Navigator) LoadNext() error {
	if n.library == "" {
		return ErrNoLibrary
	}
	next, err := lesson.RandomFromDir(n.library, n.gen.Rand())
	if err != nil {
		return err
	}
	n.stack = append(n.stack, entry{lesson: next})
	return nil
}

// CanGoBack reports whether there is a lesson below the active one.
func (n *Navigator) CanGoBack() bool {
	return len(n.stack) > 1
}

// GoBack pops the active lesson. The bottom lesson cannot be popped.
func (n *Navigator) GoBack() error {
	if len(n.stack) <= 1 {
		return ErrAtBottom
	}
	n.stack = n.stack[:len(n.stack)-1]
	return nil
}
