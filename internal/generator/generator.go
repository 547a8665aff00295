// Package generator builds practice strings from lesson text.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces randomized practice strings.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Generator using the provided random source.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Rand exposes the generator's random source for collaborators that
// need random picks (e.g. choosing a library file).
func (g *Generator) Rand() *rand.Rand {
	return g.rnd
}

// Lesson derives a practice string from text. Multi-line text is repeated
// and shuffled line by line; single-line text word by word. Repetition
// happens before shuffling.
func (g *Generator) Lesson(text string, repeats int, shuffle bool) string {
	if strings.Contains(text, "\n") {
		lines := strings.Split(text, "\n")
		lines = repeatUnits(lines, repeats)
		if shuffle {
			g.rnd.Shuffle(len(lines), func(i, j int) {
				lines[i], lines[j] = lines[j], lines[i]
			})
		}
		return strings.Join(lines, "\n")
	}
	words := strings.Fields(text)
	words = repeatUnits(words, repeats)
	if shuffle {
		g.rnd.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
	}
	return strings.Join(words, " ")
}

// BagShuffle concatenates bagCount independently shuffled permutations of
// words, so every word appears exactly once per bag. Drills use this
// instead of a flat shuffle to avoid long streaks without a given word.
func (g *Generator) BagShuffle(words []string, bagCount int) string {
	if len(words) == 0 || bagCount <= 0 {
		return ""
	}
	out := make([]string, 0, len(words)*bagCount)
	bag := make([]string, len(words))
	for b := 0; b < bagCount; b++ {
		copy(bag, words)
		g.rnd.Shuffle(len(bag), func(i, j int) {
			bag[i], bag[j] = bag[j], bag[i]
		})
		out = append(out, bag...)
	}
	return strings.Join(out, " ")
}

func repeatUnits(units []string, repeats int) []string {
	if repeats <= 1 {
		return units
	}
	out := make([]string, 0, len(units)*repeats)
	for i := 0; i < repeats; i++ {
		out = append(out, units...)
	}
	return out
}
