// Package layout wraps practice text to a column width and maps every
// character index to its display position.
package layout

// Position is a display coordinate for one character of the original text.
type Position struct {
	Row int
	Col int
}

// Map holds the wrapped display lines of a practice string and a flat
// index-to-position arena. Pos has one entry per rune of the original
// text plus a trailing slot for the cursor just past the last character.
type Map struct {
	Width int
	Lines []string
	Pos   []Position
}

// Compute lays out text at the given content width. Words are packed
// greedily; a word longer than the width is hard-broken across lines.
// Spaces and newlines each occupy one index and are mapped to the
// position immediately before the break they cause.
func Compute(text string, width int) Map {
	if width < 1 {
		width = 1
	}
	runes := []rune(text)
	pos := make([]Position, len(runes)+1)
	var lines [][]rune
	var cur []rune

	clamp := func(col int) int {
		if col >= width {
			return width - 1
		}
		return col
	}
	flush := func() {
		lines = append(lines, cur)
		cur = nil
	}

	i := 0
	for i < len(runes) {
		switch r := runes[i]; r {
		case '\n':
			pos[i] = Position{Row: len(lines), Col: clamp(len(cur))}
			flush()
			i++
		case ' ':
			pos[i] = Position{Row: len(lines), Col: clamp(len(cur))}
			if len(cur) < width {
				cur = append(cur, ' ')
			} else {
				flush()
			}
			i++
		default:
			j := i
			for j < len(runes) && runes[j] != ' ' && runes[j] != '\n' {
				j++
			}
			if wordLen := j - i; wordLen <= width && len(cur)+wordLen > width {
				flush()
			}
			for k := i; k < j; k++ {
				if len(cur) >= width {
					flush()
				}
				pos[k] = Position{Row: len(lines), Col: len(cur)}
				cur = append(cur, runes[k])
			}
			i = j
		}
	}
	// Trailing cursor slot; col may equal width here since nothing is
	// rendered at it.
	pos[len(runes)] = Position{Row: len(lines), Col: len(cur)}
	flush()

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = string(line)
	}
	return Map{Width: width, Lines: out, Pos: pos}
}

// At returns the display position for an original rune index.
func (m Map) At(i int) Position {
	return m.Pos[i]
}

// IndexOf returns the original rune index displayed at (row, col), or -1
// when no character maps there.
func (m Map) IndexOf(row, col int) int {
	for i := 0; i < len(m.Pos)-1; i++ {
		if m.Pos[i].Row == row && m.Pos[i].Col == col {
			return i
		}
		if m.Pos[i].Row > row {
			break
		}
	}
	return -1
}
