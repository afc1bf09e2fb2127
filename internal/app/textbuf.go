package app

import "strings"

// textBuffer is a flat rune-slice content model. The editor only needs
// whole-buffer snapshots for highlighting plus point edits, so a gap
// structure would be overkill here.
type textBuffer struct {
	runes []rune
}

func newTextBuffer(s string) *textBuffer {
	return &textBuffer{runes: []rune(s)}
}

// Len returns the buffer length in runes.
func (b *textBuffer) Len() int { return len(b.runes) }

// String returns the buffer contents.
func (b *textBuffer) String() string { return string(b.runes) }

// Insert inserts s at the given rune position. Out-of-range positions clamp
// to the buffer bounds.
func (b *textBuffer) Insert(pos int, s string) {
	pos = b.clamp(pos)
	ins := []rune(s)
	b.runes = append(b.runes[:pos], append(ins, b.runes[pos:]...)...)
}

// Delete removes the rune range [start, end).
func (b *textBuffer) Delete(start, end int) {
	start = b.clamp(start)
	end = b.clamp(end)
	if start >= end {
		return
	}
	b.runes = append(b.runes[:start], b.runes[end:]...)
}

// Lines splits the buffer into lines without trailing newlines. An empty
// buffer yields a single empty line.
func (b *textBuffer) Lines() []string {
	return strings.Split(string(b.runes), "\n")
}

// LineCol returns the zero-based line and column of a rune position.
func (b *textBuffer) LineCol(pos int) (line, col int) {
	pos = b.clamp(pos)
	for i := 0; i < pos; i++ {
		if b.runes[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// LineStart returns the rune position where the given line begins. Lines
// past the end clamp to the buffer length.
func (b *textBuffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	for i, r := range b.runes {
		if r == '\n' {
			line--
			if line == 0 {
				return i + 1
			}
		}
	}
	return len(b.runes)
}

func (b *textBuffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.runes) {
		return len(b.runes)
	}
	return pos
}
