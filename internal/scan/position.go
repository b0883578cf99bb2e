package scan

import "unicode/utf8"

// Position is a 1-based line and a 0-based column counted in characters.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// cursor walks the source one character at a time and keeps the line and
// column of its offset current. CRLF is consumed as one line break.
type cursor struct {
	src  string
	off  int
	line int
	col  int
}

func newCursor(src string) cursor {
	return cursor{src: src, line: 1}
}

func (c *cursor) pos() Position {
	return Position{Line: c.line, Column: c.col}
}

func (c *cursor) next() {
	if c.off >= len(c.src) {
		return
	}
	b := c.src[c.off]
	switch {
	case b == '\r':
		c.off++
		if c.off < len(c.src) && c.src[c.off] == '\n' {
			c.off++
		}
		c.line++
		c.col = 0
	case b == '\n':
		c.off++
		// a window that starts between CR and LF has already counted the break
		if c.off < 2 || c.src[c.off-2] != '\r' {
			c.line++
		}
		c.col = 0
	case b < utf8.RuneSelf:
		c.off++
		c.col++
	default:
		_, size := utf8.DecodeRuneInString(c.src[c.off:])
		c.off += size
		c.col++
	}
}

func (c *cursor) skip(n int) {
	for ; n > 0; n-- {
		c.next()
	}
}

// advanceTo moves forward until off is reached. It stops between CR and LF
// when asked to.
func (c *cursor) advanceTo(off int) {
	for c.off < off {
		if c.src[c.off] == '\r' && c.off+1 == off {
			c.off++
			c.line++
			c.col = 0
			return
		}
		c.next()
	}
}

// PositionOf converts an offset of source into a line/column pair.
// Offsets outside the source are clamped.
func PositionOf(source string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	c := newCursor(source)
	c.advanceTo(offset)
	return c.pos()
}

func lineRange(from, to int) []int {
	if to < from {
		to = from
	}
	lines := make([]int, 0, to-from+1)
	for l := from; l <= to; l++ {
		lines = append(lines, l)
	}
	return lines
}
