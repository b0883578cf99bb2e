package scan

import "unicode/utf8"

// leading reports a hashbang line. It only exists at offset 0 and its span
// takes the line break that ends it, while Lines stays on the first line.
func (s *scanner) leading() {
	if s.cur.off != 0 || !s.hasPrefix("#!") {
		return
	}
	n := len(s.out)
	s.lineComment(Hashbang)
	if n == len(s.out) || s.cur.off >= s.limit {
		return
	}
	src, off := s.cur.src, s.cur.off
	if c := src[off]; c != '\n' && c != '\r' {
		return
	}
	if src[off] == '\r' && off+1 < len(src) && src[off+1] == '\n' && !s.hasPrefix("\r\n") {
		// the window ends between CR and LF
		return
	}
	s.cur.next()
	c := &s.out[n]
	c.End = s.cur.off
	c.EndPos = s.cur.pos()
}

// trailing reports the construct still open when the scan reached the end of
// the source. Only the earliest one is reported; its span runs to the end.
func (s *scanner) trailing() {
	if s.limit != len(s.cur.src) {
		return
	}
	kind, start, pos, ok := Kind(0), 0, Position{}, false
	keep := -1
	pick := func(k Kind, off int, p Position, out int) {
		if !ok || off < start {
			kind, start, pos, ok, keep = k, off, p, true, out
		}
	}
	for _, f := range s.frames {
		if f.kind == frameTemplate || f.kind == frameHole {
			pick(UnterminatedTemplate, f.start, f.pos, f.out)
			break
		}
	}
	if s.quote != 0 {
		pick(UnterminatedString, s.strStart, s.strPos, -1)
	}
	if s.regex {
		pick(UnterminatedRegex, s.reStart, s.rePos, -1)
	}
	if !ok || !s.opts.CommentTypes.Allows(kind) {
		return
	}
	if keep >= 0 && keep < len(s.out) {
		// comments found in the open template's holes are covered by it
		s.out = s.out[:keep]
	}
	src := s.cur.src
	s.out = append(s.out, Comment{
		Start:        start,
		End:          len(src),
		StartPos:     pos,
		EndPos:       Position{Line: s.cur.line, Column: utf8.RuneCountInString(src[start:])},
		Kind:         kind,
		Unterminated: true,
		Lines:        lineRange(pos.Line, s.cur.line),
	})
}
