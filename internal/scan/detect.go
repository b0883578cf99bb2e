package scan

import "unicode/utf8"

// Comment is one reported span. Offsets are byte offsets into the source,
// End is exclusive.
type Comment struct {
	Start        int      `json:"start"`
	End          int      `json:"end"`
	StartPos     Position `json:"start_position"`
	EndPos       Position `json:"end_position"`
	Kind         Kind     `json:"kind"`
	Nested       bool     `json:"nested"`
	Unterminated bool     `json:"unterminated,omitempty"`
	Lines        []int    `json:"lines"`
}

// Text returns the source covered by c.
func (c Comment) Text(source string) string {
	if c.Start < 0 || c.End > len(source) || c.Start > c.End {
		return ""
	}
	return source[c.Start:c.End]
}

func (s *scanner) emit(kind Kind, start int, pos Position, nested bool) {
	if kind == Block {
		kind = blockKind(s.cur.src, start, s.cur.off)
	}
	end := s.cur.pos()
	s.out = append(s.out, Comment{
		Start:    start,
		End:      s.cur.off,
		StartPos: pos,
		EndPos:   end,
		Kind:     kind,
		Nested:   nested,
		Lines:    lineRange(pos.Line, end.Line),
	})
}

// blockKind relabels `/**...` blocks as JSDoc. The empty block `/**/` stays
// a plain block.
func blockKind(src string, start, end int) Kind {
	if start+2 >= end || src[start+2] != '*' {
		return Block
	}
	if start+3 < end && src[start+3] == '/' {
		return Block
	}
	return JSDoc
}

// lineComment consumes up to, not including, the next line break.
func (s *scanner) lineComment(kind Kind) {
	start, pos := s.cur.off, s.cur.pos()
	keep := s.opts.CommentTypes.Allows(kind)
	for s.cur.off < s.limit {
		if c := s.cur.src[s.cur.off]; c == '\n' || c == '\r' {
			break
		}
		s.cur.next()
	}
	if keep {
		s.emit(kind, start, pos, false)
	}
}

func (s *scanner) blockComment() {
	start, pos := s.cur.off, s.cur.pos()
	keep := s.opts.CommentTypes.Allows(s.openBlockKind())
	s.cur.skip(2)
	depth, nested := 1, false
	for s.cur.off < s.limit {
		switch {
		case s.hasPrefix("/*"):
			depth++
			nested = true
			s.cur.skip(2)
		case s.hasPrefix("*/"):
			depth--
			s.cur.skip(2)
			if depth == 0 {
				if keep {
					s.emit(Block, start, pos, nested)
				}
				return
			}
		default:
			s.cur.next()
		}
	}
	if keep {
		s.unterminatedComment(Block, start, pos, nested)
	}
}

// openBlockKind guesses the kind of the block starting at the cursor before
// it is consumed, so the filter can be applied up front.
func (s *scanner) openBlockKind() Kind {
	if s.peek(2) == '*' && s.peek(3) != '/' {
		return JSDoc
	}
	return Block
}

func (s *scanner) htmlComment() {
	start, pos := s.cur.off, s.cur.pos()
	keep := s.opts.CommentTypes.Allows(HTML)
	s.cur.skip(4)
	depth, nested := 1, false
	for s.cur.off < s.limit {
		switch {
		case s.hasPrefix("<!--"):
			depth++
			nested = true
			s.cur.skip(4)
		case s.hasPrefix("-->"):
			depth--
			s.cur.skip(3)
			if depth == 0 {
				if keep {
					s.emit(HTML, start, pos, nested)
				}
				return
			}
		default:
			s.cur.next()
		}
	}
	if keep {
		s.unterminatedComment(HTML, start, pos, nested)
	}
}

// unterminatedComment reports a comment still open at the end of the source.
// Its end column counts the characters from start to the end of the source.
// A comment cut off by a narrower window is dropped.
func (s *scanner) unterminatedComment(kind Kind, start int, pos Position, nested bool) {
	if s.limit != len(s.cur.src) {
		return
	}
	s.emit(kind, start, pos, nested)
	c := &s.out[len(s.out)-1]
	c.Unterminated = true
	c.EndPos.Column = utf8.RuneCountInString(s.cur.src[start:])
}

// templateComment reports comment-shaped text inside template literal text.
// The span stops at the closing backtick or a `${`; a block that does not
// close before either is not a comment and only its slash is consumed.
func (s *scanner) templateComment() {
	start, pos := s.cur.off, s.cur.pos()
	keep := s.opts.CommentTypes.Allows(TemplateEmbedded)
	line := s.peek(1) == '/'
	back := s.cur
	s.cur.skip(2)
	for s.cur.off < s.limit {
		c := s.cur.src[s.cur.off]
		switch {
		case c == '\\' && s.cur.off+1 < s.limit:
			s.cur.skip(2)
			continue
		case c == '`' || c == '$' && s.peek(1) == '{':
			if line {
				if keep {
					s.emit(TemplateEmbedded, start, pos, false)
				}
				return
			}
			s.cur = back
			s.cur.next()
			return
		case line && (c == '\n' || c == '\r'):
			if keep {
				s.emit(TemplateEmbedded, start, pos, false)
			}
			return
		case !line && s.hasPrefix("*/"):
			s.cur.skip(2)
			if keep {
				s.emit(TemplateEmbedded, start, pos, false)
			}
			return
		}
		s.cur.next()
	}
	if line && keep {
		s.emit(TemplateEmbedded, start, pos, false)
		return
	}
	if !line {
		s.cur = back
		s.cur.next()
	}
}
