package scan

import "strings"

// maxTagDepth bounds the re-scan of closing tag interiors.
const maxTagDepth = 32

func (s *scanner) angle() {
	if s.hasPrefix("<!--") {
		s.htmlComment()
		return
	}
	if !s.opts.DisableJSX && !s.afterValue {
		switch n := s.peek(1); {
		case n == '/':
			s.closingTag()
			return
		case n == '>' || isJSXNameStart(n):
			s.openElement()
			return
		}
	}
	s.afterValue = false
	s.cur.next()
}

func (s *scanner) openElement() {
	if s.peek(1) == '>' {
		s.push(frameJSXText)
		s.cur.skip(2)
		return
	}
	s.push(frameJSXTag)
	s.cur.next()
}

func (s *scanner) stepJSXTag() {
	c := s.cur.src[s.cur.off]
	switch {
	case c == '"' || c == '\'':
		s.openString(c, true)
	case c == '{':
		s.push(frameJSXExpr)
		s.cur.next()
	case c == '/' && s.peek(1) == '>':
		s.cur.skip(2)
		s.pop()
		s.elementDone()
	case c == '/' && s.peek(1) == '/':
		s.lineComment(SingleLine)
	case c == '/' && s.peek(1) == '*':
		s.blockComment()
	case c == '>':
		s.top().kind = frameJSXText
		s.cur.next()
	case c == ',' || c == ';' || c == '(' || c == ')':
		s.abandonTag()
	default:
		s.cur.next()
	}
}

// abandonTag undoes a tag guess that turned out to be a comparison or a
// type parameter list: the `<` is re-read as an operator.
func (s *scanner) abandonTag() {
	f := s.top()
	at, out := f.at, f.out
	s.pop()
	s.out = s.out[:out]
	s.cur = at
	s.cur.next()
	s.afterValue = false
}

// stepJSXText skips element children. Comment markers in text are literal.
func (s *scanner) stepJSXText() {
	c := s.cur.src[s.cur.off]
	switch {
	case c == '{':
		s.push(frameJSXExpr)
		s.cur.next()
	case c == '<' && s.peek(1) == '/':
		s.closingTag()
	case c == '<' && (s.peek(1) == '>' || isJSXNameStart(s.peek(1))):
		s.openElement()
	default:
		s.cur.next()
	}
}

// closingTag handles `</...>`. The interior is scanned again on its own so
// comments inside the closing marker are reported as nested.
func (s *scanner) closingTag() {
	rel := strings.IndexByte(s.cur.src[s.cur.off+2:s.limit], '>')
	if rel < 0 {
		s.cur.skip(2)
		if s.topKind() == frameJSXText {
			s.pop()
		}
		return
	}
	gt := s.cur.off + 2 + rel
	s.cur.skip(2)
	if s.depth < maxTagDepth {
		inner := &scanner{
			cur:   s.cur,
			limit: gt,
			opts:  s.opts,
			depth: s.depth + 1,
		}
		inner.run()
		for _, c := range inner.out {
			c.Nested = true
			s.out = append(s.out, c)
		}
	}
	s.cur.advanceTo(gt + 1)
	if s.topKind() == frameJSXText {
		s.pop()
	}
	s.elementDone()
}

// elementDone runs after an element closes. Back in code, the element is a
// value.
func (s *scanner) elementDone() {
	switch s.topKind() {
	case frameJSXText, frameJSXTag:
	default:
		s.afterValue = true
	}
}
