package scan

import (
	"unicode"
	"unicode/utf8"
)

type frameKind uint8

const (
	frameCode     frameKind = iota // top level, never pushed
	frameTemplate                  // template literal text
	frameHole                      // ${ ... } inside a template
	frameJSXTag                    // <Name attr=...>
	frameJSXText                   // element children
	frameJSXExpr                   // { ... } inside JSX
	frameClass                     // class body, brace bookkeeping only
)

type frame struct {
	kind   frameKind
	braces int
	start  int
	pos    Position
	at     cursor
	out    int
}

func (f *frame) code() bool {
	switch f.kind {
	case frameHole, frameJSXExpr, frameClass:
		return true
	}
	return false
}

func (s *scanner) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func (s *scanner) topKind() frameKind {
	if f := s.top(); f != nil {
		return f.kind
	}
	return frameCode
}

func (s *scanner) push(kind frameKind) {
	s.frames = append(s.frames, frame{
		kind:  kind,
		start: s.cur.off,
		pos:   s.cur.pos(),
		at:    s.cur,
		out:   len(s.out),
	})
}

func (s *scanner) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// peek returns the byte k positions ahead of the cursor, or 0 past the window.
func (s *scanner) peek(k int) byte {
	i := s.cur.off + k
	if i >= s.limit || i >= len(s.cur.src) {
		return 0
	}
	return s.cur.src[i]
}

func (s *scanner) hasPrefix(p string) bool {
	end := s.cur.off + len(p)
	return end <= s.limit && s.cur.src[s.cur.off:end] == p
}

func (s *scanner) openString(q byte, raw bool) {
	s.quote = q
	s.quoteRaw = raw
	s.escape = false
	s.strStart = s.cur.off
	s.strPos = s.cur.pos()
	s.cur.next()
}

// stepString consumes one character of a quoted string. The opening quote
// closes it and a backslash escapes exactly one following character. An
// unescaped line break also ends it.
func (s *scanner) stepString() {
	c := s.cur.src[s.cur.off]
	switch {
	case s.escape:
		s.escape = false
	case c == '\\' && !s.quoteRaw:
		s.escape = true
	case c == s.quote:
		s.quote = 0
		s.afterValue = true
	case (c == '\n' || c == '\r') && !s.quoteRaw:
		s.quote = 0
		s.afterValue = true
	}
	s.cur.next()
}

func (s *scanner) openRegex() {
	s.regex = true
	s.regexClass = false
	s.escape = false
	s.reStart = s.cur.off
	s.rePos = s.cur.pos()
	s.reAt = s.cur
	s.cur.next()
}

func (s *scanner) stepRegex() {
	c := s.cur.src[s.cur.off]
	switch {
	case c == '\n' || c == '\r':
		// regex literals never span lines: the slash was a division
		s.regex = false
		s.escape = false
		s.cur = s.reAt
		s.cur.next()
		s.afterValue = false
		return
	case s.escape:
		s.escape = false
	case c == '\\':
		s.escape = true
	case s.regexClass:
		if c == ']' {
			s.regexClass = false
		}
	case c == '[':
		s.regexClass = true
	case c == '/':
		if n := s.peek(1); n == '*' || n == '?' {
			break
		}
		s.regex = false
		s.cur.next()
		for isRegexFlag(s.peek(0)) {
			s.cur.next()
		}
		s.afterValue = true
		return
	}
	s.cur.next()
}

func isRegexFlag(b byte) bool {
	switch b {
	case 'd', 'g', 'i', 'm', 's', 'u', 'v', 'y':
		return true
	}
	return false
}

// stepTemplate consumes template text. `${` turns the frame into a hole and
// the closing backtick pops it.
func (s *scanner) stepTemplate() {
	c := s.cur.src[s.cur.off]
	switch {
	case s.escape:
		s.escape = false
		s.cur.next()
	case c == '\\':
		s.escape = true
		s.cur.next()
	case c == '`':
		s.pop()
		s.afterValue = true
		s.cur.next()
	case c == '$' && s.peek(1) == '{':
		f := s.top()
		f.kind = frameHole
		f.braces = 0
		s.afterValue = false
		s.cur.skip(2)
	case s.opts.TemplateText && c == '/' && (s.peek(1) == '/' || s.peek(1) == '*'):
		s.templateComment()
	default:
		s.cur.next()
	}
}

func (s *scanner) openBrace() {
	if s.classNext {
		s.classNext = false
		s.push(frameClass)
	} else if f := s.top(); f != nil && f.code() {
		f.braces++
	}
	s.afterValue = false
	s.cur.next()
}

func (s *scanner) closeBrace() {
	s.afterValue = false
	f := s.top()
	if f == nil || !f.code() {
		s.cur.next()
		return
	}
	if f.braces > 0 {
		f.braces--
		s.cur.next()
		return
	}
	switch f.kind {
	case frameHole:
		f.kind = frameTemplate
	case frameJSXExpr, frameClass:
		s.pop()
	}
	s.cur.next()
}

func (s *scanner) word() {
	start := s.cur.off
	for s.cur.off < s.limit {
		r, _ := utf8.DecodeRuneInString(s.cur.src[s.cur.off:])
		if !isWordRune(r) {
			break
		}
		s.cur.next()
	}
	if s.cur.off == start {
		// non-identifier character such as NBSP
		s.cur.next()
		return
	}
	w := s.cur.src[start:s.cur.off]
	switch {
	case w == "class":
		s.classNext = true
		s.afterValue = false
	case operatorKeywords[w]:
		s.afterValue = false
	default:
		s.afterValue = true
	}
}

// operatorKeywords leave the scanner in expression position, so a slash
// that follows them starts a regex.
var operatorKeywords = map[string]bool{
	"await":      true,
	"case":       true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"extends":    true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"of":         true,
	"return":     true,
	"throw":      true,
	"typeof":     true,
	"void":       true,
	"yield":      true,
}

func isWordRune(r rune) bool {
	switch {
	case r == '_' || r == '$':
		return true
	case r < utf8.RuneSelf:
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
	case r == '\u200c' || r == '\u200d':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func isJSXNameStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_' || b == '$' || b >= utf8.RuneSelf
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
