// Package scan finds comment spans in JavaScript, TypeScript and JSX source.
//
// The scanner is lexical only. It tracks strings, template literals, regular
// expressions and JSX well enough to tell comment markers that start comments
// from markers that are just text.
package scan

// Options tunes a scan.
type Options struct {
	// CommentTypes filters the reported kinds. Empty means all.
	CommentTypes CommentTypes
	// DisableJSX reads `<` as an operator everywhere, as in plain .ts files.
	DisableJSX bool
	// TemplateText reports comment-shaped text inside template literals.
	TemplateText bool
}

type scanner struct {
	cur   cursor
	limit int
	opts  Options
	depth int
	out   []Comment

	frames     []frame
	afterValue bool
	classNext  bool

	quote    byte
	quoteRaw bool
	strStart int
	strPos   Position
	escape   bool

	regex      bool
	regexClass bool
	reStart    int
	rePos      Position
	reAt       cursor
}

// Comments returns the comment spans found between previousTokenEnd and
// nextTokenStart, in source order. The range must satisfy
// 0 <= previousTokenEnd <= nextTokenStart <= len(source); otherwise the
// result is empty.
func Comments(source string, previousTokenEnd, nextTokenStart int, opts Options) []Comment {
	if previousTokenEnd < 0 || previousTokenEnd > nextTokenStart || nextTokenStart > len(source) {
		return nil
	}
	s := &scanner{
		cur:   newCursor(source),
		limit: nextTokenStart,
		opts:  opts,
	}
	s.cur.advanceTo(previousTokenEnd)
	s.leading()
	s.run()
	s.trailing()
	return s.out
}

// All scans the whole source.
func All(source string, opts Options) []Comment {
	return Comments(source, 0, len(source), opts)
}

func (s *scanner) run() {
	for s.cur.off < s.limit {
		switch {
		case s.quote != 0:
			s.stepString()
			continue
		case s.regex:
			s.stepRegex()
			continue
		}
		switch s.topKind() {
		case frameTemplate:
			s.stepTemplate()
		case frameJSXTag:
			s.stepJSXTag()
		case frameJSXText:
			s.stepJSXText()
		default:
			s.stepCode()
		}
	}
}

func (s *scanner) stepCode() {
	c := s.cur.src[s.cur.off]
	switch {
	case isSpace(c):
		s.cur.next()
	case c == '"' || c == '\'':
		s.openString(c, false)
	case c == '`':
		s.push(frameTemplate)
		s.escape = false
		s.cur.next()
	case c == '/':
		s.slash()
	case c == '<':
		s.angle()
	case c == '{':
		s.openBrace()
	case c == '}':
		s.closeBrace()
	case c == ')' || c == ']':
		s.afterValue = true
		s.cur.next()
	case c == '_' || c == '$' || c >= 0x80 || c >= '0' && c <= '9' || c|0x20 >= 'a' && c|0x20 <= 'z':
		s.word()
	default:
		s.afterValue = false
		s.cur.next()
	}
}

func (s *scanner) slash() {
	switch n := s.peek(1); {
	case n == '/':
		s.lineComment(SingleLine)
	case n == '*':
		s.blockComment()
	case !s.afterValue && n != '?':
		s.openRegex()
	default:
		s.afterValue = false
		s.cur.next()
	}
}
