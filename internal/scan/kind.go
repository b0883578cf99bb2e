package scan

import (
	"fmt"
	"strings"
)

// Kind classifies a reported span.
type Kind int

const (
	SingleLine Kind = iota
	Block
	JSDoc
	HTML
	Hashbang
	TemplateEmbedded
	UnterminatedString
	UnterminatedRegex
	UnterminatedTemplate
)

var kindNames = [...]string{
	SingleLine:           "singleline",
	Block:                "block",
	JSDoc:                "jsdoc",
	HTML:                 "html",
	Hashbang:             "hashbang",
	TemplateEmbedded:     "template",
	UnterminatedString:   "unterminated-string",
	UnterminatedRegex:    "unterminated-regex",
	UnterminatedTemplate: "unterminated-template",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(raw string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown comment kind: %q", raw)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown comment kind: %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Multiline reports whether spans of this kind can cover more than one line.
func (k Kind) Multiline() bool {
	switch k {
	case SingleLine, Hashbang:
		return false
	default:
		return true
	}
}

// CommentTypes selects which kinds a scan reports.
type CommentTypes string

const (
	AllComments        CommentTypes = "all"
	SingleLineComments CommentTypes = "singleline"
	MultilineComments  CommentTypes = "multiline"
	HTMLComments       CommentTypes = "html"
	JSDocComments      CommentTypes = "jsdoc"
)

// ParseCommentTypes validates a user supplied filter. Empty means all.
func ParseCommentTypes(raw string) (CommentTypes, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", "all":
		return AllComments, nil
	case "singleline", "single-line", "line":
		return SingleLineComments, nil
	case "multiline", "multi-line", "block":
		return MultilineComments, nil
	case "html":
		return HTMLComments, nil
	case "jsdoc":
		return JSDocComments, nil
	}
	return "", fmt.Errorf("invalid comment types: %s", raw)
}

// Allows reports whether spans of kind k pass the filter.
// TemplateEmbedded and the unterminated kinds only pass "all".
func (t CommentTypes) Allows(k Kind) bool {
	switch t {
	case "", AllComments:
		return true
	case SingleLineComments:
		return k == SingleLine || k == Hashbang
	case MultilineComments:
		return k == Block || k == JSDoc
	case HTMLComments:
		return k == HTML
	case JSDocComments:
		return k == JSDoc
	}
	return false
}
