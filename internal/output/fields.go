package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/jscomments/internal/model"
)

type Field struct {
	Key    string
	Header string
}

// FieldSelection is the ordered list of columns to render. NeedText reports
// whether comment bodies must be extracted.
type FieldSelection struct {
	Fields   []Field
	ShowText bool
	NeedText bool
	// NeedURL is set when a selected column shows permalinks.
	NeedURL bool
}

type fieldMeta struct {
	header string
	isText bool
	isURL  bool
}

var fieldRegistry = map[string]fieldMeta{
	"file":         {header: "FILE"},
	"line":         {header: "LINE"},
	"col":          {header: "COL"},
	"end":          {header: "END"},
	"location":     {header: "LOCATION"},
	"kind":         {header: "KIND"},
	"lang":         {header: "LANG"},
	"lines":        {header: "LINES"},
	"bytes":        {header: "BYTES"},
	"size":         {header: "SIZE"},
	"nested":       {header: "NESTED"},
	"unterminated": {header: "UNTERMINATED"},
	"text":         {header: "TEXT", isText: true},
	"url":          {header: "URL", isURL: true},
}

var fieldAliases = map[string]string{
	"type":   "kind",
	"column": "col",
	"loc":    "location",
	"body":   "text",
	"range":  "bytes",
	"link":   "url",
}

// ResolveFields parses a comma separated field list. An empty list selects
// location, kind and lines, plus text when withText is set.
func ResolveFields(raw string, withText bool) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	var keys []string
	if raw == "" {
		keys = []string{"location", "kind", "lines"}
		if withText {
			keys = append(keys, "text")
		}
	} else {
		for _, part := range strings.Split(raw, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
			}
			if canon, ok := fieldAliases[name]; ok {
				name = canon
			}
			if _, ok := fieldRegistry[name]; !ok {
				return FieldSelection{}, fmt.Errorf("unknown field: %s", strings.TrimSpace(part))
			}
			keys = append(keys, name)
		}
	}

	sel := FieldSelection{Fields: make([]Field, 0, len(keys))}
	for _, key := range keys {
		meta := fieldRegistry[key]
		sel.Fields = append(sel.Fields, Field{Key: key, Header: meta.header})
		if meta.isText {
			sel.ShowText = true
		}
		if meta.isURL {
			sel.NeedURL = true
		}
	}
	sel.NeedText = withText || sel.ShowText
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(c model.Comment, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = formatFieldValue(c, f.Key)
	}
	return out
}

func formatFieldValue(c model.Comment, key string) string {
	switch key {
	case "file":
		return c.File
	case "line":
		return strconv.Itoa(c.Span.StartLine)
	case "col":
		return strconv.Itoa(c.Span.StartCol)
	case "end":
		return fmt.Sprintf("%d:%d", c.Span.EndLine, c.Span.EndCol)
	case "location":
		return fmt.Sprintf("%s:%d:%d", c.File, c.Span.StartLine, c.Span.StartCol)
	case "kind":
		return c.Kind.String()
	case "lang":
		return c.Lang
	case "lines":
		return strconv.Itoa(len(c.Lines))
	case "bytes":
		return fmt.Sprintf("%d-%d", c.Span.ByteStart, c.Span.ByteEnd)
	case "size":
		return strconv.Itoa(c.Span.ByteEnd - c.Span.ByteStart)
	case "nested":
		return yesNo(c.Nested)
	case "unterminated":
		return yesNo(c.Unterminated)
	case "text":
		return c.Text
	case "url":
		return c.URL
	default:
		return ""
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return ""
}
