package output

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/jscomments/internal/model"
)

type SortKey struct {
	Name string
	Desc bool
}

type SortSpec struct {
	Keys []SortKey
}

// ParseSortSpec parses "-lines,kind" style specs. A leading '-' sorts
// descending; "location" expands to file, line, col.
func ParseSortSpec(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{}, nil
	}
	parts := strings.Split(raw, ",")
	keys := make([]SortKey, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: empty segment")
		}
		desc := false
		switch token[0] {
		case '+':
			token = token[1:]
		case '-':
			desc = true
			token = token[1:]
		}
		name := strings.ToLower(strings.TrimSpace(token))
		if name == "" {
			return SortSpec{}, fmt.Errorf("invalid sort key: sign without name")
		}
		if canon, ok := fieldAliases[name]; ok {
			name = canon
		}
		switch name {
		case "location":
			keys = append(keys, SortKey{Name: "file", Desc: desc}, SortKey{Name: "line", Desc: desc}, SortKey{Name: "col", Desc: desc})
			continue
		case "file", "line", "col", "kind", "lang", "lines", "size":
		default:
			return SortSpec{}, fmt.Errorf("invalid sort key: %s", token)
		}
		keys = append(keys, SortKey{Name: name, Desc: desc})
	}
	return SortSpec{Keys: keys}, nil
}

// ApplySort orders items by spec, then by file, line and column.
func ApplySort(items []model.Comment, spec SortSpec) {
	keys := append(append([]SortKey{}, spec.Keys...), SortKey{Name: "file"}, SortKey{Name: "line"}, SortKey{Name: "col"})
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		for _, key := range keys {
			var c int
			switch key.Name {
			case "file":
				c = cmp.Compare(a.File, b.File)
			case "line":
				c = cmp.Compare(a.Span.StartLine, b.Span.StartLine)
			case "col":
				c = cmp.Compare(a.Span.StartCol, b.Span.StartCol)
			case "kind":
				c = cmp.Compare(a.Kind.String(), b.Kind.String())
			case "lang":
				c = cmp.Compare(a.Lang, b.Lang)
			case "lines":
				c = cmp.Compare(len(a.Lines), len(b.Lines))
			case "size":
				c = cmp.Compare(a.Span.ByteEnd-a.Span.ByteStart, b.Span.ByteEnd-b.Span.ByteStart)
			}
			if c != 0 {
				if key.Desc {
					return c > 0
				}
				return c < 0
			}
		}
		return false
	})
}
