// Package strip removes comments from JavaScript family sources.
package strip

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dop251/goja"

	"github.com/phyten/jscomments/internal/scan"
)

// Options selects what is removed.
type Options struct {
	CommentTypes scan.CommentTypes
	DisableJSX   bool
	// KeepHashbang leaves a leading "#!" line in place.
	KeepHashbang bool
}

// Result is the stripped source and the spans that were removed from it.
type Result struct {
	Source  string
	Removed []scan.Comment
}

// Strip scans src and removes every comment it finds. Line breaks inside
// removed comments are kept, so the remaining code stays on the same lines.
func Strip(src string, opts Options) Result {
	found := scan.All(src, scan.Options{CommentTypes: opts.CommentTypes, DisableJSX: opts.DisableJSX})
	var removable []scan.Comment
	for _, c := range found {
		if removableKind(c.Kind) && !(opts.KeepHashbang && c.Kind == scan.Hashbang) {
			removable = append(removable, c)
		}
	}
	return Result{Source: Remove(src, removable), Removed: removable}
}

func removableKind(k scan.Kind) bool {
	switch k {
	case scan.SingleLine, scan.Block, scan.JSDoc, scan.HTML, scan.Hashbang:
		return true
	}
	return false
}

// Remove cuts the given spans out of src. Spans may come in any order; any
// that overlap an earlier one or fall outside src are ignored.
func Remove(src string, spans []scan.Comment) string {
	if len(spans) == 0 {
		return src
	}
	ordered := append([]scan.Comment(nil), spans...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	out := make([]byte, 0, len(src))
	last := 0
	for _, c := range ordered {
		if c.Start < last || c.End > len(src) || c.Start >= c.End {
			continue
		}
		out = append(out, src[last:c.Start]...)
		breaks := 0
		for i := c.Start; i < c.End; i++ {
			if b := src[i]; b == '\n' || b == '\r' {
				out = append(trimTrailingBlank(out), b)
				breaks++
			}
		}
		last = c.End
		switch {
		case last >= len(src) || src[last] == '\n' || src[last] == '\r':
			out = trimTrailingBlank(out)
		case breaks == 0 && len(out) > 0 && !isSpace(out[len(out)-1]) && !isSpace(src[last]):
			// keep a/**/b as two tokens
			out = append(out, ' ')
		}
	}
	out = append(out, src[last:]...)
	return string(out)
}

func trimTrailingBlank(b []byte) []byte {
	for len(b) > 0 && isBlank(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isSpace(b byte) bool { return isBlank(b) || b == '\n' || b == '\r' }

// ErrUnverifiable is returned by Verify when the original source itself is
// not plain JavaScript (JSX, TypeScript or a syntax error).
var ErrUnverifiable = errors.New("source cannot be verified")

// Verify compiles both versions with goja and reports an error when stripping
// turned a valid program into an invalid one.
func Verify(name, original, stripped string) error {
	if _, err := goja.Compile(name, original, false); err != nil {
		return fmt.Errorf("%w: %v", ErrUnverifiable, err)
	}
	if _, err := goja.Compile(name, stripped, false); err != nil {
		return fmt.Errorf("stripped source does not compile: %w", err)
	}
	return nil
}
