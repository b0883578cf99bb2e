package termcolor

import (
	"fmt"
	"strings"
)

// Style is a set of SGR attributes. At most one foreground is emitted,
// preferring truecolor, then 256, then the basic palette.
type Style struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

func (s Style) IsZero() bool {
	return !s.Bold && !s.Dim && !s.Italic && !s.Underline && s.FGBasic == nil && s.FG256 == nil && s.FGTrue == nil
}

func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" || s.IsZero() {
		return text
	}
	return "\x1b[" + strings.Join(sgrCodes(s), ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	codes := make([]string, 0, 6)
	for _, attr := range []struct {
		on   bool
		code string
	}{{s.Bold, "1"}, {s.Dim, "2"}, {s.Italic, "3"}, {s.Underline, "4"}} {
		if attr.on {
			codes = append(codes, attr.code)
		}
	}
	switch {
	case s.FGTrue != nil:
		rgb := *s.FGTrue
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", rgb[0], rgb[1], rgb[2]))
	case s.FG256 != nil:
		codes = append(codes, fmt.Sprintf("38;5;%d", *s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, fmt.Sprintf("3%d", *s.FGBasic))
	}
	return codes
}
