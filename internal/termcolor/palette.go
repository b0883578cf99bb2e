package termcolor

import (
	"math"

	"github.com/phyten/jscomments/internal/colorutil"
	"github.com/phyten/jscomments/internal/scan"
)

// LightBackground is the reference background used for contrast on light
// terminals and in the web UI.
var LightBackground = colorutil.RGB{R: 249, G: 250, B: 251}

type kindColor struct {
	basic int
	rgb   colorutil.RGB
	bold  bool
}

// tuned for dark backgrounds
var kindColors = map[scan.Kind]kindColor{
	scan.SingleLine:           {basic: 2, rgb: colorutil.RGB{R: 134, G: 239, B: 172}},
	scan.Block:                {basic: 6, rgb: colorutil.RGB{R: 103, G: 232, B: 249}},
	scan.JSDoc:                {basic: 4, rgb: colorutil.RGB{R: 147, G: 197, B: 253}},
	scan.HTML:                 {basic: 5, rgb: colorutil.RGB{R: 240, G: 171, B: 252}},
	scan.Hashbang:             {basic: 3, rgb: colorutil.RGB{R: 253, G: 224, B: 71}},
	scan.TemplateEmbedded:     {basic: 3, rgb: colorutil.RGB{R: 251, G: 191, B: 36}},
	scan.UnterminatedString:   {basic: 1, rgb: colorutil.RGB{R: 252, G: 165, B: 165}, bold: true},
	scan.UnterminatedRegex:    {basic: 1, rgb: colorutil.RGB{R: 252, G: 165, B: 165}, bold: true},
	scan.UnterminatedTemplate: {basic: 1, rgb: colorutil.RGB{R: 252, G: 165, B: 165}, bold: true},
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// KindRGB returns the display color of a kind for the given scheme. Light
// schemes get the color darkened to a 4.5:1 contrast.
func KindRGB(kind scan.Kind, scheme Scheme) (colorutil.RGB, bool) {
	c, ok := kindColors[kind]
	if !ok {
		return colorutil.RGB{}, false
	}
	if scheme == SchemeLight {
		return colorutil.EnsureContrast(c.rgb, LightBackground, 4.5), true
	}
	return c.rgb, true
}

func KindStyle(kind scan.Kind, scheme Scheme, profile Profile) Style {
	c, ok := kindColors[kind]
	if !ok {
		return Style{}
	}
	st := Style{Bold: c.bold}
	rgb, _ := KindRGB(kind, scheme)
	switch profile {
	case ProfileTrueColor:
		v := [3]uint8{rgb.R, rgb.G, rgb.B}
		st.FGTrue = &v
	case ProfileANSI256:
		idx := rgbToANSI256(rgb.R, rgb.G, rgb.B)
		st.FG256 = &idx
	default:
		color := c.basic
		st.FGBasic = &color
	}
	return st
}

// TextStyle is used for comment bodies in the table.
func TextStyle(scheme Scheme) Style {
	if scheme == SchemeLight {
		gray := 242
		return Style{FG256: &gray}
	}
	return Style{Dim: true}
}

// LinesStyle colors the LINES column from green (one line) to red (maxLines
// or more).
func LinesStyle(lines int, profile Profile, maxLines float64) Style {
	if lines < 1 {
		lines = 1
	}
	switch profile {
	case ProfileTrueColor:
		r, g, b := gradientRGB(lines-1, maxLines-1)
		rgb := [3]uint8{r, g, b}
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		r, g, b := gradientRGB(lines-1, maxLines-1)
		idx := rgbToANSI256(r, g, b)
		return Style{FG256: &idx}
	default:
		color := linesBucketColor(lines)
		return Style{FGBasic: &color}
	}
}

func gradientRGB(n int, max float64) (uint8, uint8, uint8) {
	if max <= 0 {
		max = 49
	}
	t := math.Max(0, math.Min(1, float64(n)/max))
	if t < 0.5 {
		return uint8(math.Round(255 * t / 0.5)), 255, 0
	}
	return 255, uint8(math.Round(255 * (1 - (t-0.5)/0.5))), 0
}

func linesBucketColor(lines int) int {
	switch {
	case lines <= 1:
		return 2
	case lines <= 5:
		return 3
	case lines <= 20:
		return 5
	default:
		return 1
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
