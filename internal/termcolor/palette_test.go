package termcolor

import (
	"testing"

	"github.com/phyten/jscomments/internal/colorutil"
	"github.com/phyten/jscomments/internal/scan"
)

func TestHeaderStyle(t *testing.T) {
	s := HeaderStyle()
	if !s.Bold || !s.Underline {
		t.Fatalf("header style should enable bold+underline: %+v", s)
	}
}

func TestKindStyleRespectsProfile(t *testing.T) {
	basic := KindStyle(scan.JSDoc, SchemeDark, ProfileBasic8)
	if basic.FGBasic == nil || *basic.FGBasic != 4 {
		t.Fatalf("jsdoc basic style mismatch: %+v", basic)
	}
	c256 := KindStyle(scan.Block, SchemeDark, ProfileANSI256)
	if c256.FG256 == nil || *c256.FG256 != rgbToANSI256(103, 232, 249) {
		t.Fatalf("block 256 color mismatch: %+v", c256)
	}
	bad := KindStyle(scan.UnterminatedRegex, SchemeDark, ProfileBasic8)
	if !bad.Bold || bad.FGBasic == nil || *bad.FGBasic != 1 {
		t.Fatalf("unterminated should be bold red: %+v", bad)
	}
	none := KindStyle(scan.Kind(99), SchemeDark, ProfileBasic8)
	if none.FGBasic != nil || none.FG256 != nil || none.FGTrue != nil {
		t.Fatalf("unknown kind should have no color: %+v", none)
	}
}

func TestKindStyleLightContrast(t *testing.T) {
	for kind := range kindColors {
		st := KindStyle(kind, SchemeLight, ProfileTrueColor)
		if st.FGTrue == nil {
			t.Fatalf("%s light truecolor missing fg: %+v", kind, st)
		}
		rgb := *st.FGTrue
		contrast := colorutil.ContrastRatio(colorutil.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}, LightBackground)
		if contrast < 4.5 {
			t.Fatalf("%s light truecolor contrast %.2f < 4.5 (rgb=%v)", kind, contrast, rgb)
		}
	}
	dark, _ := KindRGB(scan.SingleLine, SchemeDark)
	light, _ := KindRGB(scan.SingleLine, SchemeLight)
	if dark == light {
		t.Fatal("light scheme should adjust the color")
	}
}

func TestLinesStyleBasicBuckets(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 2},
		{1, 2},
		{3, 3},
		{12, 5},
		{200, 1},
	}
	for _, tc := range tests {
		style := LinesStyle(tc.lines, ProfileBasic8, 50)
		if style.FGBasic == nil {
			t.Fatalf("lines %d missing basic color", tc.lines)
		}
		if *style.FGBasic != tc.want {
			t.Fatalf("lines %d expected color %d, got %d", tc.lines, tc.want, *style.FGBasic)
		}
	}
}

func TestLinesStyleGradient(t *testing.T) {
	style := LinesStyle(1, ProfileANSI256, 50)
	if style.FG256 == nil || *style.FG256 != rgbToANSI256(0, 255, 0) {
		t.Fatalf("a single line should map to green in 256 palette, got %+v", style)
	}
	style = LinesStyle(200, ProfileTrueColor, 50)
	if style.FGTrue == nil {
		t.Fatalf("true color style missing value")
	}
	rgb := *style.FGTrue
	if rgb[0] != 255 || rgb[1] != 0 || rgb[2] != 0 {
		t.Fatalf("lines beyond max should be red, got %v", rgb)
	}
}

func TestTextStyle(t *testing.T) {
	if !TextStyle(SchemeDark).Dim {
		t.Fatal("dark scheme text should be dim")
	}
	if st := TextStyle(SchemeLight); st.FG256 == nil || st.Dim {
		t.Fatalf("light scheme text should be gray: %+v", st)
	}
}
