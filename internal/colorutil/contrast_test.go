package colorutil

import "testing"

func TestContrastRatio(t *testing.T) {
	cases := []struct {
		name     string
		fg, bg   RGB
		minRatio float64
	}{
		{"blackOnWhite", RGB{0, 0, 0}, RGB{255, 255, 255}, 4.5},
		{"whiteOnBlack", RGB{255, 255, 255}, RGB{0, 0, 0}, 4.5},
		{"darkRedOnWhite", RGB{185, 28, 28}, RGB{255, 255, 255}, 4.5},
		{"amberOnBlack", RGB{245, 158, 11}, RGB{17, 24, 39}, 4.5},
	}
	for _, tc := range cases {
		ratio := ContrastRatio(tc.fg, tc.bg)
		if ratio < tc.minRatio {
			t.Fatalf("%s contrast ratio %.2f < %.2f", tc.name, ratio, tc.minRatio)
		}
	}
	if got := ContrastRatio(black, white); got < 20.9 || got > 21.1 {
		t.Fatalf("black/white should be 21:1, got %.2f", got)
	}
}

func TestAutoTextColor(t *testing.T) {
	cases := []struct {
		name string
		bg   RGB
		want RGB
	}{
		{"lightBackground", RGB{255, 247, 237}, black},
		{"darkBackground", RGB{15, 23, 42}, white},
	}
	for _, tc := range cases {
		got := AutoTextColor(tc.bg)
		if got != tc.want {
			t.Fatalf("%s AutoTextColor=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestEnsureContrastKeepsHue(t *testing.T) {
	bg := RGB{249, 250, 251}
	fg := RGB{134, 239, 172}
	ensured := EnsureContrast(fg, bg, 4.5)
	if ContrastRatio(ensured, bg) < 4.5 {
		t.Fatalf("expected EnsureContrast to meet ratio, got %.2f", ContrastRatio(ensured, bg))
	}
	if ensured == black {
		t.Fatalf("green should be darkened, not replaced: %v", ensured)
	}
	if ensured.G <= ensured.R || ensured.G <= ensured.B {
		t.Fatalf("green channel should stay dominant: %v", ensured)
	}

	ok := RGB{0, 0, 0}
	if got := EnsureContrast(ok, bg, 0); got != ok {
		t.Fatalf("sufficient contrast should be kept: %v", got)
	}
}

func TestMixAndHex(t *testing.T) {
	if got := Mix(black, white, 0.5).Hex(); got != "#808080" {
		t.Fatalf("Mix midpoint = %s", got)
	}
	if got := Mix(black, white, 2); got != white {
		t.Fatalf("Mix should clamp t: %v", got)
	}
	if got := (RGB{31, 41, 55}).Hex(); got != "#1f2937" {
		t.Fatalf("Hex = %s", got)
	}
}
