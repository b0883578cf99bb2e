package strip

import (
	"errors"
	"testing"

	"github.com/phyten/jscomments/internal/scan"
	"github.com/phyten/jscomments/internal/testutil"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want string
	}{
		{
			name: "trailing comments",
			src:  "const a = 1; // one\nconst b = 2; /* two */\n",
			want: "const a = 1;\nconst b = 2;\n",
		},
		{
			name: "tokens stay apart",
			src:  "a/**/b",
			want: "a b",
		},
		{
			name: "line breaks survive",
			src:  "x = 1; /* a\nb */ y = 2;\n",
			want: "x = 1;\n y = 2;\n",
		},
		{
			name: "crlf",
			src:  "x(); /* a\r\nb */\r\ny();\r\n",
			want: "x();\r\n\r\ny();\r\n",
		},
		{
			name: "whole line comment keeps the line",
			src:  "a();\n  // gone\nb();\n",
			want: "a();\n\nb();\n",
		},
		{
			name: "template text is not a comment",
			src:  "const t = `a // b`;\n",
			want: "const t = `a // b`;\n",
		},
		{
			name: "hashbang kept on request",
			src:  "#!/usr/bin/env node\n// c\nrun();\n",
			opts: Options{KeepHashbang: true},
			want: "#!/usr/bin/env node\n\nrun();\n",
		},
		{
			name: "hashbang removed",
			src:  "#!/usr/bin/env node\nrun();\n",
			want: "\nrun();\n",
		},
		{
			name: "comment types filter",
			src:  "/* a */ x(); // b\n",
			opts: Options{CommentTypes: scan.SingleLineComments},
			want: "/* a */ x();\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Strip(tc.src, tc.opts)
			testutil.AssertEqual(t, got.Source, tc.want)
		})
	}
}

func TestStripReportsRemovedSpans(t *testing.T) {
	res := Strip("// a\nx(); /** b */\n", Options{})
	if len(res.Removed) != 2 {
		t.Fatalf("removed mismatch: got=%d want=2", len(res.Removed))
	}
	if res.Removed[0].Kind != scan.SingleLine || res.Removed[1].Kind != scan.JSDoc {
		t.Fatalf("kinds mismatch: %v %v", res.Removed[0].Kind, res.Removed[1].Kind)
	}
}

func TestRemoveIgnoresBadSpans(t *testing.T) {
	src := "abc /* x */ def"
	spans := []scan.Comment{
		{Start: 4, End: 11},
		{Start: 6, End: 9},   // overlaps
		{Start: 12, End: 99}, // out of range
		{Start: 3, End: 3},   // empty
	}
	testutil.AssertEqual(t, Remove(src, spans), "abc  def")
	testutil.AssertEqual(t, Remove(src, nil), src)
}

func TestVerify(t *testing.T) {
	orig := "let a = 1; // one\nfunction f() { /* two */ return a }\n"
	res := Strip(orig, Options{})
	if err := Verify("a.js", orig, res.Source); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if err := Verify("a.js", orig, "let a = ;\n"); err == nil || errors.Is(err, ErrUnverifiable) {
		t.Fatalf("expected compile failure of stripped source, got %v", err)
	}
	if err := Verify("a.jsx", "const el = <div/>;\n", "const el = <div/>;\n"); !errors.Is(err, ErrUnverifiable) {
		t.Fatalf("expected ErrUnverifiable, got %v", err)
	}
}
