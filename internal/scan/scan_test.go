package scan

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/jscomments/internal/testutil"
)

func format(src string, cs []Comment) string {
	var b strings.Builder
	for _, c := range cs {
		flags := ""
		if c.Nested {
			flags += " nested"
		}
		if c.Unterminated {
			flags += " unterminated"
		}
		fmt.Fprintf(&b, "%s %d-%d %d:%d-%d:%d%s %q\n",
			c.Kind, c.Start, c.End,
			c.StartPos.Line, c.StartPos.Column, c.EndPos.Line, c.EndPos.Column,
			flags, c.Text(src))
	}
	return b.String()
}

func TestGolden(t *testing.T) {
	testutil.Run(t, filepath.Join("testdata", "*.txtar"), func(t *testing.T, match string) {
		ar := testutil.ParseTxtar(t, match)
		hdr := testutil.Header(ar)
		opts := Options{
			DisableJSX:   hdr["jsx"] == "off",
			TemplateText: hdr["template"] == "on",
		}
		if v, ok := hdr["types"]; ok {
			ct, err := ParseCommentTypes(v)
			if err != nil {
				t.Fatal(err)
			}
			opts.CommentTypes = ct
		}
		var src string
		for _, f := range ar.Files {
			if strings.HasPrefix(f.Name, "input.") {
				src = string(f.Data)
			}
		}
		got := format(src, All(src, opts))
		want := string(testutil.File(t, ar, "want"))
		testutil.AssertEqual(t, got, want)
	})
}

func TestSuppression(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"double quoted", `"// not a comment" + 5`},
		{"single quoted", `'/* nope */'`},
		{"escaped quote", `"a\" // still string"`},
		{"regex", `x = /a\/\/b/;`},
		{"regex class", `x = /[/*]/;`},
		{"template text", "`// text /* text */`"},
		{"jsx text", "<p>// text /* text */</p>"},
		{"jsx attribute", `<a href="//example.com" />`},
		{"stray close", "a */ b\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := All(tc.src, Options{}); len(got) != 0 {
				t.Fatalf("unexpected spans: %s", format(tc.src, got))
			}
		})
	}
}

func TestNestedBlock(t *testing.T) {
	src := "/* outer /* inner */ still outer */"
	got := All(src, Options{})
	testutil.AssertEqual(t, got, []Comment{{
		Start:    0,
		End:      len(src),
		StartPos: Position{Line: 1, Column: 0},
		EndPos:   Position{Line: 1, Column: len(src)},
		Kind:     Block,
		Nested:   true,
		Lines:    []int{1},
	}})
}

func TestCRLF(t *testing.T) {
	src := "a//x\r\nb"
	got := All(src, Options{})
	testutil.AssertEqual(t, got, []Comment{{
		Start:    1,
		End:      4,
		StartPos: Position{Line: 1, Column: 1},
		EndPos:   Position{Line: 1, Column: 4},
		Kind:     SingleLine,
		Lines:    []int{1},
	}})
	if pos := PositionOf(src, 6); pos != (Position{Line: 2, Column: 0}) {
		t.Fatalf("position mismatch: got=%+v want=2:0", pos)
	}

	block := "a/*x\r\n\r*/b"
	got = All(block, Options{})
	testutil.AssertEqual(t, got, []Comment{{
		Start:    1,
		End:      9,
		StartPos: Position{Line: 1, Column: 1},
		EndPos:   Position{Line: 3, Column: 2},
		Kind:     Block,
		Lines:    []int{1, 2, 3},
	}})
}

func TestPositionOf(t *testing.T) {
	src := "// é\n/* ü */\r\nx"
	cases := []struct {
		off  int
		want Position
	}{
		{0, Position{1, 0}},
		{5, Position{1, 4}},
		{6, Position{2, 0}},
		{14, Position{2, 7}},
		{15, Position{3, 0}},
		{16, Position{3, 0}},
		{17, Position{3, 1}},
		{-3, Position{1, 0}},
		{100, Position{3, 1}},
	}
	for _, tc := range cases {
		if got := PositionOf(src, tc.off); got != tc.want {
			t.Fatalf("PositionOf(%d) mismatch: got=%+v want=%+v", tc.off, got, tc.want)
		}
	}

	got := All(src, Options{})
	if len(got) != 2 {
		t.Fatalf("want 2 spans, got %s", format(src, got))
	}
	if got[0].EndPos != (Position{1, 4}) || got[1].EndPos != (Position{2, 7}) {
		t.Fatalf("columns must count characters: %s", format(src, got))
	}
}

func TestHashbangOnlyAtStart(t *testing.T) {
	src := "#!/usr/bin/env node\ncode"
	got := All(src, Options{})
	if len(got) != 1 || got[0].Kind != Hashbang || got[0].Start != 0 || got[0].End != 20 {
		t.Fatalf("hashbang mismatch: %s", format(src, got))
	}
	if got := Comments(src, 5, len(src), Options{}); len(got) != 0 {
		t.Fatalf("hashbang outside offset 0: %s", format(src, got))
	}
	if got := All("x\n#!/bin/sh", Options{}); len(got) != 0 {
		t.Fatalf("hashbang on a later line: %v", got)
	}
}

func TestHashbangTakesLineBreak(t *testing.T) {
	src := "#!x\r\ny"
	want := []Comment{{Start: 0, End: 5, StartPos: Position{1, 0}, EndPos: Position{2, 0}, Kind: Hashbang, Lines: []int{1}}}
	testutil.AssertEqual(t, All(src, Options{}), want)

	// a window ending inside CRLF keeps the break out
	got := Comments(src, 0, 4, Options{})
	if len(got) != 1 || got[0].End != 3 {
		t.Fatalf("hashbang mismatch: %s", format(src, got))
	}
	if got := All("#!x", Options{}); len(got) != 1 || got[0].End != 3 {
		t.Fatalf("hashbang without line break: %v", got)
	}
}

func TestStringEndsAtLineBreak(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"unclosed quote", "x = 'it\n// real\n", []string{"// real"}},
		{"double quote", "a(\"b\n/* c */)", []string{"/* c */"}},
		{"line continuation", "x = 'a\\\n// still string'\n// c", []string{"// c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, c := range All(tc.src, Options{}) {
				got = append(got, c.Text(tc.src))
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestUnterminated(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Comment
	}{
		{
			name: "block",
			src:  "/* open",
			want: Comment{Start: 0, End: 7, StartPos: Position{1, 0}, EndPos: Position{1, 7}, Kind: Block, Unterminated: true, Lines: []int{1}},
		},
		{
			name: "jsdoc",
			src:  "x /**",
			want: Comment{Start: 2, End: 5, StartPos: Position{1, 2}, EndPos: Position{1, 3}, Kind: JSDoc, Unterminated: true, Lines: []int{1}},
		},
		{
			name: "html",
			src:  "<!-- a\nb",
			want: Comment{Start: 0, End: 8, StartPos: Position{1, 0}, EndPos: Position{2, 8}, Kind: HTML, Unterminated: true, Lines: []int{1, 2}},
		},
		{
			name: "string",
			src:  `x = "abc`,
			want: Comment{Start: 4, End: 8, StartPos: Position{1, 4}, EndPos: Position{1, 4}, Kind: UnterminatedString, Unterminated: true, Lines: []int{1}},
		},
		{
			name: "regex",
			src:  "x = /ab",
			want: Comment{Start: 4, End: 7, StartPos: Position{1, 4}, EndPos: Position{1, 3}, Kind: UnterminatedRegex, Unterminated: true, Lines: []int{1}},
		},
		{
			// the end column counts every character from the start
			name: "template",
			src:  "a = `x\ny",
			want: Comment{Start: 4, End: 8, StartPos: Position{1, 4}, EndPos: Position{2, 4}, Kind: UnterminatedTemplate, Unterminated: true, Lines: []int{1, 2}},
		},
		{
			name: "block in an open template hole",
			src:  "`a ${ /* c */ x",
			want: Comment{Start: 0, End: 15, StartPos: Position{1, 0}, EndPos: Position{1, 15}, Kind: UnterminatedTemplate, Unterminated: true, Lines: []int{1}},
		},
		{
			name: "line comment in an open template hole",
			src:  "`a ${ // c\n x",
			want: Comment{Start: 0, End: 13, StartPos: Position{1, 0}, EndPos: Position{2, 13}, Kind: UnterminatedTemplate, Unterminated: true, Lines: []int{1, 2}},
		},
		{
			name: "outermost template wins",
			src:  "`a ${ \"b",
			want: Comment{Start: 0, End: 8, StartPos: Position{1, 0}, EndPos: Position{1, 8}, Kind: UnterminatedTemplate, Unterminated: true, Lines: []int{1}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertEqual(t, All(tc.src, Options{}), []Comment{tc.want})
		})
	}
}

func TestUnterminatedNeedsEndOfSource(t *testing.T) {
	src := "x = 'abc /* in string\ny"
	if got := Comments(src, 0, 10, Options{}); len(got) != 0 {
		t.Fatalf("narrow window reported: %s", format(src, got))
	}
	block := "/* abc */"
	if got := Comments(block, 0, 5, Options{}); len(got) != 0 {
		t.Fatalf("comment cut by window reported: %s", format(block, got))
	}
	if got := All(`x = "abc`, Options{CommentTypes: SingleLineComments}); len(got) != 0 {
		t.Fatalf("unterminated string passed a singleline filter: %v", got)
	}
}

func TestCommentTypesFilter(t *testing.T) {
	src := "// a\n/* b */\n/** c */\n<!-- d -->\n"
	cases := []struct {
		types CommentTypes
		want  []Kind
	}{
		{AllComments, []Kind{SingleLine, Block, JSDoc, HTML}},
		{"", []Kind{SingleLine, Block, JSDoc, HTML}},
		{SingleLineComments, []Kind{SingleLine}},
		{MultilineComments, []Kind{Block, JSDoc}},
		{JSDocComments, []Kind{JSDoc}},
		{HTMLComments, []Kind{HTML}},
	}
	for _, tc := range cases {
		t.Run(string(tc.types), func(t *testing.T) {
			var kinds []Kind
			for _, c := range All(src, Options{CommentTypes: tc.types}) {
				kinds = append(kinds, c.Kind)
			}
			testutil.AssertEqual(t, kinds, tc.want)
		})
	}

	// a filtered block still hides its contents
	got := All("/* // x */", Options{CommentTypes: SingleLineComments})
	if len(got) != 0 {
		t.Fatalf("filtered block leaked: %v", got)
	}
}

func TestWindow(t *testing.T) {
	src := "a /* b */ c // d"
	got := Comments(src, 2, 11, Options{})
	if len(got) != 1 || got[0].Start != 2 || got[0].End != 9 {
		t.Fatalf("window mismatch: %s", format(src, got))
	}

	for _, r := range [][2]int{{-1, 2}, {3, 2}, {0, len(src) + 1}} {
		if got := Comments(src, r[0], r[1], Options{}); got != nil {
			t.Fatalf("invalid range %v: got %v", r, got)
		}
	}
	if got := Comments("", 0, 0, Options{}); len(got) != 0 {
		t.Fatalf("empty source: %v", got)
	}
}

func TestJSX(t *testing.T) {
	t.Run("fragment", func(t *testing.T) {
		src := "<>{/* a */}</>"
		got := All(src, Options{})
		if len(got) != 1 || got[0].Text(src) != "/* a */" || got[0].Nested {
			t.Fatalf("fragment mismatch: %s", format(src, got))
		}
	})
	t.Run("type parameters", func(t *testing.T) {
		src := "const f = <T,>(x: T) => x // c"
		got := All(src, Options{})
		if len(got) != 1 || got[0].Text(src) != "// c" {
			t.Fatalf("generic arrow mismatch: %s", format(src, got))
		}
	})
	t.Run("comparison", func(t *testing.T) {
		src := "if (a < b) { c() } // d"
		got := All(src, Options{})
		if len(got) != 1 || got[0].Text(src) != "// d" {
			t.Fatalf("comparison mismatch: %s", format(src, got))
		}
	})
	t.Run("division after element", func(t *testing.T) {
		src := "x = <b/> / 2 // e"
		got := All(src, Options{})
		if len(got) != 1 || got[0].Text(src) != "// e" {
			t.Fatalf("element value mismatch: %s", format(src, got))
		}
	})
	t.Run("comment in tag", func(t *testing.T) {
		src := "<div /* a */ id=\"x\">y</div>"
		got := All(src, Options{})
		if len(got) != 1 || got[0].Text(src) != "/* a */" {
			t.Fatalf("tag comment mismatch: %s", format(src, got))
		}
	})
}

func TestRegexHeuristics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"after return", "return /\\/*/g // x", []string{"// x"}},
		{"after typeof", "typeof /a/ // x", []string{"// x"}},
		{"after paren", "(a) / b // x", []string{"// x"}},
		{"flags", "x = /a/gimsuy // x", []string{"// x"}},
		{"division across lines", "a = b\n/ c /* x */", []string{"/* x */"}},
		{"no regex over newline", "x = / a\n// y", []string{"// y"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, c := range All(tc.src, Options{}) {
				got = append(got, c.Text(tc.src))
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

var corpus = []string{
	"",
	"x",
	"// a\n// b\n/* c */ d /** e */",
	"const a = `x ${ `y ${ /* z */ 1 }` } // w`; // v",
	"<A b={/* c */ 1}>{// d\n}</A /* e */>",
	"/* /* */ */ <!-- <!-- --> --> #! x",
	"x = /[/]/.test('//') /* ok */",
	"class K { *g() {} /* m */ }",
	"a\r\nb // c\r\n/* d\r\n*/",
	"`unterminated ${ x",
	"'unterminated /* x",
	"/* unterminated // x",
	"`a ${ /* c */ x",
	"`a ${ // c\n x",
	"#!/usr/bin/env node\ncode // x",
	"#!x\r\n/* y */",
	"x = 'it\n// real\n",
}

func TestProperties(t *testing.T) {
	for _, src := range corpus {
		for _, opts := range []Options{{}, {TemplateText: true}, {DisableJSX: true}} {
			first := All(src, opts)
			testutil.AssertEqual(t, All(src, opts), first)

			for i, c := range first {
				if c.Start < 0 || c.End > len(src) || c.Start > c.End {
					t.Fatalf("%q: span out of range: %+v", src, c)
				}
				if i > 0 && first[i-1].End > c.Start {
					t.Fatalf("%q: overlapping spans %+v and %+v", src, first[i-1], c)
				}
				if c.StartPos != PositionOf(src, c.Start) {
					t.Fatalf("%q: start position mismatch: got=%+v want=%+v", src, c.StartPos, PositionOf(src, c.Start))
				}
				last := c.EndPos.Line
				if c.Kind == Hashbang {
					last = c.StartPos.Line
				}
				if len(c.Lines) == 0 || c.Lines[0] != c.StartPos.Line || c.Lines[len(c.Lines)-1] != last {
					t.Fatalf("%q: lines mismatch: %+v", src, c)
				}
			}

			for a := 0; a <= len(src); a++ {
				for b := a; b <= len(src); b++ {
					for _, c := range Comments(src, a, b, opts) {
						if c.Unterminated || c.Kind == Hashbang {
							continue
						}
						if c.Start < a || c.End > b {
							t.Fatalf("%q [%d,%d): span escapes window: %+v", src, a, b, c)
						}
					}
				}
			}
		}
	}
}

func TestParseKind(t *testing.T) {
	for k := SingleLine; k <= UnterminatedTemplate; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) mismatch: got=%v err=%v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ParseCommentTypes("lines"); err == nil {
		t.Fatal("expected error")
	}
	if ct, err := ParseCommentTypes(" JSDoc "); err != nil || ct != JSDocComments {
		t.Fatalf("ParseCommentTypes mismatch: got=%v err=%v", ct, err)
	}
}
