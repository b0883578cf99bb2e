package model

import "github.com/phyten/jscomments/internal/scan"

// Span は 1 件のコメント範囲を行・桁・バイトオフセットで表します。
// 行は 1 始まり、桁は行頭からの文字数（0 始まり）です。
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
	ByteStart int `json:"byte_start"`
	ByteEnd   int `json:"byte_end"`
}

// Comment はファイル内で見つかった 1 件のコメント（または閉じていない構文）を表します。
type Comment struct {
	File         string    `json:"file"`
	Lang         string    `json:"lang,omitempty"`
	Kind         scan.Kind `json:"kind"`
	Nested       bool      `json:"nested,omitempty"`
	Unterminated bool      `json:"unterminated,omitempty"`
	Lines        []int     `json:"lines"`
	Text         string    `json:"text,omitempty"`
	URL          string    `json:"url,omitempty"`
	Span         Span      `json:"span"`
}

// SpanOf は走査結果の位置情報を Span に写します。
func SpanOf(c scan.Comment) Span {
	return Span{
		StartLine: c.StartPos.Line,
		StartCol:  c.StartPos.Column,
		EndLine:   c.EndPos.Line,
		EndCol:    c.EndPos.Column,
		ByteStart: c.Start,
		ByteEnd:   c.End,
	}
}

// FromScan は scan.Comment をファイル単位のレコードに変換します。
// withText が false の場合は本文を持ちません。
func FromScan(file, lang, src string, c scan.Comment, withText bool) Comment {
	out := Comment{
		File:         file,
		Lang:         lang,
		Kind:         c.Kind,
		Nested:       c.Nested,
		Unterminated: c.Unterminated,
		Lines:        c.Lines,
		Span:         SpanOf(c),
	}
	if withText {
		out.Text = c.Text(src)
	}
	return out
}

// Line returns the first line of the comment.
func (c Comment) Line() int { return c.Span.StartLine }
