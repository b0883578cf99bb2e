//go:build e2e

package web

import (
	"context"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

func TestRenderはHTMLエスケープでXSSを防止する(t *testing.T) {
	if !hasBrowser() {
		t.Skip("Chrome/Chromiumが見つからないためスキップします")
	}

	srv := httptest.NewServer((&Server{}).Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	fixture := `({
		items: [{
			file: 'dir/<file>&.js',
			kind: 'block"><img src=x onerror=alert(1)>',
			lines: [3, 4],
			text: '/* hello <img src=x onerror=alert(1)> & <> */',
			span: {start_line: 3, start_col: 2},
		}],
		errors: [{file: 'err<file>&', stage: 'decode', message: 'failed <script>alert(1)</script>'}],
	})`

	var location, lines, text, textHTML, kindHTML, errText string
	var nodeCount int
	err := chromedp.Run(ctx,
		chromedp.Navigate(srv.URL),
		chromedp.WaitVisible(`#out`, chromedp.ByID),
		chromedp.Evaluate(`document.getElementById('out').innerHTML = render(`+fixture+`);`, nil),
		chromedp.Text(`#out tbody tr td:nth-child(2) code`, &location, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(3)`, &lines, chromedp.ByQuery),
		chromedp.Text(`#out tbody tr td:nth-child(4)`, &text, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(4)`, &textHTML, chromedp.ByQuery),
		chromedp.InnerHTML(`#out tbody tr td:nth-child(1)`, &kindHTML, chromedp.ByQuery),
		chromedp.Text(`#out li.err`, &errText, chromedp.ByQuery),
		chromedp.Evaluate(`document.querySelectorAll('#out img, #out script').length`, &nodeCount),
	)
	if err != nil {
		t.Fatalf("chromedpの操作に失敗しました: %v", err)
	}

	if location != "dir/<file>&.js:3:2" {
		t.Fatalf("ロケーションが期待値と異なります: %q", location)
	}
	if lines != "2" {
		t.Fatalf("行数が期待値と異なります: %q", lines)
	}
	if !strings.Contains(text, "<img src=x onerror=alert(1)>") {
		t.Fatalf("コメントのテキストが期待値と異なります: %q", text)
	}
	if !strings.Contains(textHTML, "&lt;img") || !strings.Contains(textHTML, "&amp;") {
		t.Fatalf("コメントセルがエスケープされていません: %q", textHTML)
	}
	if strings.Contains(kindHTML, "kind-block") {
		t.Fatalf("不正な種別がクラス名に使われています: %q", kindHTML)
	}
	if !strings.Contains(errText, "<script>") {
		t.Fatalf("エラーメッセージが期待値と異なります: %q", errText)
	}
	if nodeCount != 0 {
		t.Fatalf("危険なノードが挿入されています: %d", nodeCount)
	}
}

func hasBrowser() bool {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
