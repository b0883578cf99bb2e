package web

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/engine/opts"
	"github.com/phyten/jscomments/internal/scan"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	src := "// <script>alert('xss')</script> & <>\nconst s = '/* no */';\n"
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte(src), 0o644); err != nil {
		t.Fatalf("ファイルの作成に失敗しました: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.ts"), []byte("let x = <T>y; /* cast */\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	def := opts.Defaults(dir)
	def.NoGit = true
	return &Server{Defaults: def}
}

func TestAPIScanHandlerはJSONをエスケープせず返す(t *testing.T) {
	h := newTestServer(t).Handler()
	rr := get(t, h, "/api/scan?with_text=1")
	if rr.Code != http.StatusOK {
		t.Fatalf("予期しないステータス: %d\n%s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), `\u003c`) {
		t.Fatalf("HTML characters should not be escaped: %s", rr.Body.String())
	}
	var res engine.Result
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("JSONのデコードに失敗しました: %v", err)
	}
	if res.Total != 2 || len(res.Items) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := res.Items[0].Text; got != "// <script>alert('xss')</script> & <>" {
		t.Fatalf("コメントがエスケープされて返却されました: %q", got)
	}
	if res.Items[1].File != "b.ts" || res.Items[1].Kind != scan.Block {
		t.Fatalf("unexpected second item: %+v", res.Items[1])
	}
}

func TestAPIScanHandlerAppliesQuery(t *testing.T) {
	h := newTestServer(t).Handler()
	rr := get(t, h, "/api/scan?detect_langs=ts&comment_types=multiline")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d\n%s", rr.Code, rr.Body.String())
	}
	var res engine.Result
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Items[0].File != "b.ts" || res.Items[0].Text != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAPIScanHandlerRejectsBadParams(t *testing.T) {
	h := newTestServer(t).Handler()
	for _, q := range []string{"jobs=0", "jobs=abc", "path_regex=%5B", "comment_types=bogus", "with_text=maybe", "detect_langs=go"} {
		rr := get(t, h, "/api/scan?"+q)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", q, rr.Code, rr.Body.String())
		}
	}
}

func TestAPIScanStreamEmitsProgressAndResult(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/scan/stream", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to call stream endpoint: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	var (
		event     string
		stages    []string
		gotResult bool
	)
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			payload := strings.TrimPrefix(line, "data: ")
			switch event {
			case "progress":
				var snap struct {
					Stage string `json:"stage"`
				}
				if err := json.Unmarshal([]byte(payload), &snap); err != nil {
					t.Fatalf("failed to decode progress payload: %v (raw=%s)", err, payload)
				}
				stages = append(stages, snap.Stage)
			case "result":
				var res engine.Result
				if err := json.Unmarshal([]byte(payload), &res); err != nil {
					t.Fatalf("failed to decode result payload: %v", err)
				}
				if res.Total != 2 {
					t.Fatalf("unexpected total: %d", res.Total)
				}
				gotResult = true
			case "error":
				t.Fatalf("stream returned error event: %s", payload)
			}
		}
	}
	if !gotResult {
		t.Fatal("result event not received")
	}
	if len(stages) == 0 || stages[0] != "list" {
		t.Fatalf("unexpected progress stages: %v", stages)
	}
}

func postComments(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	return rr
}

func TestCommentsHandler(t *testing.T) {
	h := (&Server{}).Handler()
	rr := postComments(t, h, `{"source":"let a = 1; // x\n/* <y> */","with_text":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d\n%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Language string `json:"language"`
		Comments []struct {
			Start         int           `json:"start"`
			End           int           `json:"end"`
			Kind          string        `json:"kind"`
			StartPosition scan.Position `json:"start_position"`
			Text          string        `json:"text"`
		} `json:"comments"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Language != "javascript" || len(resp.Comments) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	first, second := resp.Comments[0], resp.Comments[1]
	if first.Kind != "singleline" || first.Start != 11 || first.End != 15 || first.Text != "// x" {
		t.Fatalf("unexpected first comment: %+v", first)
	}
	if second.Kind != "block" || second.StartPosition != (scan.Position{Line: 2, Column: 0}) || second.Text != "/* <y> */" {
		t.Fatalf("unexpected second comment: %+v", second)
	}

	rr = postComments(t, h, `{"source":"let a = 1; // x\n","previous_token_end":0,"next_token_start":10}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"comments":[]`) {
		t.Fatalf("window before the comment should be empty: %d %s", rr.Code, rr.Body.String())
	}
}

func TestCommentsHandlerRejectsBadInput(t *testing.T) {
	h := (&Server{}).Handler()
	for _, body := range []string{
		`{"source":"x","language":"go"}`,
		`{"source":"x","comment_types":"bogus"}`,
		`{"source":"x","previous_token_end":2}`,
		`{"source":"x","next_token_start":5}`,
		`{"source":"x","unknown":1}`,
		`not json`,
	} {
		if rr := postComments(t, h, body); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rr.Code)
		}
	}
	if rr := get(t, h, "/api/comments"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET should be rejected, got %d", rr.Code)
	}
}
