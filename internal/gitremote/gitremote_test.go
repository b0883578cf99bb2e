package gitremote

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Info
	}{
		{"git@github.com:owner/repo.git", Info{Host: "github.com", Owner: "owner", Repo: "repo"}},
		{"https://example.com/org/project.git", Info{Host: "example.com", Owner: "org", Repo: "project", Scheme: "https"}},
		{"https://ghes.local:8443/org/project.git", Info{Host: "ghes.local:8443", Owner: "org", Repo: "project", Scheme: "https"}},
		{"http://git.example.com:8080/org/project.git", Info{Host: "git.example.com:8080", Owner: "org", Repo: "project", Scheme: "http"}},
		{"ssh://git@ghes.local:2222/org/project.git", Info{Host: "ghes.local:2222", Owner: "org", Repo: "project"}},
		{"https://deploy@github.example.com/team/repo/", Info{Host: "github.example.com", Owner: "team", Repo: "repo", Scheme: "https"}},
		{"https://example.com/org\\repo.git", Info{Host: "example.com", Owner: "org", Repo: "repo", Scheme: "https"}},
		{"git@gitlab.com:group/sub/app.git", Info{Host: "gitlab.com", Owner: "sub", Repo: "app"}},
	}
	for _, tc := range tests {
		got, err := Parse(tc.raw)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) mismatch: got=%+v want=%+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com/a/b", "/local/path/repo", "git@github.com:repo.git", "https:///owner/repo"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("Parse(%q) should fail", raw)
		}
	}
}

func TestSchemes(t *testing.T) {
	ssh := Info{Host: "github.com", Owner: "o", Repo: "r"}
	if got := ssh.NormalizedScheme(); got != "https" {
		t.Fatalf("ssh remotes should link over https: %s", got)
	}
	if got := ssh.WithScheme("HTTP").WebURL(); got != "http://github.com/o/r" {
		t.Fatalf("override mismatch: %s", got)
	}
	if got := ssh.WithScheme("ftp").NormalizedScheme(); got != "https" {
		t.Fatalf("invalid override should be ignored: %s", got)
	}
}

func TestBlobPathEscapes(t *testing.T) {
	got := BlobPath("dir/sub dir/file name.js")
	want := "dir/sub%20dir/file%20name.js"
	if got != want {
		t.Fatalf("BlobPath mismatch: got=%s want=%s", got, want)
	}
}

type fakeRunner map[string]string

func (f fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	key := name + " " + strings.Join(args, " ")
	out, ok := f[key]
	if !ok {
		return nil, nil, fmt.Errorf("unexpected command: %s", key)
	}
	return []byte(out), nil, nil
}

func TestDetectUsesNamedRemote(t *testing.T) {
	runner := fakeRunner{
		"git config --get remote.origin.url":   "https://github.com/example/default.git\n",
		"git config --get remote.upstream.url": "ssh://git@github.example.com:2222/team/demo.git\n",
	}
	info, err := Detect(context.Background(), runner, ".", "upstream")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if info.Host != "github.example.com:2222" || info.Owner != "team" || info.Repo != "demo" {
		t.Fatalf("unexpected info: %+v", info)
	}
	info, err = Detect(context.Background(), runner, ".", "")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if info.Repo != "default" {
		t.Fatalf("empty remote should mean origin: %+v", info)
	}
	if _, err := Detect(context.Background(), runner, ".", "missing"); err == nil {
		t.Fatal("unknown remote should fail")
	}
}

func TestHead(t *testing.T) {
	runner := fakeRunner{"git rev-parse --verify HEAD": "0123abcd\n"}
	sha, err := Head(context.Background(), runner, ".")
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if sha != "0123abcd" {
		t.Fatalf("sha mismatch: %q", sha)
	}
	if _, err := Head(context.Background(), fakeRunner{"git rev-parse --verify HEAD": "\n"}, "."); err == nil {
		t.Fatal("empty output should fail")
	}
}
