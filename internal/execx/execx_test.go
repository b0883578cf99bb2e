package execx

import (
	"context"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

func TestSplitNUL(t *testing.T) {
	got := SplitNUL([]byte("a.js\x00dir/b.ts\x00\x00"))
	want := []string{"a.js", "dir/b.ts"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitNUL mismatch: got=%v want=%v", got, want)
	}
	if SplitNUL(nil) != nil {
		t.Fatal("empty output should yield nil")
	}
}

func TestCommandRunnerNotFound(t *testing.T) {
	_, _, err := DefaultRunner().Run(context.Background(), "", "jscomments-no-such-command")
	if err == nil {
		t.Fatal("存在しないコマンドはエラーになるべきです")
	}
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound should detect a missing binary: %v", err)
	}
	if ExitCode(err) != -1 {
		t.Fatalf("missing binary has no exit code: %d", ExitCode(err))
	}
}

func TestCommandRunnerReportsStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, _, err := CommandRunner{}.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	if ExitCode(err) != 3 {
		t.Fatalf("exit code mismatch: got=%d want=3", ExitCode(err))
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("stderr should be part of the message: %v", err)
	}
}
