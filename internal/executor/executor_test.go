package executor

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gistrun/gistrun/internal/gist"
)

// newTestExecutor scopes temp files to the test so leftover files are
// detectable.
func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	return &Executor{
		Timeout:   10 * time.Second,
		MaxOutput: 1 << 20,
		TempDir:   t.TempDir(),
	}
}

func assertNoTempFiles(t *testing.T, x *Executor) {
	t.Helper()
	entries, err := os.ReadDir(x.TempDir)
	if err != nil {
		t.Fatalf("reading temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d temp files left behind", len(entries))
	}
}

func TestExecute_Success(t *testing.T) {
	x := newTestExecutor(t)
	res := x.Execute(context.Background(), gist.File{Name: "hello.txt", Content: []byte("hello")}, "cat")
	if res.Outcome != Succeeded {
		t.Fatalf("Outcome = %s (%s), want succeeded", res.Outcome, res.Detail)
	}
	if !strings.Contains(string(res.Stdout), "hello") {
		t.Errorf("Stdout = %q, want to contain hello", res.Stdout)
	}
	if res.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", res.Elapsed)
	}
	if res.Command != "cat hello.txt" {
		t.Errorf("Command = %q, want %q", res.Command, "cat hello.txt")
	}
	assertNoTempFiles(t, x)
}

func TestExecute_NonZeroExit(t *testing.T) {
	x := newTestExecutor(t)
	res := x.Execute(context.Background(), gist.File{Name: "fail.sh", Content: []byte("exit 3\n")}, "sh")
	if res.Outcome != Failed {
		t.Fatalf("Outcome = %s, want failed", res.Outcome)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want actual duration for failures", res.Elapsed)
	}
	assertNoTempFiles(t, x)
}

func TestExecute_Timeout(t *testing.T) {
	x := newTestExecutor(t)
	x.Timeout = 100 * time.Millisecond
	res := x.Execute(context.Background(), gist.File{Name: "slow.sh", Content: []byte("sleep 10\n")}, "sh")
	if res.Outcome != TimedOut {
		t.Fatalf("Outcome = %s (%s), want timed_out", res.Outcome, res.Detail)
	}
	if res.Elapsed != 0 {
		t.Errorf("Elapsed = %v, want exactly 0 on timeout", res.Elapsed)
	}
	assertNoTempFiles(t, x)
}

func TestExecute_BinaryNotFound(t *testing.T) {
	x := newTestExecutor(t)
	res := x.Execute(context.Background(), gist.File{Name: "a.py", Content: []byte("print(1)")}, "nonexistent-binary-xyz-123")
	if res.Outcome != Failed {
		t.Fatalf("Outcome = %s, want failed", res.Outcome)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
	if res.Detail == "" {
		t.Error("Detail is empty, want the launch error")
	}
	assertNoTempFiles(t, x)
}

func TestExecute_SkipSentinel(t *testing.T) {
	x := newTestExecutor(t)
	for _, sentinel := range []string{"skip", "SKIP"} {
		res := x.Execute(context.Background(), gist.File{Name: "notes.md", Content: []byte("# hi")}, sentinel)
		if res.Outcome != Skipped {
			t.Errorf("Outcome = %s, want skipped", res.Outcome)
		}
		if res.Elapsed != 0 {
			t.Errorf("Elapsed = %v, want 0", res.Elapsed)
		}
	}
	assertNoTempFiles(t, x)
}

func TestExecute_DryRun(t *testing.T) {
	x := newTestExecutor(t)
	x.DryRun = true
	res := x.Execute(context.Background(), gist.File{Name: "demo.py", Content: []byte("print(1)")}, "python")
	if res.Outcome != Skipped {
		t.Fatalf("Outcome = %s, want skipped", res.Outcome)
	}
	if !strings.HasPrefix(res.Command, "python") {
		t.Errorf("Command = %q, want the would-be invocation", res.Command)
	}
	if res.Elapsed != 0 {
		t.Errorf("Elapsed = %v, want 0", res.Elapsed)
	}
	// No process, no temp file.
	assertNoTempFiles(t, x)
}

func TestExecute_TempFileKeepsExtension(t *testing.T) {
	x := newTestExecutor(t)
	res := x.Execute(context.Background(), gist.File{Name: "self.sh", Content: []byte("echo \"$0\"\n")}, "sh")
	if res.Outcome != Succeeded {
		t.Fatalf("Outcome = %s (%s), want succeeded", res.Outcome, res.Detail)
	}
	if !strings.Contains(strings.TrimSpace(string(res.Stdout)), ".sh") {
		t.Errorf("Stdout = %q, want the temp path to keep .sh", res.Stdout)
	}
	assertNoTempFiles(t, x)
}

func TestExecute_OutputTruncation(t *testing.T) {
	x := newTestExecutor(t)
	x.MaxOutput = 100
	res := x.Execute(context.Background(), gist.File{Name: "big.sh", Content: []byte("head -c 200 /dev/zero\n")}, "sh")
	if res.Outcome != Succeeded {
		t.Fatalf("Outcome = %s (%s), want succeeded", res.Outcome, res.Detail)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(res.Stdout) > x.MaxOutput {
		t.Errorf("len(Stdout) = %d, want <= %d", len(res.Stdout), x.MaxOutput)
	}
	assertNoTempFiles(t, x)
}
