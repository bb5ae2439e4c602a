// Package executor runs gist files one at a time through their interpreter
// commands, with a scoped temporary file, a bounded wait, and output size
// limits.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"
	"time"

	"github.com/gistrun/gistrun/internal/gist"
	"github.com/gistrun/gistrun/internal/resolver"
)

// DefaultMaxOutput caps each captured stream when MaxOutput is unset.
const DefaultMaxOutput = 1 << 20 // 1 MB

// Executor materialises gist files to temporary files and invokes their
// commands. The zero value runs with no timeout and the default output cap.
type Executor struct {
	Timeout   time.Duration // per file; <= 0 means unbounded
	MaxOutput int           // captured bytes per stream; <= 0 means DefaultMaxOutput
	TempDir   string        // defaults to the system temp dir
	DryRun    bool          // compute commands without launching processes
}

// Execute runs one file through command. The skip sentinel and dry-run
// mode short-circuit to Skipped without launching a process; dry-run still
// reports the full command string. The temporary file is removed on every
// exit path, and no outcome is ever returned as an error: failures and
// timeouts are data for the report.
func (x *Executor) Execute(ctx context.Context, file gist.File, command string) Result {
	display := command + " " + file.Name
	if resolver.IsSkip(command) || x.DryRun {
		return Result{File: file.Name, Command: display, Outcome: Skipped}
	}
	return x.run(ctx, file, command, display)
}

func (x *Executor) run(ctx context.Context, file gist.File, command, display string) Result {
	res := Result{File: file.Name, Command: display}

	tmp, err := writeTemp(x.TempDir, file)
	if err != nil {
		res.Outcome = Failed
		res.ExitCode = -1
		res.Detail = err.Error()
		return res
	}
	defer os.Remove(tmp)

	if x.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.Timeout)
		defer cancel()
	}

	// Command strings are split on whitespace; the temporary file path is
	// the final argument. No shell is involved.
	argv := append(strings.Fields(command), tmp)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	maxOutput := x.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: maxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: maxOutput}

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	res.Truncated = stdout.Len() >= maxOutput || stderr.Len() >= maxOutput

	if runErr == nil {
		res.Outcome = Succeeded
		res.Elapsed = elapsed
		return res
	}

	if ctx.Err() == context.DeadlineExceeded {
		// Timed-out runs record zero elapsed time.
		res.Outcome = TimedOut
		res.Detail = fmt.Sprintf("timed out after %s", x.Timeout)
		return res
	}

	res.Outcome = Failed
	res.Elapsed = elapsed
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Detail = fmt.Sprintf("exit status %d", res.ExitCode)
	} else {
		// Binary not found or other launch error.
		res.ExitCode = -1
		res.Detail = runErr.Error()
	}
	return res
}

// writeTemp writes the file's content to a uniquely named temporary file,
// keeping the extension so interpreters that care about it behave.
func writeTemp(dir string, file gist.File) (string, error) {
	f, err := os.CreateTemp(dir, "gistrun-*"+path.Ext(file.Name))
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	_, werr := f.Write(file.Content)
	cerr := f.Close()
	if werr != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file: %w", werr)
	}
	if cerr != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing temp file: %w", cerr)
	}
	return f.Name(), nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
