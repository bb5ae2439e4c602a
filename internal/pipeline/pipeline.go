// Package pipeline orchestrates one gistrun invocation: fetch, optional
// digest verification, command resolution, sequential execution, and
// report aggregation. It is consumed by both the CLI and the MCP server.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"

	"github.com/gistrun/gistrun/internal/digest"
	"github.com/gistrun/gistrun/internal/executor"
	"github.com/gistrun/gistrun/internal/gist"
	"github.com/gistrun/gistrun/internal/report"
	"github.com/gistrun/gistrun/internal/resolver"
)

// Fetcher retrieves gists. Implemented by gist.Client.
type Fetcher interface {
	Find(ctx context.Context, ref gist.Reference) (*gist.Gist, error)
}

// FileExecutor runs one file through its command. Implemented by
// executor.Executor.
type FileExecutor interface {
	Execute(ctx context.Context, file gist.File, command string) executor.Result
}

// Engine holds shared dependencies for a run.
type Engine struct {
	Fetcher  Fetcher
	Resolver *resolver.Resolver
	Executor FileExecutor
	Store    report.Store // optional; nil disables run retrieval
}

// Request describes one exec invocation.
type Request struct {
	Ref       gist.Reference
	Overrides []string // ordered commands, one per file; empty selects the mapping table

	// Digest is the expected digest of the combined contents; empty
	// disables verification. A mismatch aborts before any file executes.
	Digest   string
	HashFunc digest.Algorithm

	// OnCountMismatch decides whether to proceed when the override count
	// does not match the file count. nil aborts. The engine itself never
	// reads interactive input.
	OnCountMismatch func(*resolver.CountMismatchError) bool

	// Confirm approves the plan before anything executes. nil approves.
	Confirm func(resolver.Plan) bool
}

// ErrAborted is returned when the caller declines a decision point.
var ErrAborted = errors.New("aborted")

// Run executes the pipeline and returns the aggregated report. Per-file
// failures and timeouts are report data; they never abort the run or
// surface as errors.
func (e *Engine) Run(ctx context.Context, req Request) (*report.Report, error) {
	logger := pslog.Ctx(ctx)

	g, err := e.Fetcher.Find(ctx, req.Ref)
	if err != nil {
		return nil, err
	}
	logger.Debug("gist fetched", "ref", req.Ref.String(), "files", len(g.Files))

	if req.Digest != "" {
		actual, err := digest.Compute(g.Files, req.HashFunc)
		if err != nil {
			return nil, err
		}
		if err := digest.Verify(req.Digest, actual); err != nil {
			return nil, err
		}
	}

	plan, err := e.resolve(g.Files, req)
	if err != nil {
		return nil, err
	}
	for _, step := range plan {
		if step.Unknown {
			logger.Warn("no command mapped for file, skipping", "file", step.File.Name)
		}
	}

	if req.Confirm != nil && !req.Confirm(plan) {
		return nil, ErrAborted
	}

	rep := report.New(req.Ref.String())
	for _, step := range plan {
		res := e.Executor.Execute(ctx, step.File, step.Command)
		if res.Outcome == executor.Failed || res.Outcome == executor.TimedOut {
			logger.Warn("file execution did not succeed",
				"file", res.File, "outcome", string(res.Outcome), "detail", res.Detail)
		}
		rep.Append(res)
	}

	if e.Store != nil {
		if err := e.Store.Save(rep); err != nil {
			logger.With("err", err).Warn("saving report")
		}
	}
	return rep, nil
}

func (e *Engine) resolve(files []gist.File, req Request) (resolver.Plan, error) {
	plan, err := e.Resolver.Resolve(files, req.Overrides)
	if err == nil {
		return plan, nil
	}
	var mismatch *resolver.CountMismatchError
	if !errors.As(err, &mismatch) {
		return nil, err
	}
	if req.OnCountMismatch == nil || !req.OnCountMismatch(mismatch) {
		return nil, fmt.Errorf("%w: %s", ErrAborted, mismatch.Error())
	}
	return e.Resolver.ResolvePartial(files, req.Overrides), nil
}
