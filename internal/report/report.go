// Package report aggregates per-file execution results into an ordered
// run report and keeps recent runs retrievable by run ID.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gistrun/gistrun/internal/executor"
)

// Report is the ordered outcome of one gistrun invocation.
type Report struct {
	ID      string            `json:"id"`  // unique identifier for this run
	Ref     string            `json:"ref"` // owner/gist-name
	Results []executor.Result `json:"results"`
}

// New creates an empty report for ref with a fresh run ID.
func New(ref string) *Report {
	return &Report{ID: uuid.New().String(), Ref: ref}
}

// Append records the next file's result. Input order is preserved.
func (r *Report) Append(res executor.Result) {
	r.Results = append(r.Results, res)
}

// Total sums the elapsed time across all results.
func (r *Report) Total() time.Duration {
	var total time.Duration
	for _, res := range r.Results {
		total += res.Elapsed
	}
	return total
}

// Render formats the report, one block per result in input order, with a
// trailing total.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("Execution Report:\n")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "- Command: %s\n", res.Command)
		fmt.Fprintf(&b, "  Outcome: %s\n", res.Outcome)
		fmt.Fprintf(&b, "  Execution Time: %.2f seconds\n", res.Elapsed.Seconds())
	}
	fmt.Fprintf(&b, "\nTotal Execution Time: %.2f seconds\n", r.Total().Seconds())
	return b.String()
}
