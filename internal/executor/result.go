package executor

import "time"

// Outcome is the terminal state of one file's execution.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
	TimedOut  Outcome = "timed_out"
	Skipped   Outcome = "skipped"
)

// Result holds the outcome of executing one gist file.
type Result struct {
	File    string  `json:"file"`    // gist filename
	Command string  `json:"command"` // command plus the gist filename, as displayed
	Outcome Outcome `json:"outcome"`

	// Elapsed is the wall-clock duration of the invocation. It is zero
	// for Skipped and for TimedOut results.
	Elapsed time.Duration `json:"elapsed"`

	ExitCode  int    `json:"exit_code,omitempty"`
	Stdout    []byte `json:"stdout,omitempty"`
	Stderr    []byte `json:"stderr,omitempty"`
	Truncated bool   `json:"truncated,omitempty"` // output exceeded the size cap
	Detail    string `json:"detail,omitempty"`    // launch or termination detail
}
