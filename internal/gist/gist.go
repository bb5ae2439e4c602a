// Package gist provides gist reference validation and a client for the
// GitHub Gist API.
package gist

import (
	"fmt"
	"regexp"
	"strings"
)

// Reference identifies a gist by its owner and its description name.
type Reference struct {
	Owner string
	Name  string
}

func (r Reference) String() string {
	return r.Owner + "/" + r.Name
}

// FormatError reports a malformed reference, owner, or gist name.
type FormatError struct {
	Field  string // "reference", "owner", or "name"
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// MaxOwnerLen is the maximum length of a GitHub username.
const MaxOwnerLen = 39

var (
	// Alphanumeric with single hyphens: no leading, trailing, or
	// consecutive hyphens.
	ownerPattern = regexp.MustCompile(`^[a-zA-Z0-9]+(-[a-zA-Z0-9]+)*$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ParseReference parses and validates an "owner/gist-name" argument.
// The argument must contain exactly one slash with a non-empty, well-formed
// owner and name on either side. Existence is not checked here.
func ParseReference(raw string) (Reference, error) {
	if strings.Count(raw, "/") != 1 {
		return Reference{}, &FormatError{Field: "reference", Value: raw, Reason: "expected format owner/gist-name"}
	}
	owner, name, _ := strings.Cut(raw, "/")
	if owner == "" || name == "" {
		return Reference{}, &FormatError{Field: "reference", Value: raw, Reason: "owner and gist name must be non-empty"}
	}
	if err := CheckOwner(owner); err != nil {
		return Reference{}, err
	}
	if err := CheckName(name); err != nil {
		return Reference{}, err
	}
	return Reference{Owner: owner, Name: name}, nil
}

// CheckOwner validates a GitHub username.
func CheckOwner(owner string) error {
	if len(owner) > MaxOwnerLen {
		return &FormatError{Field: "owner", Value: owner, Reason: fmt.Sprintf("at most %d characters", MaxOwnerLen)}
	}
	if !ownerPattern.MatchString(owner) {
		return &FormatError{Field: "owner", Value: owner, Reason: "alphanumeric with single hyphens only"}
	}
	return nil
}

// CheckName validates a gist name.
func CheckName(name string) error {
	if !namePattern.MatchString(name) {
		return &FormatError{Field: "name", Value: name, Reason: "letters, digits, dots, hyphens, and underscores only"}
	}
	return nil
}

// File is a single gist file. Content is fetched from the file's raw URL
// and is immutable for the duration of a run.
type File struct {
	Name    string
	Content []byte
}

// Gist is a fetched gist with its files in the order the API returned them.
// That order determines both command assignment and digest input.
type Gist struct {
	ID          string
	Description string
	Files       []File
}

// Summary describes a gist in listing and search results.
type Summary struct {
	ID          string
	Description string
}
