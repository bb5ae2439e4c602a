// Package digest hashes combined gist contents and verifies them against
// an expected value.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/gistrun/gistrun/internal/gist"
)

// Algorithm selects the digest function.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
	SHA1   Algorithm = "sha1"
	// MD5 exists for compatibility checks against legacy digests only.
	// It is not collision resistant and must not be trusted to
	// authenticate untrusted gist content.
	MD5 Algorithm = "md5"
)

// Default is used when no algorithm is specified.
const Default = SHA256

// Algorithms lists the supported algorithm names.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA512, SHA1, MD5}
}

// New returns a fresh hash.Hash for the algorithm. The empty algorithm
// selects Default.
func New(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case SHA256, "":
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA1:
		return sha1.New(), nil
	case MD5:
		return md5.New(), nil
	}
	return nil, fmt.Errorf("unknown hash function %q", alg)
}

// Compute hashes the file contents concatenated in order with no
// separator and returns the lowercase hex digest.
func Compute(files []gist.File, alg Algorithm) (string, error) {
	h, err := New(alg)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		h.Write(f.Content)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MismatchError reports a digest verification failure. It carries both
// values for diagnosis.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("hash mismatch: expected %s, actual %s", e.Expected, e.Actual)
}

// Verify compares two hex digests, ignoring hex case.
func Verify(expected, actual string) error {
	if !strings.EqualFold(expected, actual) {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}
