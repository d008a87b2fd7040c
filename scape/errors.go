package scape

import (
	"errors"
	"fmt"

	assert "github.com/arl/assertgo"
)

// Sentinel errors implementing the taxonomy of spec.md §7. All of them are
// ordinary values: there is no exception-for-control-flow pattern anywhere
// in this package.
var (
	// ErrInputMalformed is returned when a height field or texture file is
	// truncated or has the wrong dimensions. Always fatal to the caller.
	ErrInputMalformed = errors.New("scape: malformed input")

	// ErrDomainError is returned by Locate when the query point lies
	// outside the subdivision's bounding rectangle. The simplifier never
	// triggers this itself; seeing it surface means the caller located a
	// point it shouldn't have.
	ErrDomainError = errors.New("scape: point outside domain")

	// ErrDuplicateSite is returned by InsertSite when asked to insert at a
	// point that already coincides with a vertex. Recoverable: the caller
	// marks the sample used and moves on.
	ErrDuplicateSite = errors.New("scape: site already exists")

	// ErrHeapEmpty is returned by SelectNewPoint when there is no more
	// candidate to insert. A clean, expected end of refinement.
	ErrHeapEmpty = errors.New("scape: candidate heap is empty")

	// ErrConfigInvalid is returned by Config.Validate when an option is out
	// of range. An ordinary user-input mistake (a CLI typo, a bad YAML
	// value), never a bug: it must never panic, even in a -tags debug
	// build.
	ErrConfigInvalid = errors.New("scape: invalid configuration")

	// ErrAssertionFailed indicates a topology or heap invariant was
	// violated. Always a bug in this package, never a user-input problem.
	ErrAssertionFailed = errors.New("scape: internal invariant violated")
)

// assertInvariant panics (in debug builds, via assertgo) and additionally
// returns a wrapped ErrAssertionFailed so that release builds can still
// surface the condition as an ordinary error instead of continuing with
// corrupted state. Reserved for genuine topology/heap invariants
// (quadedge.go, heap.go, subdivision.go); ordinary input validation must
// never go through here, since assert.True panics unconditionally on a
// -tags debug build and a user typo is not a bug.
func assertInvariant(cond bool, format string, args ...interface{}) error {
	assert.True(cond, format, args...)
	if !cond {
		return fmt.Errorf("%w: %s", ErrAssertionFailed, fmt.Sprintf(format, args...))
	}
	return nil
}

// configError reports an ordinary Config.Validate failure. Unlike
// assertInvariant, it never calls into assertgo: an out-of-range CLI flag
// or YAML value is not an invariant violation and must not panic in a
// -tags debug build.
func configError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfigInvalid, fmt.Sprintf(format, args...))
}

// Status is a bitflag status value in the style of detour.Status, kept for
// parity with the teacher's boundary-operation idiom. No function in this
// module returns or consumes it; the CLI's exit codes come from ExitCode.
type Status uint32

// High level status bits.
const (
	StatusSuccess Status = 1 << 30
	StatusFailure Status = 1 << 31
)

// ExitCode maps an error from this package to one of the CLI's exit codes:
// 0 success, 1 malformed input, 2 configuration error.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInputMalformed):
		return 1
	case errors.Is(err, ErrDomainError), errors.Is(err, ErrAssertionFailed), errors.Is(err, ErrConfigInvalid):
		return 2
	default:
		return 1
	}
}
