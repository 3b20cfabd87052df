package folrules

import "github.com/pkg/errors"

// ProgrammerError marks a panic raised for a condition a caller should
// never be able to trigger through this package's public API — a matcher
// replacer referencing a hole the pattern never bound, a malformed
// schematic rule definition discovered at use. It is never returned as an
// error value: rule authors (this package's own code) are expected to get
// these invariants right, the same way the teacher treats a torn-apart
// Pair or an unresolved Walk chain as a bug rather than a recoverable
// condition (core.go, pattern.go).
type ProgrammerError struct {
	cause error
}

func (e ProgrammerError) Error() string { return e.cause.Error() }
func (e ProgrammerError) Unwrap() error { return e.cause }

// panicProgrammerErrorf wraps a formatted msg with a stack trace via
// pkg/errors and panics with a ProgrammerError, matching the
// gnoverse-tlin/cottand-ile convention of wrapping at the point a
// programmer invariant is violated rather than at the point it is
// eventually observed.
func panicProgrammerErrorf(format string, args ...interface{}) {
	panic(ProgrammerError{cause: errors.Errorf(format, args...)})
}
