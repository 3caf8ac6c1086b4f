/*
errors.go - Centralized error types for the moments package

PURPOSE:
  All arithmetic/comparison failure modes in one place. Higher layers
  (convert, api) wrap or map these; nothing in this package retries or
  recovers them.

ERROR CATEGORIES:
  1. Mixed frequencies - two operands whose frequency tags differ where
     equality is required
  2. Illegal operations - categorically undefined combinations
     (Moment + Moment)
  3. Illegal comparisons - ordering that is undefined even for matching
     frequencies (Moment vs Duration)
  4. Parse errors - text that does not denote a frequency/moment/duration

FAILURE POLICY:
  Methods on Moment/Duration/Range panic with one of the structured
  errors below; they represent contract violations by the caller, not
  runtime conditions. The operand layer in ops.go returns the same
  errors as ordinary error values for callers that need to handle
  untrusted input.

SEE ALSO:
  - ops.go: error-returning operand layer
  - parse.go: uses ErrParse
*/
package moments

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMixedFrequency is returned when a binary operation receives operands
	// whose frequency tags differ.
	ErrMixedFrequency = errors.New("mixed frequencies")

	// ErrIllegalOperation is returned when an operation is categorically
	// undefined, such as adding two moments.
	ErrIllegalOperation = errors.New("illegal operation")

	// ErrIllegalComparison is returned when ordering is undefined, such as
	// comparing a moment to a duration.
	ErrIllegalComparison = errors.New("illegal comparison")

	// ErrParse is returned when text cannot be parsed as a frequency,
	// moment, duration, or range.
	ErrParse = errors.New("parse error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MixedFrequencyError reports the two frequency tags that were mixed and the
// operation that rejected them.
type MixedFrequencyError struct {
	Op    string
	Left  Frequency
	Right Frequency
}

func (e *MixedFrequencyError) Error() string {
	return fmt.Sprintf("%s: mixed frequencies %s and %s", e.Op, e.Left, e.Right)
}

func (e *MixedFrequencyError) Unwrap() error {
	return ErrMixedFrequency
}

// IllegalOperationError reports an operation that is undefined regardless of
// frequencies, e.g. Moment + Moment.
type IllegalOperationError struct {
	Op    string
	Left  string
	Right string
}

func (e *IllegalOperationError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("%s: illegal operation on %s", e.Op, e.Left)
	}
	return fmt.Sprintf("%s: illegal operation between %s and %s", e.Op, e.Left, e.Right)
}

func (e *IllegalOperationError) Unwrap() error {
	return ErrIllegalOperation
}

// IllegalComparisonError reports an ordering request between values that have
// no defined order, e.g. a moment against a duration.
type IllegalComparisonError struct {
	Left  string
	Right string
}

func (e *IllegalComparisonError) Error() string {
	return fmt.Sprintf("cannot order %s against %s", e.Left, e.Right)
}

func (e *IllegalComparisonError) Unwrap() error {
	return ErrIllegalComparison
}

// ParseError reports unparseable text along with what was expected.
type ParseError struct {
	Input string
	Want  string // "frequency", "moment", "duration", "range", "date"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s", e.Input, e.Want)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// =============================================================================
// ERROR CLASSIFICATION HELPERS
// =============================================================================

// IsMixedFrequency reports whether err stems from mixing frequency tags.
func IsMixedFrequency(err error) bool {
	return errors.Is(err, ErrMixedFrequency)
}

// IsIllegalOperation reports whether err stems from an undefined operation.
func IsIllegalOperation(err error) bool {
	return errors.Is(err, ErrIllegalOperation)
}

// IsIllegalComparison reports whether err stems from an undefined ordering.
func IsIllegalComparison(err error) bool {
	return errors.Is(err, ErrIllegalComparison)
}

// IsParse reports whether err stems from unparseable text.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}
