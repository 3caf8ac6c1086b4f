/*
errors.go - Centralized error types for the convert package

PURPOSE:
  All conversion failure modes in one place. Conversion errors are input
  errors, not transient faults: nothing here is retried, and no partial
  result ever accompanies an error.

ERROR CATEGORIES:
  1. Not implemented - no conversion rule exists for a frequency pair
     (only pairs involving the Unit frequency)
  2. Invalid argument - an option received a value outside its legal set,
     including a method incompatible with the conversion direction
  3. Weekend boundary - RoundCurrent asserted a boundary date was a
     business day and it was not

SEE ALSO:
  - options.go: the option enums the invalid-argument errors describe
  - moments package: MixedFrequencyError and friends for the arithmetic
    layer below this one
*/
package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/warp/frequency-engine/moments"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotImplemented is returned when no conversion rule exists for a
	// frequency pair.
	ErrNotImplemented = errors.New("conversion not implemented")

	// ErrInvalidArgument is returned when an option value lies outside its
	// legal set.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWeekendBoundary is returned when RoundCurrent lands a boundary
	// date on a Saturday or Sunday.
	ErrWeekendBoundary = errors.New("weekend boundary")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotImplementedError names the source and destination of an unsupported
// conversion.
type NotImplementedError struct {
	From moments.Frequency
	To   moments.Frequency
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("conversion from %s to %s is not implemented", e.From, e.To)
}

func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

// InvalidArgumentError names the offending option, the value received, and
// the legal set.
type InvalidArgumentError struct {
	Name  string
	Value string
	Legal []string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q, legal values: %s", e.Name, e.Value, strings.Join(e.Legal, ", "))
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// WeekendBoundaryError reports the boundary date that RoundCurrent refused
// to shift onto a business day.
type WeekendBoundaryError struct {
	Date moments.Date
}

func (e *WeekendBoundaryError) Error() string {
	return fmt.Sprintf("boundary %s is not a business day and rounding %q forbids shifting it", e.Date, RoundCurrent)
}

func (e *WeekendBoundaryError) Unwrap() error {
	return ErrWeekendBoundary
}

// =============================================================================
// ERROR CLASSIFICATION HELPERS
// =============================================================================

// IsNotImplemented reports whether err stems from an unsupported frequency
// pair.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsInvalidArgument reports whether err stems from an option value outside
// its legal set.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsWeekendBoundary reports whether err stems from a weekend boundary under
// RoundCurrent.
func IsWeekendBoundary(err error) bool {
	return errors.Is(err, ErrWeekendBoundary)
}
