package sizespec

import (
	"errors"
	"fmt"
)

var (
	ErrMissingValue      = errors.New("missing numeric value")
	ErrDoublePeriod      = errors.New("found two periods in the numeric value")
	ErrInvalidMultiplier = errors.New("invalid multiplier, valid multipliers are b, kb, mb, gb, tb")

	errNegative  = errors.New("size must not be negative")
	errNotFinite = errors.New("size must be a finite number")
)

// InvalidSizeError reports a numeric part that is not a usable number.
// Err holds the underlying reason, usually a *strconv.NumError.
type InvalidSizeError struct {
	Value string
	Err   error
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("failed to parse size %q: %v", e.Value, e.Err)
}

func (e *InvalidSizeError) Unwrap() error {
	return e.Err
}
