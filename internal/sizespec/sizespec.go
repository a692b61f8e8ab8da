// Package sizespec parses human-readable sizes such as "10gb", "1.5 MB" or "512b".
//
// Two forms are accepted: "<number> <unit>" split on the first space, and
// "<number><unit>" where the unit starts at the first character that is
// neither a digit nor a period. Units are powers of 1024.
package sizespec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxBytes is 2^64, the first byte count that no longer fits in a uint64.
const maxBytes = 1 << 64

// SizeSpec is a parsed size: a non-negative value in some unit. Values built
// outside Parse are clamped to the uint64 range by Bytes.
type SizeSpec struct {
	Value      float64
	Multiplier Multiplier
}

// Bytes converts the size to a byte count, truncating any fractional byte.
func (s SizeSpec) Bytes() uint64 {
	n := s.Value * float64(s.Multiplier.Bytes())
	switch {
	case math.IsNaN(n) || n <= 0:
		return 0
	case n >= maxBytes:
		return math.MaxUint64
	}
	return uint64(n)
}

func (s SizeSpec) String() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64) + " " + s.Multiplier.String()
}

// Parse parses input into a SizeSpec.
func Parse(input string) (SizeSpec, error) {
	if input == "" {
		return SizeSpec{}, ErrMissingValue
	}

	if number, unit, found := strings.Cut(input, " "); found {
		value, err := parseValue(number)
		if err != nil {
			return SizeSpec{}, err
		}
		multiplier, err := ParseMultiplier(unit)
		if err != nil {
			return SizeSpec{}, err
		}
		return newSizeSpec(value, multiplier)
	}

	boundary := len(input)
	hasPeriod := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if c == '.' {
			if hasPeriod {
				return SizeSpec{}, ErrDoublePeriod
			}
			hasPeriod = true
			continue
		}
		boundary = i
		break
	}

	value, err := parseValue(input[:boundary])
	if err != nil {
		return SizeSpec{}, err
	}
	multiplier, err := ParseMultiplier(input[boundary:])
	if err != nil {
		return SizeSpec{}, err
	}
	return newSizeSpec(value, multiplier)
}

// MustParse is like Parse but panics on error.
func MustParse(input string) SizeSpec {
	spec, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("sizespec: Parse(%q): %v", input, err))
	}
	return spec
}

// ParseBytes parses input and returns its byte count.
func ParseBytes(input string) (uint64, error) {
	spec, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return spec.Bytes(), nil
}

func parseValue(number string) (float64, error) {
	// ParseFloat also takes Go literal syntax; only plain decimals are sizes.
	digits := strings.TrimLeft(number, "+-")
	if strings.ContainsRune(number, '_') || strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, &InvalidSizeError{Value: number, Err: strconv.ErrSyntax}
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, &InvalidSizeError{Value: number, Err: err}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &InvalidSizeError{Value: number, Err: errNotFinite}
	}
	if math.Signbit(value) {
		return 0, &InvalidSizeError{Value: number, Err: errNegative}
	}
	return value, nil
}

func newSizeSpec(value float64, multiplier Multiplier) (SizeSpec, error) {
	if value*float64(multiplier.Bytes()) >= maxBytes {
		return SizeSpec{}, &InvalidSizeError{
			Value: strconv.FormatFloat(value, 'g', -1, 64) + " " + multiplier.String(),
			Err:   strconv.ErrRange,
		}
	}
	return SizeSpec{Value: value, Multiplier: multiplier}, nil
}
