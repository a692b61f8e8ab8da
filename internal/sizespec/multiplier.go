package sizespec

import "strings"

// Multiplier is a power-of-1024 unit a size value is expressed in.
type Multiplier int

const (
	Byte Multiplier = iota
	Kilobyte
	Megabyte
	Gigabyte
	Terabyte
)

// Multipliers lists every unit from smallest to largest.
var Multipliers = []Multiplier{Byte, Kilobyte, Megabyte, Gigabyte, Terabyte}

// Bytes returns the number of bytes in one unit.
func (m Multiplier) Bytes() uint64 {
	return 1 << (10 * uint(m))
}

func (m Multiplier) String() string {
	switch m {
	case Byte:
		return "B"
	case Kilobyte:
		return "KB"
	case Megabyte:
		return "MB"
	case Gigabyte:
		return "GB"
	case Terabyte:
		return "TB"
	default:
		return "?"
	}
}

// ParseMultiplier looks up a unit token such as "kb" or "Gigabytes".
// Lookup is case-insensitive; an unknown or empty token yields ErrInvalidMultiplier.
func ParseMultiplier(token string) (Multiplier, error) {
	switch strings.ToLower(token) {
	case "b", "byte", "bytes":
		return Byte, nil
	case "k", "kb", "kilobyte", "kilobytes":
		return Kilobyte, nil
	case "m", "mb", "megabyte", "megabytes":
		return Megabyte, nil
	case "g", "gb", "gigabyte", "gigabytes":
		return Gigabyte, nil
	case "t", "tb", "terabyte", "terabytes":
		return Terabyte, nil
	default:
		return 0, ErrInvalidMultiplier
	}
}
