package ports

import (
	"fmt"
	"strings"
)

// ContentMode selects what the generated file is filled with.
type ContentMode string

const (
	ContentModeZero   ContentMode = "zero"
	ContentModeRandom ContentMode = "random"
)

// ParseContentMode maps "zero" or "random" (any case) to a ContentMode.
func ParseContentMode(s string) (ContentMode, error) {
	switch ContentMode(strings.ToLower(strings.TrimSpace(s))) {
	case ContentModeZero:
		return ContentModeZero, nil
	case ContentModeRandom:
		return ContentModeRandom, nil
	default:
		return "", fmt.Errorf("unknown content mode '%s' (want zero or random)", s)
	}
}
