package utils

import (
	"github.com/hailam/fillgen/internal/ports"
	"github.com/hailam/fillgen/internal/sizespec"
)

// SpecSizeParser adapts sizespec.Parse to the ports.SizeParser interface.
type SpecSizeParser struct{}

// NewSpecSizeParser creates a new size parser adapter.
func NewSpecSizeParser() ports.SizeParser {
	return &SpecSizeParser{}
}

// Parse parses spec and converts it to a byte count.
func (p *SpecSizeParser) Parse(spec string) (uint64, error) {
	return sizespec.ParseBytes(spec)
}
