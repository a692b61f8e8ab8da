package factory

import (
	"fmt"

	"github.com/hailam/fillgen/internal/config"
	"github.com/hailam/fillgen/internal/content"
	"github.com/hailam/fillgen/internal/ports"
)

// StaticGeneratorFactory builds content generators from a fixed configuration.
type StaticGeneratorFactory struct {
	options map[ports.ContentMode]content.Options
}

// NewStaticGeneratorFactory creates a factory for the zero and random modes.
func NewStaticGeneratorFactory(cfg config.Config) ports.GeneratorFactory {
	zero := content.Options{ZeroChunkSize: cfg.ZeroChunkSize}
	random := content.Options{
		RandomChunkSize: cfg.RandomChunkSize,
		Workers:         cfg.Workers,
		Prefetch:        cfg.Prefetch,
		Seed:            cfg.Seed,
	}
	return &StaticGeneratorFactory{
		options: map[ports.ContentMode]content.Options{
			ports.ContentModeZero:   zero,
			ports.ContentModeRandom: random,
		},
	}
}

// For returns a generator of totalBytes bytes in the given mode.
func (f *StaticGeneratorFactory) For(mode ports.ContentMode, totalBytes uint64) (ports.ChunkGenerator, error) {
	opts, ok := f.options[mode]
	if !ok {
		return nil, fmt.Errorf("unsupported content mode: '%s'", mode)
	}
	gen, err := content.New(totalBytes, mode, opts)
	if err != nil {
		return nil, err
	}
	return gen, nil
}
