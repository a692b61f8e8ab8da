// Package config holds the tuning knobs of a generation run. Defaults are
// resolved for the running platform and may be overridden from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/hailam/fillgen/internal/ports"
	"github.com/hailam/fillgen/internal/sizespec"
)

const (
	// DefaultChunkSize is the zero-fill chunk size on every platform.
	DefaultChunkSize = 4096
	// randomChunkFactor scales the random chunk size where random chunks are
	// filled in parallel.
	randomChunkFactor = 256
)

// Config is the resolved configuration of a run.
type Config struct {
	Mode            ports.ContentMode
	ZeroChunkSize   uint64
	RandomChunkSize uint64
	Workers         int
	Prefetch        int
	Seed            *int64
	// RateLimit caps the write throughput in bytes per second; 0 disables it.
	RateLimit uint64
}

// File mirrors the YAML layout. Sizes are size strings such as "1mb".
type File struct {
	Mode            string `yaml:"mode"`
	ZeroChunkSize   string `yaml:"zero_chunk_size"`
	RandomChunkSize string `yaml:"random_chunk_size"`
	Workers         *int   `yaml:"workers"`
	Prefetch        *int   `yaml:"prefetch"`
	Seed            *int64 `yaml:"seed"`
	RateLimit       string `yaml:"rate_limit"`
}

// Default returns the configuration for the running platform.
func Default() Config {
	return ForPlatform(runtime.GOOS)
}

// ForPlatform returns the defaults for goos. Random chunks are large where
// they are filled by a worker pool and match the zero chunk size on Windows.
func ForPlatform(goos string) Config {
	randomChunkSize := uint64(DefaultChunkSize * randomChunkFactor)
	if goos == "windows" {
		randomChunkSize = DefaultChunkSize
	}
	return Config{
		Mode:            ports.ContentModeZero,
		ZeroChunkSize:   DefaultChunkSize,
		RandomChunkSize: randomChunkSize,
		Workers:         runtime.NumCPU(),
		Prefetch:        1,
	}
}

// Load reads the YAML file at path and applies the fields it sets on top of base.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	cfg, err := f.Apply(base)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Apply overlays the fields set in f onto base and validates the result.
func (f File) Apply(base Config) (Config, error) {
	cfg := base
	var err error

	if f.Mode != "" {
		if cfg.Mode, err = ports.ParseContentMode(f.Mode); err != nil {
			return Config{}, err
		}
	}
	if f.ZeroChunkSize != "" {
		if cfg.ZeroChunkSize, err = parseSize("zero_chunk_size", f.ZeroChunkSize); err != nil {
			return Config{}, err
		}
	}
	if f.RandomChunkSize != "" {
		if cfg.RandomChunkSize, err = parseSize("random_chunk_size", f.RandomChunkSize); err != nil {
			return Config{}, err
		}
	}
	if f.RateLimit != "" {
		if cfg.RateLimit, err = parseSize("rate_limit", f.RateLimit); err != nil {
			return Config{}, err
		}
	}
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	if f.Prefetch != nil {
		cfg.Prefetch = *f.Prefetch
	}
	if f.Seed != nil {
		seed := *f.Seed
		cfg.Seed = &seed
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings no run can use.
func (c Config) Validate() error {
	var errs []error
	if c.Mode != ports.ContentModeZero && c.Mode != ports.ContentModeRandom {
		errs = append(errs, fmt.Errorf("unknown content mode '%s'", c.Mode))
	}
	if c.ZeroChunkSize == 0 {
		errs = append(errs, errors.New("zero_chunk_size must be positive"))
	}
	if c.RandomChunkSize == 0 {
		errs = append(errs, errors.New("random_chunk_size must be positive"))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("workers must be positive"))
	}
	if c.Prefetch < 0 {
		errs = append(errs, errors.New("prefetch must not be negative"))
	}
	return errors.Join(errs...)
}

func parseSize(field, value string) (uint64, error) {
	n, err := sizespec.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}
