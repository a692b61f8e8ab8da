package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/hailam/fillgen/internal/ports"
)

var errIncomplete = errors.New("generator ended early")

// FileService orchestrates file generation by parsing sizes, building the
// content generator, and streaming its chunks into a sink.
type FileService struct {
	factory  ports.GeneratorFactory
	parser   ports.SizeParser
	sinks    ports.SinkOpener
	progress ports.ProgressReporter
}

// NewFileService constructs a FileService with the given collaborators.
func NewFileService(factory ports.GeneratorFactory, parser ports.SizeParser, sinks ports.SinkOpener, progress ports.ProgressReporter) *FileService {
	return &FileService{factory: factory, parser: parser, sinks: sinks, progress: progress}
}

// CreateFile writes a file at outPath of size sizeSpec (e.g., "10MB") filled
// according to mode, and returns the number of bytes written.
// A failed write aborts the run and leaves the partial file in place.
func (s *FileService) CreateFile(ctx context.Context, outPath, sizeSpec string, mode ports.ContentMode) (uint64, error) {
	// 1. Parse human-readable size into bytes
	sizeBytes, err := s.parser.Parse(sizeSpec)
	if err != nil {
		return 0, fmt.Errorf("invalid size '%s': %w", sizeSpec, err)
	}

	// 2. Build the generator for this mode
	generator, err := s.factory.For(mode, sizeBytes)
	if err != nil {
		return 0, fmt.Errorf("no generator for mode '%s': %w", mode, err)
	}

	// 3. Open the output
	sink, err := s.sinks.Open(outPath)
	if err != nil {
		return 0, err
	}

	log.Debug().
		Str("output", outPath).
		Str("mode", string(mode)).
		Str("size", humanize.IBytes(sizeBytes)).
		Uint64("chunkSize", generator.ChunkSize()).
		Uint64("chunks", generator.Units()).
		Msg("Generating file")

	// 4. Stream the chunks
	written, err := s.write(ctx, generator, sink)
	if closeErr := sink.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to finish %s: %w", outPath, closeErr)
	}
	if err != nil {
		return written, err
	}
	if written != sizeBytes {
		cause := context.Cause(ctx)
		if cause == nil {
			cause = errIncomplete
		}
		return written, fmt.Errorf("generation of %s stopped after %d of %d bytes: %w", outPath, written, sizeBytes, cause)
	}
	return written, nil
}

func (s *FileService) write(ctx context.Context, generator ports.ChunkGenerator, sink ports.Sink) (uint64, error) {
	s.progress.Start(generator.Units())
	defer s.progress.Finish()

	var written uint64
	for chunk := range generator.Chunks(ctx) {
		if err := sink.Write(chunk); err != nil {
			return written, fmt.Errorf("failed to write chunk at offset %d: %w", written, err)
		}
		written += uint64(len(chunk))
		s.progress.Increment()
	}
	return written, nil
}
