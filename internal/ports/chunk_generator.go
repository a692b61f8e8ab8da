package ports

import (
	"context"
	"iter"
)

// ChunkGenerator produces the content of a file as an ordered sequence of buffers.
type ChunkGenerator interface {
	// Units is the number of buffers Chunks yields.
	Units() uint64
	// ChunkSize is the length of every buffer except possibly the last.
	ChunkSize() uint64
	// Chunks yields the buffers in file order. A yielded buffer is only valid
	// until the next iteration step.
	Chunks(ctx context.Context) iter.Seq[[]byte]
}
