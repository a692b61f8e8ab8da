// Package content turns a byte count into the ordered buffers of a zero-filled
// or randomly filled file.
package content

import (
	"context"
	"fmt"
	"iter"
	"math/rand/v2"

	pool "github.com/libp2p/go-buffer-pool"
	"github.com/rs/zerolog/log"

	"github.com/hailam/fillgen/internal/ports"
)

// DefaultChunkSize is the chunk size for zero-filled content.
const DefaultChunkSize = 4096

// blankChunk backs every zero-mode generator using the default chunk size.
// It is never written to.
var blankChunk = make([]byte, DefaultChunkSize)

// Options tune chunking and random generation. Zero values fall back to
// DefaultChunkSize, a single worker and no prefetching.
type Options struct {
	ZeroChunkSize   uint64
	RandomChunkSize uint64
	// Workers is the number of goroutines filling one random chunk.
	Workers int
	// Prefetch is the number of random chunks generated ahead of the consumer.
	Prefetch int
	// Seed makes random content reproducible when set.
	Seed *int64
}

// Generator yields the content of one file.
type Generator struct {
	mode     ports.ContentMode
	plan     Plan
	zeros    []byte
	workers  int
	prefetch int
	seed     uint64
}

var _ ports.ChunkGenerator = (*Generator)(nil)

// New returns a Generator for total bytes of the given mode.
func New(total uint64, mode ports.ContentMode, opts Options) (*Generator, error) {
	g := &Generator{
		mode:     mode,
		workers:  max(opts.Workers, 1),
		prefetch: max(opts.Prefetch, 0),
	}

	switch mode {
	case ports.ContentModeZero:
		chunkSize := opts.ZeroChunkSize
		if chunkSize == 0 {
			chunkSize = DefaultChunkSize
		}
		g.plan = NewPlan(total, chunkSize)
		if chunkSize == DefaultChunkSize {
			g.zeros = blankChunk
		} else {
			g.zeros = make([]byte, chunkSize)
		}
	case ports.ContentModeRandom:
		chunkSize := opts.RandomChunkSize
		if chunkSize == 0 {
			chunkSize = DefaultChunkSize
		}
		g.plan = NewPlan(total, chunkSize)
		if opts.Seed != nil {
			g.seed = uint64(*opts.Seed)
		} else {
			g.seed = rand.Uint64()
		}
	default:
		return nil, fmt.Errorf("unsupported content mode: '%s'", mode)
	}

	return g, nil
}

// Mode returns the content mode.
func (g *Generator) Mode() ports.ContentMode { return g.mode }

// Plan returns the chunk plan.
func (g *Generator) Plan() Plan { return g.plan }

func (g *Generator) Units() uint64 { return g.plan.Units() }

func (g *Generator) ChunkSize() uint64 { return g.plan.ChunkSize }

// Chunks yields Plan().FullChunks buffers of ChunkSize bytes followed by one
// buffer of Plan().Remainder bytes when the remainder is non-zero.
//
// Zero-mode buffers share one read-only backing array. Random-mode buffers
// are pooled and must not be retained past the next iteration step.
// Cancelling ctx ends the sequence early.
func (g *Generator) Chunks(ctx context.Context) iter.Seq[[]byte] {
	if g.mode == ports.ContentModeZero {
		return g.zeroChunks(ctx)
	}
	if g.prefetch > 0 {
		return g.prefetchedRandomChunks(ctx)
	}
	return g.randomChunks(ctx)
}

func (g *Generator) zeroChunks(ctx context.Context) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i := range g.plan.Units() {
			if ctx.Err() != nil {
				return
			}
			if !yield(g.zeros[:g.plan.Len(i)]) {
				return
			}
		}
	}
}

func (g *Generator) randomChunks(ctx context.Context) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i := range g.plan.Units() {
			buf := pool.Get(int(g.plan.Len(i)))
			if err := g.fill(ctx, buf, i); err != nil {
				pool.Put(buf)
				return
			}
			ok := yield(buf)
			pool.Put(buf)
			if !ok {
				return
			}
		}
	}
}

// prefetchedRandomChunks fills chunks on a producer goroutine so that the
// next chunk is generated while the consumer writes the current one.
func (g *Generator) prefetchedRandomChunks(ctx context.Context) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		ctx, cancel := context.WithCancel(ctx)
		ready := make(chan []byte, g.prefetch)

		go func() {
			defer close(ready)
			for i := range g.plan.Units() {
				buf := pool.Get(int(g.plan.Len(i)))
				if err := g.fill(ctx, buf, i); err != nil {
					pool.Put(buf)
					return
				}
				select {
				case ready <- buf:
				case <-ctx.Done():
					pool.Put(buf)
					return
				}
			}
		}()

		defer func() {
			cancel()
			for buf := range ready {
				pool.Put(buf)
			}
		}()

		for buf := range ready {
			ok := yield(buf)
			pool.Put(buf)
			if !ok {
				log.Debug().Msg("Chunk consumer stopped early")
				return
			}
		}
	}
}
