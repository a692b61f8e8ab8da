package content

import (
	"context"
	"encoding/binary"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// minSegmentSize keeps small chunks on a single goroutine.
const minSegmentSize = 64 * 1024

// fill overwrites buf, the contents of chunk index, with random bytes.
// Each segment gets its own stream keyed by (seed, chunk, segment), so the
// output only depends on the seed, the chunk size and the worker count.
func (g *Generator) fill(ctx context.Context, buf []byte, index uint64) error {
	segments := segmentCount(len(buf), g.workers)
	if segments == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fillSegment(buf, g.seed, index, 0)
		return nil
	}

	segLen := (len(buf) + segments - 1) / segments
	eg, ctx := errgroup.WithContext(ctx)
	for s := range segments {
		start := s * segLen
		end := min(start+segLen, len(buf))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fillSegment(buf[start:end], g.seed, index, uint64(s))
			return nil
		})
	}
	return eg.Wait()
}

func segmentCount(n, workers int) int {
	segments := min(workers, n/minSegmentSize)
	return max(segments, 1)
}

func fillSegment(dst []byte, seed, chunk, segment uint64) {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], seed)
	binary.LittleEndian.PutUint64(key[8:], chunk)
	binary.LittleEndian.PutUint64(key[16:], segment)
	// ChaCha8.Read always fills dst and never fails.
	_, _ = rand.NewChaCha8(key).Read(dst)
}
