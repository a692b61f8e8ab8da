package content

// Plan splits a byte count into full chunks and a trailing remainder.
type Plan struct {
	Total      uint64
	ChunkSize  uint64
	FullChunks uint64
	Remainder  uint64
}

// NewPlan computes the chunk plan for total bytes. chunkSize must be positive.
func NewPlan(total, chunkSize uint64) Plan {
	if chunkSize == 0 {
		panic("content: chunk size must be positive")
	}
	return Plan{
		Total:      total,
		ChunkSize:  chunkSize,
		FullChunks: total / chunkSize,
		Remainder:  total % chunkSize,
	}
}

// Units is the number of buffers the plan emits: one per full chunk plus one
// for a non-empty remainder.
func (p Plan) Units() uint64 {
	if p.Remainder > 0 {
		return p.FullChunks + 1
	}
	return p.FullChunks
}

// Len returns the length of buffer i, for i < Units().
func (p Plan) Len(i uint64) uint64 {
	if i < p.FullChunks {
		return p.ChunkSize
	}
	return p.Remainder
}
