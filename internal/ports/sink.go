package ports

// Sink receives generated buffers in order.
type Sink interface {
	// Write writes all of p or returns an error.
	Write(p []byte) error
	Close() error
}

// SinkOpener opens a Sink for an output path.
type SinkOpener interface {
	Open(path string) (Sink, error)
}
