package ports

// GeneratorFactory is the port for building a ChunkGenerator for a content mode.
type GeneratorFactory interface {
	// For returns a ChunkGenerator producing totalBytes bytes of the given mode,
	// or an error if the mode is unsupported.
	For(mode ContentMode, totalBytes uint64) (ChunkGenerator, error)
}
