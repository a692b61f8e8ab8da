package ports

// SizeParser parses human-readable size specs (like "10MB" or "1.5 gb") into bytes.
type SizeParser interface {
	Parse(spec string) (uint64, error)
}
