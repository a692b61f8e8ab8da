package ports

// ProgressReporter displays how many buffers have been written so far.
type ProgressReporter interface {
	Start(total uint64)
	Increment()
	Finish()
}
