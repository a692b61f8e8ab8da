package sink

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/ratelimit"

	"github.com/hailam/fillgen/internal/ports"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// throttleQuantum is the number of bytes released per limiter tick.
const throttleQuantum = 4096

// FileOpener opens output files for writing, truncating existing ones.
type FileOpener struct {
	// RateLimit caps throughput in bytes per second; 0 means unlimited.
	RateLimit uint64
	Stdout    io.Writer
}

// NewFileOpener returns a SinkOpener for files, or standard output for "-".
func NewFileOpener(rateLimit uint64) ports.SinkOpener {
	return &FileOpener{RateLimit: rateLimit, Stdout: os.Stdout}
}

// Open opens path for writing.
func (o *FileOpener) Open(path string) (ports.Sink, error) {
	if path == StdoutPath {
		return NewWriterSink(o.Stdout, nil, o.RateLimit), nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s for writing", path)
	}
	return NewWriterSink(f, closeFile(f), o.RateLimit), nil
}

func closeFile(f *os.File) func() error {
	return func() error {
		if err := f.Sync(); err != nil {
			f.Close()
			return errors.Wrap(err, "fsync")
		}
		return errors.Wrap(f.Close(), "close")
	}
}

// WriterSink writes buffers to an io.Writer, failing on short writes.
type WriterSink struct {
	w       io.Writer
	close   func() error
	limiter ratelimit.Limiter
	quantum int
	written uint64
}

// NewWriterSink wraps w. closeFn, when non-nil, runs on Close.
func NewWriterSink(w io.Writer, closeFn func() error, rateLimit uint64) *WriterSink {
	s := &WriterSink{w: w, close: closeFn}
	if rateLimit > 0 {
		s.quantum = int(min(rateLimit, throttleQuantum))
		s.limiter = ratelimit.New(1, ratelimit.Per(quantumInterval(rateLimit, s.quantum)), ratelimit.WithoutSlack)
	}
	return s
}

// quantumInterval is the time one quantum takes at rateLimit bytes per second.
func quantumInterval(rateLimit uint64, quantum int) time.Duration {
	return max(time.Duration(float64(time.Second)*float64(quantum)/float64(rateLimit)), time.Nanosecond)
}

// Write writes all of p.
func (s *WriterSink) Write(p []byte) error {
	s.throttle(len(p))
	n, err := s.w.Write(p)
	s.written += uint64(n)
	if err != nil {
		return errors.Wrap(err, "write")
	}
	if n != len(p) {
		return errors.Wrapf(io.ErrShortWrite, "wrote %d of %d bytes", n, len(p))
	}
	return nil
}

// Written returns the number of bytes accepted so far.
func (s *WriterSink) Written() uint64 {
	return s.written
}

// Close releases the underlying writer.
func (s *WriterSink) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func (s *WriterSink) throttle(n int) {
	if s.limiter == nil {
		return
	}
	for remaining := n; remaining > 0; remaining -= s.quantum {
		s.limiter.Take()
	}
}
