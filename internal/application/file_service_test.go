package application

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hailam/fillgen/internal/adapters/factory"
	"github.com/hailam/fillgen/internal/adapters/sink"
	adapterutils "github.com/hailam/fillgen/internal/adapters/utils"
	"github.com/hailam/fillgen/internal/config"
	"github.com/hailam/fillgen/internal/ports"
)

// --- Mock Implementations ---

// MockSizeParser is a mock for ports.SizeParser
type MockSizeParser struct {
	ParseFunc func(spec string) (uint64, error)
}

func (m *MockSizeParser) Parse(spec string) (uint64, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(spec)
	}
	switch spec {
	case "10KB":
		return 10 * 1024, nil
	case "10000b":
		return 10000, nil
	case "badsize":
		return 0, errors.New("mock parse error")
	default:
		return 0, fmt.Errorf("unexpected size spec in mock: %s", spec)
	}
}

// MockChunkGenerator yields fixed-size chunks of a repeated byte.
type MockChunkGenerator struct {
	Total     uint64
	Size      uint64
	Fill      byte
	StopAfter int // yield at most this many chunks when > 0
}

func (m *MockChunkGenerator) Units() uint64 { return (m.Total + m.Size - 1) / m.Size }

func (m *MockChunkGenerator) ChunkSize() uint64 { return m.Size }

func (m *MockChunkGenerator) Chunks(ctx context.Context) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		remaining := m.Total
		for i := 0; remaining > 0; i++ {
			if m.StopAfter > 0 && i == m.StopAfter {
				return
			}
			n := min(remaining, m.Size)
			chunk := []byte(strings.Repeat(string(m.Fill), int(n)))
			if !yield(chunk) {
				return
			}
			remaining -= n
		}
	}
}

// MockGeneratorFactory is a mock for ports.GeneratorFactory
type MockGeneratorFactory struct {
	ForFunc        func(mode ports.ContentMode, total uint64) (ports.ChunkGenerator, error)
	ForCalled      bool
	CalledWithMode ports.ContentMode
	CalledWithSize uint64
}

func (m *MockGeneratorFactory) For(mode ports.ContentMode, total uint64) (ports.ChunkGenerator, error) {
	m.ForCalled = true
	m.CalledWithMode = mode
	m.CalledWithSize = total
	if m.ForFunc != nil {
		return m.ForFunc(mode, total)
	}
	return &MockChunkGenerator{Total: total, Size: 4096}, nil
}

// MockSink records everything written to it.
type MockSink struct {
	Data      []byte
	Writes    int
	FailAfter int // fail the write with this 1-based index when > 0
	Closed    bool
	CloseErr  error
}

func (m *MockSink) Write(p []byte) error {
	m.Writes++
	if m.FailAfter > 0 && m.Writes == m.FailAfter {
		return errors.New("mock write error")
	}
	m.Data = append(m.Data, p...)
	return nil
}

func (m *MockSink) Close() error {
	m.Closed = true
	return m.CloseErr
}

// MockSinkOpener hands out a single MockSink.
type MockSinkOpener struct {
	Sink     *MockSink
	OpenErr  error
	OpenPath string
}

func (m *MockSinkOpener) Open(path string) (ports.Sink, error) {
	m.OpenPath = path
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return m.Sink, nil
}

// MockProgress counts progress calls.
type MockProgress struct {
	Total      uint64
	Increments uint64
	Finished   bool
}

func (m *MockProgress) Start(total uint64) { m.Total = total }
func (m *MockProgress) Increment()         { m.Increments++ }
func (m *MockProgress) Finish()            { m.Finished = true }

// --- Test Cases ---

func TestFileService_CreateFile(t *testing.T) {
	tests := []struct {
		name           string
		sizeSpec       string
		mode           ports.ContentMode
		setupFactory   func(*MockGeneratorFactory)
		setupSinks     func(*MockSinkOpener)
		expectedErrMsg string // Substring of expected error message, empty for success
		validate       func(*testing.T, *MockGeneratorFactory, *MockSink, *MockProgress)
	}{
		{
			name:     "Success Zero",
			sizeSpec: "10000b",
			mode:     ports.ContentModeZero,
			validate: func(t *testing.T, f *MockGeneratorFactory, s *MockSink, p *MockProgress) {
				if f.CalledWithSize != 10000 || f.CalledWithMode != ports.ContentModeZero {
					t.Errorf("For called with (%s, %d), want (zero, 10000)", f.CalledWithMode, f.CalledWithSize)
				}
				if len(s.Data) != 10000 || s.Writes != 3 {
					t.Errorf("sink got %d bytes in %d writes, want 10000 in 3", len(s.Data), s.Writes)
				}
				if p.Total != 3 || p.Increments != 3 || !p.Finished {
					t.Errorf("progress = %+v, want total 3, 3 increments, finished", *p)
				}
				if !s.Closed {
					t.Errorf("sink was not closed")
				}
			},
		},
		{
			name:     "Success Random Mode Passed Through",
			sizeSpec: "10KB",
			mode:     ports.ContentModeRandom,
			validate: func(t *testing.T, f *MockGeneratorFactory, s *MockSink, p *MockProgress) {
				if f.CalledWithMode != ports.ContentModeRandom {
					t.Errorf("For called with mode %s, want random", f.CalledWithMode)
				}
				if p.Total != 3 || p.Increments != 3 {
					t.Errorf("progress = %+v, want 3 of 3", *p)
				}
			},
		},
		{
			name:           "Error Invalid Size Spec",
			sizeSpec:       "badsize",
			mode:           ports.ContentModeZero,
			expectedErrMsg: "invalid size 'badsize': mock parse error",
			validate: func(t *testing.T, f *MockGeneratorFactory, s *MockSink, p *MockProgress) {
				if f.ForCalled {
					t.Errorf("Expected For NOT to be called on size parse error")
				}
			},
		},
		{
			name:     "Error No Generator Found",
			sizeSpec: "10KB",
			mode:     "sparse",
			setupFactory: func(f *MockGeneratorFactory) {
				f.ForFunc = func(mode ports.ContentMode, total uint64) (ports.ChunkGenerator, error) {
					return nil, fmt.Errorf("mock factory error: unsupported mode %s", mode)
				}
			},
			expectedErrMsg: "no generator for mode 'sparse': mock factory error: unsupported mode sparse",
		},
		{
			name:     "Error Opening Output",
			sizeSpec: "10KB",
			mode:     ports.ContentModeZero,
			setupSinks: func(o *MockSinkOpener) {
				o.OpenErr = errors.New("permission denied")
			},
			expectedErrMsg: "permission denied",
			validate: func(t *testing.T, f *MockGeneratorFactory, s *MockSink, p *MockProgress) {
				if p.Total != 0 || p.Finished {
					t.Errorf("progress should not start when the output cannot be opened")
				}
			},
		},
		{
			name:     "Error During Write",
			sizeSpec: "10000b",
			mode:     ports.ContentModeZero,
			setupSinks: func(o *MockSinkOpener) {
				o.Sink.FailAfter = 2
			},
			expectedErrMsg: "failed to write chunk at offset 4096: mock write error",
			validate: func(t *testing.T, f *MockGeneratorFactory, s *MockSink, p *MockProgress) {
				if p.Increments != 1 {
					t.Errorf("progress increments = %d, want 1", p.Increments)
				}
				if !s.Closed {
					t.Errorf("sink must be closed after a failed write")
				}
				if len(s.Data) != 4096 {
					t.Errorf("sink kept %d bytes, want 4096", len(s.Data))
				}
			},
		},
		{
			name:     "Error On Close",
			sizeSpec: "10KB",
			mode:     ports.ContentModeZero,
			setupSinks: func(o *MockSinkOpener) {
				o.Sink.CloseErr = errors.New("fsync failed")
			},
			expectedErrMsg: "failed to finish out.bin: fsync failed",
		},
		{
			name:     "Error Generator Ended Early",
			sizeSpec: "10000b",
			mode:     ports.ContentModeZero,
			setupFactory: func(f *MockGeneratorFactory) {
				f.ForFunc = func(mode ports.ContentMode, total uint64) (ports.ChunkGenerator, error) {
					return &MockChunkGenerator{Total: total, Size: 4096, StopAfter: 1}, nil
				}
			},
			expectedErrMsg: "stopped after 4096 of 10000 bytes: generator ended early",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := &MockSizeParser{}
			mockFactory := &MockGeneratorFactory{}
			mockSink := &MockSink{}
			mockSinks := &MockSinkOpener{Sink: mockSink}
			mockProgress := &MockProgress{}

			if tc.setupFactory != nil {
				tc.setupFactory(mockFactory)
			}
			if tc.setupSinks != nil {
				tc.setupSinks(mockSinks)
			}

			service := NewFileService(mockFactory, mockParser, mockSinks, mockProgress)
			_, err := service.CreateFile(context.Background(), "out.bin", tc.sizeSpec, tc.mode)

			if tc.expectedErrMsg == "" {
				if err != nil {
					t.Errorf("CreateFile() unexpected error = %v", err)
				}
				if mockSinks.OpenPath != "out.bin" {
					t.Errorf("Open called with %q, want out.bin", mockSinks.OpenPath)
				}
			} else {
				if err == nil {
					t.Errorf("CreateFile() expected an error containing %q, but got nil", tc.expectedErrMsg)
				} else if !strings.Contains(err.Error(), tc.expectedErrMsg) {
					t.Errorf("CreateFile() error = %q, expected error containing %q", err.Error(), tc.expectedErrMsg)
				}
			}

			if tc.validate != nil {
				tc.validate(t, mockFactory, mockSink, mockProgress)
			}
		})
	}
}

func TestFileService_CreateFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewFileService(
		factory.NewStaticGeneratorFactory(config.ForPlatform("linux")),
		adapterutils.NewSpecSizeParser(),
		&MockSinkOpener{Sink: &MockSink{}},
		&MockProgress{},
	)
	_, err := service.CreateFile(ctx, "out.bin", "1mb", ports.ContentModeZero)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CreateFile() error = %v, want context.Canceled", err)
	}
}

// TestFileService_EndToEnd wires the real adapters together.
func TestFileService_EndToEnd(t *testing.T) {
	tempDir := t.TempDir()
	cfg := config.ForPlatform("linux")
	cfg.RandomChunkSize = 64 * 1024
	cfg.Workers = 2

	tests := []struct {
		name      string
		sizeSpec  string
		mode      ports.ContentMode
		wantSize  int64
		wantUnits uint64
	}{
		{"ZeroRemainder", "10000b", ports.ContentModeZero, 10000, 3},
		{"ZeroExact", "8 kb", ports.ContentModeZero, 8192, 2},
		{"ZeroEmpty", "0b", ports.ContentModeZero, 0, 0},
		{"RandomFractional", "0.5mb", ports.ContentModeRandom, 512 * 1024, 8},
		{"RandomOdd", "100001 bytes", ports.ContentModeRandom, 100001, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outPath := filepath.Join(tempDir, tc.name+".bin")
			progress := &MockProgress{}
			service := NewFileService(
				factory.NewStaticGeneratorFactory(cfg),
				adapterutils.NewSpecSizeParser(),
				sink.NewFileOpener(0),
				progress,
			)

			written, err := service.CreateFile(context.Background(), outPath, tc.sizeSpec, tc.mode)
			if err != nil {
				t.Fatalf("CreateFile() unexpected error: %v", err)
			}
			if int64(written) != tc.wantSize {
				t.Errorf("CreateFile() wrote %d bytes, want %d", written, tc.wantSize)
			}

			data, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatalf("reading %s: %v", outPath, err)
			}
			if int64(len(data)) != tc.wantSize {
				t.Errorf("file size = %d, want %d", len(data), tc.wantSize)
			}
			if progress.Total != tc.wantUnits || progress.Increments != tc.wantUnits {
				t.Errorf("progress = %+v, want %d units", *progress, tc.wantUnits)
			}
			if tc.mode == ports.ContentModeZero {
				for i, b := range data {
					if b != 0 {
						t.Fatalf("byte %d = %d, want 0", i, b)
					}
				}
			}
		})
	}
}
