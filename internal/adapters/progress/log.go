package progress

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/fillgen/internal/ports"
)

// LogReporter logs progress at every tenth of the total.
type LogReporter struct {
	logger    zerolog.Logger
	total     uint64
	done      uint64
	nextStep  uint64
	startTime time.Time
}

// NewLogReporter creates a reporter logging to logger.
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

var _ ports.ProgressReporter = (*LogReporter)(nil)

func (p *LogReporter) Start(total uint64) {
	p.total = total
	p.done = 0
	p.nextStep = 1
	p.startTime = time.Now()
	p.logger.Info().Uint64("totalChunks", total).Msg("Generation starting")
}

func (p *LogReporter) Increment() {
	p.done++
	if p.total == 0 || p.done*10 < p.nextStep*p.total {
		return
	}
	for p.nextStep <= 10 && p.done*10 >= p.nextStep*p.total {
		p.nextStep++
	}
	p.logger.Info().
		Uint64("chunks", p.done).
		Uint64("totalChunks", p.total).
		Uint64("percent", percent(p.done, p.total)).
		Msg("Generation progress")
}

func (p *LogReporter) Finish() {
	p.logger.Info().
		Uint64("chunks", p.done).
		Float32("elapsedSeconds", float32(time.Since(p.startTime).Seconds())).
		Msg("Generation complete")
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(uint64) {}
func (Nop) Increment()   {}
func (Nop) Finish()      {}
