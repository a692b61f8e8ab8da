package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/hailam/fillgen/internal/ports"
)

// Spinner shows chunk progress next to a terminal spinner.
type Spinner struct {
	s         *spinner.Spinner
	chunkSize uint64
	total     uint64
	done      uint64
}

// NewSpinner creates a spinner writing to w. chunkSize is only used to show
// an approximate byte count.
func NewSpinner(w io.Writer, chunkSize uint64) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	_ = s.Color("cyan")
	return &Spinner{s: s, chunkSize: chunkSize}
}

var _ ports.ProgressReporter = (*Spinner)(nil)

func (p *Spinner) Start(total uint64) {
	p.s.Lock()
	p.total = total
	p.done = 0
	p.s.Suffix = p.suffix()
	p.s.Unlock()
	p.s.Start()
}

func (p *Spinner) Increment() {
	p.s.Lock()
	p.done++
	p.s.Suffix = p.suffix()
	p.s.Unlock()
}

func (p *Spinner) Finish() {
	p.s.Lock()
	if p.done == p.total {
		p.s.FinalMSG = color.GreenString("✓") + p.suffix() + "\n"
	}
	p.s.Unlock()
	p.s.Stop()
}

// Done returns the number of increments since Start.
func (p *Spinner) Done() uint64 {
	p.s.Lock()
	defer p.s.Unlock()
	return p.done
}

// suffix must be called with the spinner locked.
func (p *Spinner) suffix() string {
	return fmt.Sprintf(" %3d%% %d/%d chunks (~%s)",
		percent(p.done, p.total), p.done, p.total, humanize.IBytes(p.done*p.chunkSize))
}

func percent(done, total uint64) uint64 {
	if total == 0 {
		return 100
	}
	return done * 100 / total
}
