package sim

import (
	"fmt"
	"io"

	"github.com/san-kum/balls/internal/physics"
)

// Progress prints a status line to Out each time another Every seconds of
// simulated time have passed.
type Progress struct {
	Out      io.Writer
	Every    float64
	Duration float64

	next float64
}

func NewProgress(out io.Writer, every, duration float64) *Progress {
	return &Progress{Out: out, Every: every, Duration: duration, next: every}
}

func (p *Progress) OnStep(pop physics.Population, t float64) {
	if p.Every <= 0 || t+1e-9 < p.next {
		return
	}
	for p.next <= t+1e-9 {
		p.next += p.Every
	}
	pct := 100.0
	if p.Duration > 0 {
		pct = min(100, 100*t/p.Duration)
	}
	fmt.Fprintf(p.Out, "  t=%.2fs (%3.0f%%) entities=%d\n", t, pct, len(pop))
}
