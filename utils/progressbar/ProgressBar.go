// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar implement progress bar functionality that must be
// manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ProgressBar does not use concurrency.
type ProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide, reaches
// 100% after max Increment() calls, and prints to out
func New(out io.Writer, width, max int) *ProgressBar {
	if max < 1 {
		max = 1
	}
	return &ProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the fraction of progress made, in [0, 1]
func (p *ProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// String returns the progress bar as a single line
func (p *ProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	fmt.Fprintf(&p.bar, "| [%.2f%% | elapsed: %v]", p.Progress()*100,
		time.Since(p.startTime).Truncate(time.Second))

	return p.bar.String()
}

// Display prints the progress bar, overwriting the previously printed
// progress bar
func (p *ProgressBar) Display() {
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
}

// Close moves output past the progress bar
func (p *ProgressBar) Close() {
	fmt.Fprintln(p.out)
}
