// Package progress reports long-running CLI work.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives one Step per unit of work.
type Reporter interface {
	Start(total int)
	Step(message string)
	Finish()
}

// New returns a line-oriented reporter under CI and a progress bar
// otherwise. Output goes to w.
func New(w io.Writer, task string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w, task: task}
	}
	return &BarReporter{w: w, task: task}
}

// BarReporter draws a progress bar.
type BarReporter struct {
	w    io.Writer
	task string
	bar  *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(r.task),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Step(message string) {
	if r.bar != nil {
		r.bar.Describe(r.task + ": " + message)
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per step, for CI logs.
type LineReporter struct {
	w       io.Writer
	task    string
	total   int
	current int
}

func (r *LineReporter) Start(total int) {
	r.total, r.current = total, 0
	fmt.Fprintf(r.w, "%s: %d items\n", r.task, total)
}

func (r *LineReporter) Step(message string) {
	r.current++
	fmt.Fprintf(r.w, "[%d/%d] %s\n", r.current, r.total, message)
}

func (r *LineReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.task)
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)   {}
func (Nop) Step(string) {}
func (Nop) Finish()     {}
