package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/mozaik-cms/mozaik/internal/apply"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner redraws a line with an animated frame while a backend call runs
type Spinner struct {
	w       io.Writer
	tick    time.Duration
	noColor bool

	mu     sync.Mutex
	text   string
	cancel context.CancelFunc
	exited chan struct{}
}

// NewSpinner returns a stopped spinner that writes to w
func NewSpinner(w io.Writer, text string, noColor bool) *Spinner {
	return &Spinner{w: w, text: text, noColor: noColor, tick: 100 * time.Millisecond}
}

// SetText replaces the text shown next to the frame
func (s *Spinner) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Start begins the animation; starting a running spinner does nothing
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.exited = make(chan struct{})
	go s.run(ctx, s.exited)
}

// Stop ends the animation and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	cancel, exited := s.cancel, s.exited
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	<-exited
	fmt.Fprint(s.w, "\r\033[K")
}

func (s *Spinner) run(ctx context.Context, exited chan<- struct{}) {
	defer close(exited)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	frame := paint(s.noColor, color.FgCyan)

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			text := s.text
			s.mu.Unlock()
			frame.Fprintf(s.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], text)
		}
	}
}

// WithSpinner runs fn behind a spinner, then prints a check line or a
// failure line for text
func WithSpinner(w io.Writer, text string, noColor bool, fn func() error) error {
	s := NewSpinner(w, text, noColor)
	s.Start()
	err := fn()
	s.Stop()

	if err != nil {
		paint(noColor, color.FgRed, color.Bold).Fprintf(w, "❌ %s failed\n", text)
		return err
	}
	WriteSuccess(w, text, noColor)
	return nil
}

// StepProgress prints one line per apply step as the executor reports it.
// It satisfies apply.Recorder and can be chained in front of another one.
type StepProgress struct {
	writer  io.Writer
	total   int
	noColor bool
	next    apply.Recorder
}

// NewStepProgress creates a progress printer for a plan of total steps.
// Results are forwarded to next when it is not nil.
func NewStepProgress(w io.Writer, total int, noColor bool, next apply.Recorder) *StepProgress {
	return &StepProgress{writer: w, total: total, noColor: noColor, next: next}
}

// Record prints the step outcome and forwards it
func (p *StepProgress) Record(ctx context.Context, result apply.StepResult) error {
	counter := fmt.Sprintf("[%*d/%d]", len(fmt.Sprint(p.total)), result.Index+1, p.total)

	gray := paint(p.noColor, color.FgHiBlack)
	if result.Status == apply.StatusApplied {
		fmt.Fprintf(p.writer, "%s %s %s %s\n",
			gray.Sprint(counter), paint(p.noColor, color.FgGreen).Sprint("✓"), result.Step, gray.Sprintf("(%s)", result.Duration.Round(time.Millisecond)))
	} else {
		fmt.Fprintf(p.writer, "%s %s %s: %v\n",
			gray.Sprint(counter), paint(p.noColor, color.FgRed).Sprint("✗"), result.Step, result.Err)
	}

	if p.next != nil {
		return p.next.Record(ctx, result)
	}
	return nil
}
