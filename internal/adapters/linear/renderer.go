// Package linear provides a synchronous, line-buffered renderer that prints
// step output with step name prefixes.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/cmk/internal/ui/output"
	"go.trai.ch/cmk/internal/ui/style"
)

// Renderer implements ports.Renderer. Step output goes to stdout, progress
// to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]*stepState // spanID -> step
}

type stepState struct {
	name      string
	startTime time.Time
	partial   []byte
}

// NewRenderer creates a new Renderer. Nil writers select the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.New(stderr, false),
		steps:  make(map[string]*stepState),
	}
}

// Stop prints any partial lines still buffered.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, step := range r.steps {
		r.flushLocked(step)
	}
	return nil
}

// OnPlanEmit prints the steps about to run.
func (r *Renderer) OnPlanEmit(steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	header := output.Paint(r.output, fmt.Sprintf("Running %d step(s):", len(steps)), string(style.Accent))
	_, _ = fmt.Fprintf(r.stderr, "%s %s\n", header, strings.Join(steps, " "+style.Arrow+" "))
}

// OnStepStart prints a start message.
func (r *Renderer) OnStepStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = &stepState{name: name, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnStepLog prints complete lines with the step prefix and keeps the rest.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	step.partial = append(step.partial, data...)
	for {
		i := bytes.IndexByte(step.partial, '\n')
		if i < 0 {
			break
		}
		r.printLineLocked(step.name, step.partial[:i])
		step.partial = step.partial[i+1:]
	}
}

// OnStepComplete flushes the step's partial line and prints its outcome.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	r.flushLocked(step)
	delete(r.steps, spanID)

	duration := endTime.Sub(step.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", step.name)

	if err != nil {
		symbol := output.Paint(r.output, style.Cross, string(style.Red))
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	symbol := output.Paint(r.output, style.Check, string(style.Green))
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n", prefix, symbol, duration)
}

// flushLocked must be called with r.mu held.
func (r *Renderer) flushLocked(step *stepState) {
	if len(step.partial) > 0 {
		r.printLineLocked(step.name, step.partial)
		step.partial = nil
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
