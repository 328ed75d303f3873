// Package scheduler runs steps in declaration order.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/cmk/internal/core/ports"
	"go.trai.ch/cmk/internal/engine/invocation"
	"go.trai.ch/zerr"
)

// StepStatus represents the status of a step within a run.
type StepStatus string

const (
	// StatusPending indicates the step has not started.
	StatusPending StepStatus = "Pending"
	// StatusRunning indicates the step is executing.
	StatusRunning StepStatus = "Running"
	// StatusCompleted indicates the step finished successfully.
	StatusCompleted StepStatus = "Completed"
	// StatusFailed indicates the step failed.
	StatusFailed StepStatus = "Failed"
)

// Options controls a run.
type Options struct {
	// Verbose logs each composed command line before it is spawned.
	Verbose bool
	// TTY spawns every step under a pseudo-terminal.
	TTY bool
}

// Scheduler executes steps one at a time. Each step gets its own span; the
// span receives the process output.
type Scheduler struct {
	composer *invocation.Composer
	executor ports.Executor
	tracer   ports.Tracer
	logger   ports.Logger

	mu         sync.RWMutex
	stepStatus map[string]StepStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	composer *invocation.Composer,
	executor ports.Executor,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		composer:   composer,
		executor:   executor,
		tracer:     tracer,
		logger:     logger,
		stepStatus: make(map[string]StepStatus),
	}
}

// Status returns the status of the named step in the last run.
func (s *Scheduler) Status(name string) StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepStatus[name]
}

func (s *Scheduler) initStepStatuses(steps []domain.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.stepStatus)
	for _, step := range steps {
		s.stepStatus[step.Options().Name] = StatusPending
	}
}

func (s *Scheduler) updateStatus(name string, status StepStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepStatus[name] = status
}

// Run executes steps in order. A failing step stops the run unless it
// declares failonerror: false, in which case it is reported and skipped
// over. Composition errors always stop the run.
func (s *Scheduler) Run(ctx context.Context, steps []domain.Step, opts Options) error {
	s.initStepStatuses(steps)

	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Options().Name
	}
	s.tracer.EmitPlan(ctx, names)

	for _, step := range steps {
		name := step.Options().Name

		if err := ctx.Err(); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStepExecutionFailed.Error()), "step", name)
		}

		s.updateStatus(name, StatusRunning)
		fatal, err := s.executeStep(ctx, step, opts)
		if err == nil {
			s.updateStatus(name, StatusCompleted)
			continue
		}

		s.updateStatus(name, StatusFailed)
		if !fatal && !step.Options().FailOnError {
			s.logger.Warn(fmt.Sprintf("step %q failed and is allowed to fail: %v", name, err))
			continue
		}

		return zerr.With(zerr.Wrap(err, domain.ErrStepExecutionFailed.Error()), "step", name)
	}

	return nil
}

// executeStep ends the span before returning so the renderer reports the
// outcome before the next step starts.
func (s *Scheduler) executeStep(ctx context.Context, step domain.Step, opts Options) (fatal bool, err error) {
	name := step.Options().Name

	ctx, span := s.tracer.Start(ctx, name,
		ports.WithAttribute(ports.StepAttributeKey, name),
		ports.WithAttribute("step.kind", string(step.Kind())),
	)
	defer span.End()

	inv, err := s.composer.Compose(step)
	if err != nil {
		span.RecordError(err)
		return true, err
	}

	span.SetAttribute("step.program", inv.Program)
	span.SetAttribute("step.fingerprint", inv.Fingerprint())
	span.SetAttribute("step.fail_on_error", inv.FailOnError)

	if opts.Verbose {
		s.logger.Info(fmt.Sprintf("[%s] %s", name, inv.CommandLine()))
	}

	err = s.executor.Execute(ctx, inv, ports.ExecOptions{Stdout: span, Stderr: span, TTY: opts.TTY})
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	return false, nil
}
