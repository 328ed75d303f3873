// Package app implements the application layer for cmk.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/cmk/internal/adapters/linear"
	"go.trai.ch/cmk/internal/adapters/telemetry"
	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/cmk/internal/core/ports"
	"go.trai.ch/cmk/internal/engine/invocation"
	"go.trai.ch/cmk/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	composer     *invocation.Composer
	logger       ports.Logger
	stdout       io.Writer
	stderr       io.Writer
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	composer *invocation.Composer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		composer:     composer,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		getwd:        os.Getwd,
	}
}

// WithOutput sets the streams the step progress is rendered to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWorkingDir pins the directory the step file is discovered from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Verbose logs each composed command line before it is spawned.
	Verbose bool
	// TTY spawns each step under a pseudo-terminal.
	TTY bool
	// JSON switches the logger to JSON output.
	JSON bool
}

// Run executes the named steps in declaration order.
// With no names, every declared step runs.
func (a *App) Run(ctx context.Context, stepNames []string, opts RunOptions) error {
	if opts.JSON {
		if l, ok := a.logger.(jsonSwitcher); ok {
			l.SetJSON(true)
		}
	}

	steps, err := a.selectSteps(stepNames)
	if err != nil {
		return err
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr)

	// Spans are forwarded to the renderer through the bridge.
	tp := setupOTel(telemetry.NewBridge(renderer))
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName).WithRenderer(renderer)
	sched := scheduler.NewScheduler(a.composer, a.executor, tracer, a.logger)

	runErr := sched.Run(ctx, steps, scheduler.Options{
		Verbose: opts.Verbose,
		TTY:     opts.TTY,
	})
	_ = renderer.Stop()

	if runErr != nil {
		return errors.Join(domain.ErrRunFailed, runErr)
	}
	return nil
}

func (a *App) selectSteps(stepNames []string) ([]domain.Step, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}

	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	return project.Select(stepNames)
}

// setupOTel installs a tracer provider that reports every span to bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
