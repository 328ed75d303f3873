package invocation

import (
	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/zerr"
)

// Composer turns steps into invocations. It holds no state and is safe for
// concurrent use.
type Composer struct{}

// NewComposer creates a new Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose validates the step and assembles its invocation.
// Validation errors are returned unmodified.
func (c *Composer) Compose(step domain.Step) (*domain.Invocation, error) {
	if step == nil {
		return nil, domain.ErrUnsupportedStepKind
	}
	if err := step.Validate(); err != nil {
		return nil, err
	}

	var args domain.Arguments
	switch s := step.(type) {
	case *domain.ConfigureStep:
		args = ConfigureArguments(s)
	case *domain.BuildStep:
		args = BuildArguments(s)
	default:
		return nil, zerr.With(domain.ErrUnsupportedStepKind, "kind", string(step.Kind()))
	}

	opts := step.Options()
	prep := Prepare(opts.BuildDir, opts.Environment)

	return &domain.Invocation{
		Step:        opts.Name,
		Kind:        step.Kind(),
		Program:     ResolveProgramPath(opts.ToolPath, opts.BaseDir),
		Arguments:   args,
		WorkingDir:  prep.WorkingDirectory,
		Environment: prep.EnvironmentOverrides,
		FailOnError: opts.FailOnError,
		Timeout:     opts.Timeout,
	}, nil
}
