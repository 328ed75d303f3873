package invocation

import "go.trai.ch/cmk/internal/core/domain"

// ConfigureArguments returns the ordered arguments of a configure invocation.
func ConfigureArguments(step *domain.ConfigureStep) domain.Arguments {
	args := domain.NewArguments(domain.Dir(step.SourceDir))

	// Keyed on the generator, not the preload script. A preload script
	// without a generator emits nothing.
	if step.Generator != "" && step.PreloadScript != "" {
		args.Append(domain.Literal("-C"), domain.File(step.PreloadScript))
	}

	if step.Generator != "" {
		args.Append(domain.Literal("-G"), domain.Literal(step.Generator))
	}

	if step.BuildType != "" {
		args.Append(domain.Literal("-DCMAKE_BUILD_TYPE=" + step.BuildType))
	}

	if step.ExtraArgs != "" {
		args.Append(domain.Line(step.ExtraArgs))
	}

	return args
}
