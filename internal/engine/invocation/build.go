package invocation

import "go.trai.ch/cmk/internal/core/domain"

// BuildArguments returns the ordered arguments of a build invocation.
func BuildArguments(step *domain.BuildStep) domain.Arguments {
	args := domain.NewArguments(domain.Literal("--build"), domain.Dir(step.BuildDir))

	if step.Target != "" {
		args.Append(domain.Literal("--target"), domain.Literal(step.Target))
	}

	if step.Configuration != "" {
		args.Append(domain.Literal("--config"), domain.Literal(step.Configuration))
	}

	if step.CleanFirst {
		args.Append(domain.Literal("--clean-first"))
	}

	if step.NativeToolOptions != "" {
		args.Append(domain.Line(step.NativeToolOptions))
	}

	return args
}
