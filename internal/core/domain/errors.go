package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingStepName is returned when a step is declared without a name.
	ErrMissingStepName = zerr.New("step name is required")

	// ErrMissingBaseDir is returned when a step has no base directory to resolve paths against.
	ErrMissingBaseDir = zerr.New("base directory is required")

	// ErrMissingSourceDir is returned when a configure step has no source directory.
	ErrMissingSourceDir = zerr.New("source directory is required")

	// ErrInvalidToolPath is returned when the tool path is explicitly configured as empty.
	ErrInvalidToolPath = zerr.New("tool path must not be empty")

	// ErrMissingEnvironmentName is returned when an environment entry has no name.
	ErrMissingEnvironmentName = zerr.New("environment variable name is required")

	// ErrInvalidEnvironmentName is returned when an environment entry name contains '='.
	ErrInvalidEnvironmentName = zerr.New("environment variable name must not contain '='")

	// ErrInvalidTimeout is returned when a step timeout is negative or cannot be parsed.
	ErrInvalidTimeout = zerr.New("invalid step timeout")

	// ErrUnknownStepKind is returned when a declared step kind is not recognized.
	ErrUnknownStepKind = zerr.New("unknown step kind, expected 'cmake-configure' or 'cmake-build'")

	// ErrUnsupportedStepKind is returned when the composer receives a step it cannot map.
	ErrUnsupportedStepKind = zerr.New("unsupported step kind")

	// ErrUnsupportedAttribute is returned when a step declares an attribute that does not belong to its kind.
	ErrUnsupportedAttribute = zerr.New("attribute is not supported by this step kind")

	// ErrDuplicateStepName is returned when two steps in one file share a name.
	ErrDuplicateStepName = zerr.New("duplicate step name")

	// ErrInvalidCondition is returned when an if/unless condition cannot be compiled or evaluated.
	ErrInvalidCondition = zerr.New("invalid condition")

	// ErrNoStepsDefined is returned when the step file declares no steps.
	ErrNoStepsDefined = zerr.New("no steps defined")

	// ErrStepNotFound is returned when a requested step is not declared.
	ErrStepNotFound = zerr.New("step not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find cmk.yaml")

	// ErrStepExecutionFailed is returned when a step invocation fails.
	ErrStepExecutionFailed = zerr.New("step execution failed")

	// ErrRunFailed is returned when one or more steps of a run failed.
	ErrRunFailed = zerr.New("run failed")

	// ErrInvalidPlanFormat is returned when an unknown plan output format is requested.
	ErrInvalidPlanFormat = zerr.New("invalid plan format, expected 'text', 'json' or 'yaml'")

	// ErrPlanEncodeFailed is returned when a plan cannot be encoded.
	ErrPlanEncodeFailed = zerr.New("failed to encode plan")
)
