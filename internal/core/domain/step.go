package domain

import (
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// StepKind identifies the tool mode a step runs in.
type StepKind string

const (
	// KindConfigure generates build scripts from a source tree.
	KindConfigure StepKind = "cmake-configure"
	// KindBuild compiles from a previously generated build tree.
	KindBuild StepKind = "cmake-build"
)

// ParseStepKind maps a declared kind to a StepKind.
func ParseStepKind(s string) (StepKind, error) {
	switch StepKind(s) {
	case KindConfigure, KindBuild:
		return StepKind(s), nil
	default:
		return "", zerr.With(ErrUnknownStepKind, "kind", s)
	}
}

// Step is a validated, immutable step declaration.
type Step interface {
	// Kind returns the step kind.
	Kind() StepKind
	// Options returns the settings shared by every step kind.
	Options() StepOptions
	// Validate re-checks the step's invariants.
	Validate() error
}

// StepOptions holds the settings shared by every step kind.
type StepOptions struct {
	Name string
	// BaseDir is the absolute directory relative paths are resolved against.
	BaseDir string
	// ToolPath is the CMake executable, absolute or relative to BaseDir.
	ToolPath string
	// BuildDir defaults to BaseDir when empty.
	BuildDir    string
	Environment []EnvironmentEntry
	// FailOnError controls whether a failing invocation fails the run.
	FailOnError bool
	// Timeout bounds the invocation; zero means no limit.
	Timeout time.Duration
}

// NewStepOptions returns options with the documented defaults applied.
func NewStepOptions(name, baseDir string) StepOptions {
	return StepOptions{
		Name:        name,
		BaseDir:     baseDir,
		ToolPath:    DefaultToolPath,
		FailOnError: true,
	}
}

// Options returns a copy of the options.
func (o StepOptions) Options() StepOptions {
	o.Environment = slices.Clone(o.Environment)
	return o
}

func (o *StepOptions) normalize() {
	if o.BaseDir != "" {
		o.BaseDir = absPath(o.BaseDir)
	}
	if o.BuildDir == "" {
		o.BuildDir = o.BaseDir
	} else {
		o.BuildDir = resolveAgainst(o.BaseDir, o.BuildDir)
	}
	o.Environment = slices.Clone(o.Environment)
}

func (o StepOptions) validate() error {
	if o.Name == "" {
		return ErrMissingStepName
	}
	if o.BaseDir == "" {
		return zerr.With(ErrMissingBaseDir, "step", o.Name)
	}
	if o.ToolPath == "" {
		return zerr.With(ErrInvalidToolPath, "step", o.Name)
	}
	if o.Timeout < 0 {
		err := zerr.With(ErrInvalidTimeout, "step", o.Name)
		return zerr.With(err, "timeout", o.Timeout.String())
	}
	for i, entry := range o.Environment {
		if err := entry.Validate(); err != nil {
			err = zerr.With(err, "step", o.Name)
			return zerr.With(err, "index", i)
		}
	}
	return nil
}

// ConfigureStep generates build scripts from a source tree.
type ConfigureStep struct {
	StepOptions
	SourceDir     string
	BuildType     string
	Generator     string
	PreloadScript string
	// ExtraArgs is appended verbatim.
	ExtraArgs string
}

// NewConfigureStep normalizes and validates a configure step.
// Relative directories and files are resolved against BaseDir.
func NewConfigureStep(s ConfigureStep) (*ConfigureStep, error) {
	s.normalize()
	if s.SourceDir != "" {
		s.SourceDir = resolveAgainst(s.BaseDir, s.SourceDir)
	}
	if s.PreloadScript != "" {
		s.PreloadScript = resolveAgainst(s.BaseDir, s.PreloadScript)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Kind returns KindConfigure.
func (s *ConfigureStep) Kind() StepKind {
	return KindConfigure
}

// Validate checks the step's invariants.
func (s *ConfigureStep) Validate() error {
	if err := s.validate(); err != nil {
		return err
	}
	if s.SourceDir == "" {
		return zerr.With(ErrMissingSourceDir, "step", s.Name)
	}
	return nil
}

// BuildStep compiles from a previously generated build tree.
type BuildStep struct {
	StepOptions
	Target        string
	Configuration string
	CleanFirst    bool
	// NativeToolOptions is appended verbatim.
	NativeToolOptions string
}

// NewBuildStep normalizes and validates a build step.
func NewBuildStep(s BuildStep) (*BuildStep, error) {
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Kind returns KindBuild.
func (s *BuildStep) Kind() StepKind {
	return KindBuild
}

// Validate checks the step's invariants.
func (s *BuildStep) Validate() error {
	return s.validate()
}

func resolveAgainst(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}
