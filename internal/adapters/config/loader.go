// Package config loads cmk.yaml step files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/cmk/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the step file version this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// Environ supplies the variables conditions see as env.
	Environ func() []string
}

// NewLoader creates a new Loader reading from the operating system.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS(), Environ: os.Environ}
}

// Load finds the step file at or above cwd and builds one validated step per
// declaration. Any configuration error aborts the load.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	var stepfile Stepfile
	if err := l.readAndUnmarshalYAML(configPath, &stepfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if stepfile.Version != "" && stepfile.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", domain.CmkFileName, stepfile.Version, SupportedVersion))
	}

	if len(stepfile.Steps) == 0 {
		return nil, zerr.With(domain.ErrNoStepsDefined, "path", configPath)
	}

	project := &domain.Project{
		ConfigPath: configPath,
		Root:       resolveRoot(configPath, stepfile.Root),
		Steps:      make([]domain.Step, 0, len(stepfile.Steps)),
	}

	vars := conditionEnv(l.environ(), stepfile.Properties)
	seen := make(map[string]int, len(stepfile.Steps))

	for i, dto := range stepfile.Steps {
		if dto == nil {
			return nil, zerr.With(domain.ErrMissingStepName, "index", i)
		}
		if first, dup := seen[dto.Name]; dup && dto.Name != "" {
			err := zerr.With(domain.ErrDuplicateStepName, "step", dto.Name)
			err = zerr.With(err, "first_occurrence", first)
			return nil, zerr.With(err, "duplicate_at", i)
		}
		seen[dto.Name] = i

		step, err := l.buildStep(project.Root, dto, vars)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		project.Steps = append(project.Steps, step)
	}

	return project, nil
}

func (l *Loader) environ() []string {
	if l.Environ == nil {
		return nil
	}
	return l.Environ()
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		candidate := filepath.Join(currentDir, domain.CmkFileName)
		if info, err := l.FS.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) buildStep(root string, dto *StepDTO, vars map[string]any) (domain.Step, error) {
	kind, err := domain.ParseStepKind(dto.Kind)
	if err != nil {
		return nil, zerr.With(err, "step", dto.Name)
	}

	if err := checkAttributes(kind, dto); err != nil {
		return nil, err
	}

	opts, err := buildOptions(root, dto, vars)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindConfigure:
		if dto.PreloadScript != "" && dto.Generator == "" {
			l.Logger.Warn(fmt.Sprintf("step %q: preloadscript is ignored without a generator", dto.Name))
		}
		return domain.NewConfigureStep(domain.ConfigureStep{
			StepOptions:   opts,
			SourceDir:     dto.SourceDir,
			BuildType:     dto.BuildType,
			Generator:     dto.Generator,
			PreloadScript: dto.PreloadScript,
			ExtraArgs:     dto.CMakeArgs,
		})
	default:
		return domain.NewBuildStep(domain.BuildStep{
			StepOptions:       opts,
			Target:            dto.Target,
			Configuration:     dto.Config,
			CleanFirst:        dto.CleanFirst != nil && *dto.CleanFirst,
			NativeToolOptions: dto.NativeToolOptions,
		})
	}
}

// checkAttributes rejects attributes that belong to the other step kind.
func checkAttributes(kind domain.StepKind, dto *StepDTO) error {
	foreign := dto.buildAttributes()
	if kind == domain.KindBuild {
		foreign = dto.configureAttributes()
	}
	if len(foreign) == 0 {
		return nil
	}

	err := zerr.With(domain.ErrUnsupportedAttribute, "step", dto.Name)
	err = zerr.With(err, "kind", string(kind))
	return zerr.With(err, "attribute", foreign[0])
}

func buildOptions(root string, dto *StepDTO, vars map[string]any) (domain.StepOptions, error) {
	opts := domain.NewStepOptions(dto.Name, root)
	opts.BuildDir = dto.BuildDir

	if dto.CMakePath != nil {
		opts.ToolPath = *dto.CMakePath
	}
	if dto.FailOnError != nil {
		opts.FailOnError = *dto.FailOnError
	}

	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrInvalidTimeout.Error()), "step", dto.Name)
			return opts, zerr.With(err, "timeout", dto.Timeout)
		}
		opts.Timeout = timeout
	}

	entries := make([]domain.EnvironmentEntry, 0, len(dto.Environment))
	for i, env := range dto.Environment {
		include, err := env.If.evaluate(vars, true)
		if err != nil {
			return opts, zerr.With(zerr.With(err, "step", dto.Name), "environment", i)
		}
		exclude, err := env.Unless.evaluate(vars, false)
		if err != nil {
			return opts, zerr.With(zerr.With(err, "step", dto.Name), "environment", i)
		}

		entries = append(entries, domain.EnvironmentEntry{
			Name:   env.Name,
			Value:  env.Value,
			If:     include,
			Unless: exclude,
		})
	}
	opts.Environment = entries

	return opts, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file strictly: unknown attributes are
// parse errors.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *Stepfile) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func setAttributes(attrs map[string]bool) []string {
	var set []string
	for name, ok := range attrs {
		if ok {
			set = append(set, name)
		}
	}
	slices.Sort(set)
	return set
}
