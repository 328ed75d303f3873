package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmk/internal/core/domain"
)

func ptr(s string) *string { return &s }

func TestNewStepOptions_Defaults(t *testing.T) {
	opts := domain.NewStepOptions("configure", "/work")

	assert.Equal(t, "configure", opts.Name)
	assert.Equal(t, "/work", opts.BaseDir)
	assert.Equal(t, domain.DefaultToolPath, opts.ToolPath)
	assert.True(t, opts.FailOnError)
	assert.Empty(t, opts.BuildDir)
	assert.Zero(t, opts.Timeout)
}

func TestNewConfigureStep(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*domain.ConfigureStep)
		wantErr error
		check   func(t *testing.T, s *domain.ConfigureStep)
	}{
		{
			name: "resolves relative paths against the base dir",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
				s.BuildDir = "out"
				s.PreloadScript = "cmake/cache.cmake"
			},
			check: func(t *testing.T, s *domain.ConfigureStep) {
				t.Helper()
				assert.Equal(t, filepath.Join(base, "src"), s.SourceDir)
				assert.Equal(t, filepath.Join(base, "out"), s.BuildDir)
				assert.Equal(t, filepath.Join(base, "cmake", "cache.cmake"), s.PreloadScript)
			},
		},
		{
			name: "build dir defaults to the base dir",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
			},
			check: func(t *testing.T, s *domain.ConfigureStep) {
				t.Helper()
				assert.Equal(t, base, s.BuildDir)
			},
		},
		{
			name: "absolute source dir is kept",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "/opt/project"
			},
			check: func(t *testing.T, s *domain.ConfigureStep) {
				t.Helper()
				assert.Equal(t, "/opt/project", s.SourceDir)
			},
		},
		{
			name:    "missing source dir",
			mutate:  func(_ *domain.ConfigureStep) {},
			wantErr: domain.ErrMissingSourceDir,
		},
		{
			name: "empty tool path",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
				s.ToolPath = ""
			},
			wantErr: domain.ErrInvalidToolPath,
		},
		{
			name: "missing name",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
				s.Name = ""
			},
			wantErr: domain.ErrMissingStepName,
		},
		{
			name: "negative timeout",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
				s.Timeout = -time.Second
			},
			wantErr: domain.ErrInvalidTimeout,
		},
		{
			name: "environment entry without a name",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
				s.Environment = []domain.EnvironmentEntry{domain.NewEnvironmentEntry("", ptr("x"))}
			},
			wantErr: domain.ErrMissingEnvironmentName,
		},
		{
			name: "environment entry name with equals sign",
			mutate: func(s *domain.ConfigureStep) {
				s.SourceDir = "src"
				s.Environment = []domain.EnvironmentEntry{domain.NewEnvironmentEntry("A=B", nil)}
			},
			wantErr: domain.ErrInvalidEnvironmentName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := domain.ConfigureStep{StepOptions: domain.NewStepOptions("configure", base)}
			tt.mutate(&in)

			step, err := domain.NewConfigureStep(in)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.ErrorContains(t, err, tt.wantErr.Error())
				assert.Nil(t, step)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.KindConfigure, step.Kind())
			tt.check(t, step)
		})
	}
}

func TestNewBuildStep(t *testing.T) {
	base := t.TempDir()

	step, err := domain.NewBuildStep(domain.BuildStep{
		StepOptions: domain.NewStepOptions("build", base),
		Target:      "all",
		CleanFirst:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.KindBuild, step.Kind())
	assert.Equal(t, base, step.BuildDir)
	assert.Equal(t, "all", step.Target)
	assert.True(t, step.CleanFirst)
}

func TestNewBuildStep_MissingBaseDir(t *testing.T) {
	_, err := domain.NewBuildStep(domain.BuildStep{
		StepOptions: domain.NewStepOptions("build", ""),
	})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrMissingBaseDir.Error())
}

func TestStep_OptionsIsCopy(t *testing.T) {
	step, err := domain.NewBuildStep(domain.BuildStep{
		StepOptions: domain.StepOptions{
			Name:        "build",
			BaseDir:     t.TempDir(),
			ToolPath:    "cmake",
			Environment: []domain.EnvironmentEntry{domain.NewEnvironmentEntry("A", ptr("1"))},
		},
	})
	require.NoError(t, err)

	opts := step.Options()
	opts.Environment[0].Name = "B"

	assert.Equal(t, "A", step.Options().Environment[0].Name)
}

func TestNewConfigureStep_DoesNotAliasInput(t *testing.T) {
	env := []domain.EnvironmentEntry{domain.NewEnvironmentEntry("A", ptr("1"))}
	in := domain.ConfigureStep{StepOptions: domain.NewStepOptions("configure", t.TempDir()), SourceDir: "src"}
	in.Environment = env

	step, err := domain.NewConfigureStep(in)
	require.NoError(t, err)

	env[0].Name = "CHANGED"
	assert.Equal(t, "A", step.Environment[0].Name)
}

func TestParseStepKind(t *testing.T) {
	kind, err := domain.ParseStepKind("cmake-configure")
	require.NoError(t, err)
	assert.Equal(t, domain.KindConfigure, kind)

	kind, err = domain.ParseStepKind("cmake-build")
	require.NoError(t, err)
	assert.Equal(t, domain.KindBuild, kind)

	_, err = domain.ParseStepKind("make")
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrUnknownStepKind.Error())
}

func TestEnvironmentEntry_Applies(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.EnvironmentEntry
		want  bool
	}{
		{name: "if only", entry: domain.EnvironmentEntry{Name: "A", If: true}, want: true},
		{name: "if and unless", entry: domain.EnvironmentEntry{Name: "A", If: true, Unless: true}, want: false},
		{name: "neither", entry: domain.EnvironmentEntry{Name: "A"}, want: false},
		{name: "unless only", entry: domain.EnvironmentEntry{Name: "A", Unless: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Applies())
		})
	}
}

func TestEnvironmentEntry_ResolvedValue(t *testing.T) {
	assert.Empty(t, domain.NewEnvironmentEntry("A", nil).ResolvedValue())
	assert.Equal(t, "v", domain.NewEnvironmentEntry("A", ptr("v")).ResolvedValue())
}
