package invocation

import (
	"path/filepath"

	"go.trai.ch/cmk/internal/core/domain"
)

// Preparation is the working directory and environment of an invocation.
type Preparation struct {
	WorkingDirectory     string
	EnvironmentOverrides map[string]string
}

// Prepare resolves the working directory and applies the environment entries
// in declaration order. Later entries overwrite earlier ones with the same name.
func Prepare(buildDir string, entries []domain.EnvironmentEntry) Preparation {
	workDir, err := filepath.Abs(buildDir)
	if err != nil {
		workDir = filepath.Clean(buildDir)
	}

	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.Applies() {
			continue
		}
		env[entry.Name] = entry.ResolvedValue()
	}

	return Preparation{
		WorkingDirectory:     workDir,
		EnvironmentOverrides: env,
	}
}
