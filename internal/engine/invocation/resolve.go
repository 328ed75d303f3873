// Package invocation composes CMake invocations from validated steps.
package invocation

import (
	"os"
	"path/filepath"
)

// ResolveProgramPath returns the executable to hand to the spawner.
//
// Absolute paths are returned unchanged without an existence check. A relative
// path is resolved against baseDir and returned as an absolute path if a file
// exists there. Otherwise the configured string is returned as-is so the
// spawner can search PATH.
func ResolveProgramPath(configured, baseDir string) string {
	if filepath.IsAbs(configured) {
		return configured
	}

	candidate := filepath.Join(baseDir, configured)
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return configured
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		return configured
	}
	return abs
}
