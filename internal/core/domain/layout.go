package domain

const (
	// CmkFileName is the name of the step file.
	CmkFileName = "cmk.yaml"

	// DefaultToolPath is the CMake executable used when none is configured.
	DefaultToolPath = "cmake"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
