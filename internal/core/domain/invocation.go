package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Invocation describes one fully composed process launch.
type Invocation struct {
	Step        string
	Kind        StepKind
	Program     string
	Arguments   Arguments
	WorkingDir  string
	Environment map[string]string
	FailOnError bool
	Timeout     time.Duration
}

// CommandLine returns the program followed by the rendered arguments.
func (i *Invocation) CommandLine() string {
	if i.Arguments.Len() == 0 {
		return i.Program
	}
	return i.Program + " " + i.Arguments.String()
}

// EnvironmentNames returns the override names in sorted order.
func (i *Invocation) EnvironmentNames() []string {
	return slices.Sorted(maps.Keys(i.Environment))
}

// Fingerprint returns a stable digest of everything that affects the launch.
func (i *Invocation) Fingerprint() string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}

	write(i.Program)
	write(i.Arguments.String())
	write(i.WorkingDir)
	for _, name := range i.EnvironmentNames() {
		write(name + "=" + i.Environment[name])
	}

	return fmt.Sprintf("%016x", d.Sum64())
}
