package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cmk/internal/core/domain"
)

func newInvocation() *domain.Invocation {
	return &domain.Invocation{
		Step:        "build",
		Kind:        domain.KindBuild,
		Program:     "cmake",
		Arguments:   domain.NewArguments(domain.Literal("--build"), domain.Dir("/tmp/out")),
		WorkingDir:  "/tmp/out",
		Environment: map[string]string{"B": "2", "A": "1"},
	}
}

func TestInvocation_CommandLine(t *testing.T) {
	assert.Equal(t, "cmake --build /tmp/out", newInvocation().CommandLine())

	inv := &domain.Invocation{Program: "cmake"}
	assert.Equal(t, "cmake", inv.CommandLine())
}

func TestInvocation_EnvironmentNames(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, newInvocation().EnvironmentNames())
}

func TestInvocation_Fingerprint(t *testing.T) {
	a := newInvocation()
	b := newInvocation()

	assert.Len(t, a.Fingerprint(), 16)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Arguments.Append(domain.Literal("--clean-first"))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := newInvocation()
	c.Environment["A"] = "changed"
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := newInvocation()
	d.Step = "renamed"
	assert.Equal(t, a.Fingerprint(), d.Fingerprint(), "the step name does not affect the launch")
}
