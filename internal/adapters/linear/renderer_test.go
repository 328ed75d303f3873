package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmk/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_StepLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer(t)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	r.OnPlanEmit([]string{"configure", "build"})

	r.OnStepStart("span1", "configure", start)
	r.OnStepLog("span1", []byte("-- The C compiler identification is GNU\n-- Configuring"))
	r.OnStepLog("span1", []byte(" done\n"))
	r.OnStepComplete("span1", start.Add(1500*time.Millisecond), nil)

	r.OnStepStart("span2", "build", start)
	r.OnStepLog("span2", []byte("ninja: error: unknown target 'nope'\r\n"))
	r.OnStepComplete("span2", start.Add(250*time.Millisecond), errors.New("command failed"))

	require.NoError(t, r.Stop())

	g := goldie.New(t)
	g.Assert(t, "lifecycle_stdout", stdout.Bytes())
	g.Assert(t, "lifecycle_stderr", stderr.Bytes())
}

func TestRenderer_PartialLineFlushedOnComplete(t *testing.T) {
	r, stdout, _ := newRenderer(t)
	start := time.Now()

	r.OnStepStart("span1", "build", start)
	r.OnStepLog("span1", []byte("no newline"))
	assert.Empty(t, stdout.String())

	r.OnStepComplete("span1", start, nil)
	assert.Equal(t, "[build] no newline\n", stdout.String())
}

func TestRenderer_StopFlushesPartialLines(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnStepStart("span1", "build", time.Now())
	r.OnStepLog("span1", []byte("interrupted"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[build] interrupted\n", stdout.String())
}

func TestRenderer_IgnoresUnknownSpans(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	r.OnStepLog("missing", []byte("line\n"))
	r.OnStepComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_EmptyLinesAreSkipped(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnStepStart("span1", "build", time.Now())
	r.OnStepLog("span1", []byte("a\n\n\r\nb\n"))

	assert.Equal(t, "[build] a\n[build] b\n", stdout.String())
}

func TestNewRenderer_NilWriters(t *testing.T) {
	assert.NotNil(t, linear.NewRenderer(nil, nil))
}
