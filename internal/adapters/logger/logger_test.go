package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cmk/internal/adapters/logger"
	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)
	return l, &buf
}

func stepFailure() error {
	cause := zerr.With(zerr.Wrap(errors.New("exit status 2"), "command failed"), "exit_code", 2)
	return zerr.With(zerr.Wrap(cause, domain.ErrStepExecutionFailed.Error()), "step", "configure")
}

func TestLogger_InfoAndWarn(t *testing.T) {
	l, buf := newLogger(t)

	l.Info("configuring")
	l.Warn("cmake not found in build dir")

	assert.Equal(t, "configuring\n! cmake not found in build dir\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		golden string
		err    error
	}{
		{golden: "error_step_failed", err: stepFailure()},
		{golden: "error_config", err: zerr.With(domain.ErrMissingSourceDir, "step", "configure")},
		{golden: "error_plain", err: errors.New("plain failure")},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			l, buf := newLogger(t)
			l.Error(tt.err)

			goldie.New(t).Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	l, buf := newLogger(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newLogger(t)
	l.SetJSON(true)

	l.Info("configuring")
	l.Error(errors.New("boom"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "configuring", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "operation failed", failure["msg"])
	assert.Equal(t, "boom", failure["error"])
}

func TestLogger_SetOutputKeepsFormat(t *testing.T) {
	l, _ := newLogger(t)
	l.SetJSON(true)

	var next bytes.Buffer
	l.SetOutput(&next)
	l.Info("moved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(next.Bytes()), &entry))
	assert.Equal(t, "moved", entry["msg"])
}
