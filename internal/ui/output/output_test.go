package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/cmk/internal/ui/output"
	"go.trai.ch/cmk/internal/ui/style"
)

func TestProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.Profile(true))
	assert.Equal(t, termenv.Ascii, output.Profile(false))

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.Profile(false))

	p := output.Profile(true)
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf, false)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNew_NilWriter(t *testing.T) {
	assert.NotNil(t, output.New(nil, true))
}

func TestPaint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out := output.New(&bytes.Buffer{}, false)
	assert.Equal(t, "done", output.Paint(out, "done", string(style.Green)))

	t.Setenv("NO_COLOR", "")
	out = output.New(&bytes.Buffer{}, false)
	painted := output.Paint(out, "done", string(style.Green))
	assert.Contains(t, painted, "done")
	assert.NotEqual(t, "done", painted)
}
