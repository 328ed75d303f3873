package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/cmk/internal/adapters/telemetry"
	"go.trai.ch/cmk/internal/core/ports"
)

func setupRecorder(t *testing.T, processors ...sdktrace.SpanProcessor) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()

	opts := []sdktrace.TracerProviderOption{sdktrace.WithSpanProcessor(sr)}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func attrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestOTelTracer_StartAttributes(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "build",
		ports.WithAttribute(string(telemetry.StepAttribute), "build"),
		ports.WithAttribute("step.timeout_seconds", 30),
	)
	span.SetAttribute("step.fail_on_error", true)
	span.SetAttribute("step.fingerprint", "abc")
	span.SetAttribute("step.args", []string{"--build", "out"})
	span.SetAttribute("step.ratio", 0.5)
	span.SetAttribute("step.bytes", int64(7))
	span.SetAttribute("step.other", struct{ A int }{1})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	got := attrs(ended[0].Attributes())

	assert.Equal(t, "build", got[telemetry.StepAttribute].AsString())
	assert.Equal(t, int64(30), got["step.timeout_seconds"].AsInt64())
	assert.True(t, got["step.fail_on_error"].AsBool())
	assert.Equal(t, "abc", got["step.fingerprint"].AsString())
	assert.Equal(t, []string{"--build", "out"}, got["step.args"].AsStringSlice())
	assert.InDelta(t, 0.5, got["step.ratio"].AsFloat64(), 0)
	assert.Equal(t, int64(7), got["step.bytes"].AsInt64())
	assert.Equal(t, "{1}", got["step.other"].AsString())
}

func TestOTelTracer_RecordError(t *testing.T) {
	sr := setupRecorder(t)

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "build")
	span.RecordError(errors.New("exit status 2"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "exit status 2", ended[0].Status().Description)
}

func TestOTelTracer_WriteWithoutRendererAddsEvents(t *testing.T) {
	sr := setupRecorder(t)

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "build")
	n, err := span.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "log", events[0].Name)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr := setupRecorder(t)
	renderer := &recordingRenderer{}
	tracer := telemetry.NewOTelTracer("test").WithRenderer(renderer)

	// Without a recording span only the renderer hears about the plan.
	tracer.EmitPlan(context.Background(), []string{"configure"})

	ctx, root := otel.Tracer("test").Start(context.Background(), "run")
	tracer.EmitPlan(ctx, []string{"configure", "build"})
	root.End()

	assert.Equal(t, [][]string{{"configure"}, {"configure", "build"}}, renderer.plans)

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
}

func TestOTelTracer_RendererOrdering(t *testing.T) {
	renderer := &recordingRenderer{}
	setupRecorder(t, telemetry.NewBridge(renderer))
	tracer := telemetry.NewOTelTracer("test").WithRenderer(renderer)

	_, span := tracer.Start(context.Background(), "configure",
		ports.WithAttribute(string(telemetry.StepAttribute), "configure"))
	_, err := span.Write([]byte("-- Configuring done\n-- Generating"))
	require.NoError(t, err)
	span.End()

	events, logs := renderer.snapshot()
	require.NotEmpty(t, events)
	assert.Equal(t, "start:configure", events[0])
	assert.Equal(t, "complete", events[len(events)-1])
	assert.Equal(t, "-- Configuring done\n-- Generating", logs)
}
