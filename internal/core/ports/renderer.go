package ports

import "time"

// Renderer is the abstraction for step progress output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Stop flushes any buffered output.
	Stop() error

	// OnPlanEmit is called with the step names in execution order.
	OnPlanEmit(steps []string)

	// OnStepStart is called when a step begins.
	// spanID identifies this execution; name is the step name.
	OnStepStart(spanID, name string, startTime time.Time)

	// OnStepLog is called when a step emits output.
	// data may contain partial lines.
	OnStepLog(spanID string, data []byte)

	// OnStepComplete is called when a step finishes; err is nil on success.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
