package telemetry_test

import (
	"sync"
	"time"
)

// recordingRenderer is a test double for ports.Renderer that records calls in order.
type recordingRenderer struct {
	mu     sync.Mutex
	events []string
	logs   []byte
	plans  [][]string
	errs   []error
}

func (r *recordingRenderer) Stop() error { return nil }

func (r *recordingRenderer) OnPlanEmit(steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, steps)
	r.events = append(r.events, "plan")
}

func (r *recordingRenderer) OnStepStart(_, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start:"+name)
}

func (r *recordingRenderer) OnStepLog(_ string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, data...)
	r.events = append(r.events, "log")
}

func (r *recordingRenderer) OnStepComplete(_ string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	r.events = append(r.events, "complete")
}

func (r *recordingRenderer) snapshot() ([]string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), string(r.logs)
}
