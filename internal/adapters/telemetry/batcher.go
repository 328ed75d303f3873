// Package telemetry records step executions as OpenTelemetry spans and
// forwards them to a renderer.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffer size that forces a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the interval at which complete lines are flushed.
	DefaultTimeLimit = 50 * time.Millisecond
)

// ErrBatcherClosed is returned when writing to a closed BatchProcessor.
var ErrBatcherClosed = errors.New("batch processor is closed")

// BatchProcessor buffers step output and hands it to onFlush in chunks.
// Timed flushes only release complete lines so a renderer never sees a line
// split across two chunks unless it exceeds the size limit. Close releases
// everything. It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatchProcessor starts a processor. Non-positive limits select the
// defaults. Call Close to stop the background ticker.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	bp := &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		buffer:    new(bytes.Buffer),
		stopCh:    make(chan struct{}),
		ticker:    time.NewTicker(timeLimit),
	}
	go bp.run()

	return bp
}

// Write appends p and flushes everything once the size limit is reached.
func (bp *BatchProcessor) Write(p []byte) (n int, err error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, ErrBatcherClosed
	}

	n, _ = bp.buffer.Write(p)

	if bp.buffer.Len() >= bp.sizeLimit {
		bp.flushLocked(true)
		bp.ticker.Reset(bp.timeLimit)
	}

	return n, nil
}

// Flush releases all complete lines.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return
	}
	bp.flushLocked(false)
}

// Close stops the background flusher and releases whatever is buffered.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}

	bp.closed = true
	close(bp.stopCh)
	bp.flushLocked(true)
	return nil
}

func (bp *BatchProcessor) run() {
	for {
		select {
		case <-bp.ticker.C:
			bp.Flush()
		case <-bp.stopCh:
			bp.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. onFlush runs under the lock so
// chunks arrive in order.
func (bp *BatchProcessor) flushLocked(all bool) {
	n := bp.buffer.Len()
	if !all {
		n = bytes.LastIndexByte(bp.buffer.Bytes(), '\n') + 1
	}
	if n == 0 {
		return
	}

	data := make([]byte, n)
	copy(data, bp.buffer.Next(n))
	if bp.buffer.Len() == 0 {
		bp.buffer.Reset()
	}

	if bp.onFlush != nil {
		bp.onFlush(data)
	}
}
