package speech

import (
	"context"
	"sync"
)

// ScriptedRecognizer replays a fixed sequence of recognition batches. It backs
// the terminal recorder and tests, standing in for a live capture device.
type ScriptedRecognizer struct {
	batches  [][]Segment
	startErr error

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewScriptedRecognizer returns a recognizer that emits the given batches in
// order, then closes its channel.
func NewScriptedRecognizer(batches [][]Segment) *ScriptedRecognizer {
	return &ScriptedRecognizer{batches: batches}
}

// NewFailingRecognizer returns a recognizer whose Start fails with err.
func NewFailingRecognizer(err error) *ScriptedRecognizer {
	return &ScriptedRecognizer{startErr: err}
}

// Start begins replaying batches. Each restart emits the full script again.
func (r *ScriptedRecognizer) Start(ctx context.Context, opts CaptureOptions) (<-chan []Segment, error) {
	_ = opts
	if r.startErr != nil {
		return nil, r.startErr
	}

	runCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	r.cancel = cancel
	r.running = true
	r.mu.Unlock()

	out := make(chan []Segment)
	go func() {
		defer close(out)
		for _, batch := range r.batches {
			select {
			case out <- batch:
			case <-runCtx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Stop ends the current run.
func (r *ScriptedRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.running = false
	return nil
}

var _ Recognizer = (*ScriptedRecognizer)(nil)
