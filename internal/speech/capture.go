package speech

import (
	"context"
	"fmt"
	"sync"
)

// Capture drives one recording run: it starts the recognizer, folds each
// segment batch into the aggregator as it arrives and exposes the accumulated
// answer once recording stops. Each Start clears prior results.
type Capture struct {
	rec  Recognizer
	opts CaptureOptions

	mu        sync.Mutex
	agg       Aggregator
	recording bool
	drained   chan struct{}
}

// NewCapture wraps a recognizer with answer aggregation.
func NewCapture(rec Recognizer, opts CaptureOptions) *Capture {
	return &Capture{rec: rec, opts: opts}
}

// Start begins a fresh recording run.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.recording {
		c.mu.Unlock()
		return fmt.Errorf("recording already in progress")
	}
	c.agg.Reset()
	c.recording = true
	c.drained = make(chan struct{})
	c.mu.Unlock()

	segments, err := c.rec.Start(ctx, c.opts)
	if err != nil {
		c.mu.Lock()
		c.recording = false
		close(c.drained)
		c.mu.Unlock()
		return err
	}

	go func() {
		defer close(c.drained)
		for batch := range segments {
			c.mu.Lock()
			c.agg.Add(batch)
			c.mu.Unlock()
		}
	}()
	return nil
}

// Stop ends the run, waits for in-flight batches and returns the accumulated
// answer along with whether it is long enough to submit.
func (c *Capture) Stop() (answer string, complete bool, err error) {
	c.mu.Lock()
	if !c.recording {
		c.mu.Unlock()
		return "", false, fmt.Errorf("not recording")
	}
	c.recording = false
	drained := c.drained
	c.mu.Unlock()

	if err := c.rec.Stop(); err != nil {
		return "", false, err
	}
	<-drained

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.Answer(), c.agg.Complete(), nil
}

// Done returns a channel closed once the current run's segment stream has
// ended and every batch is folded in. Callers that want the recognizer to
// finish on its own wait on it before calling Stop.
func (c *Capture) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drained
}

// Answer returns the answer accumulated so far.
func (c *Capture) Answer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.agg.Answer()
}
