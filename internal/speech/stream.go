package speech

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// StreamRecognizer turns lines read from an io.Reader into recognition
// batches, one segment per line. A blank line or EOF ends the run. It backs
// the terminal recorder, where the "microphone" is the keyboard.
type StreamRecognizer struct {
	r *bufio.Reader

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewStreamRecognizer wraps r. Each Start consumes lines from where the
// previous run left off. An existing bufio.Reader is reused so the caller can
// keep reading the same stream between runs.
func NewStreamRecognizer(r io.Reader) *StreamRecognizer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &StreamRecognizer{r: br}
}

// Start begins reading lines from the stream.
func (s *StreamRecognizer) Start(ctx context.Context, opts CaptureOptions) (<-chan []Segment, error) {
	_ = opts

	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	out := make(chan []Segment)
	go func() {
		defer close(out)
		for {
			line, err := s.r.ReadString('\n')
			text := strings.TrimSpace(line)
			if text != "" {
				select {
				case out <- []Segment{{Transcript: text, Confidence: 1}}:
				case <-runCtx.Done():
					return
				}
			}
			if err != nil || text == "" {
				return
			}
		}
	}()
	return out, nil
}

// Stop ends the current run.
func (s *StreamRecognizer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.running = false
	return nil
}

var _ Recognizer = (*StreamRecognizer)(nil)
