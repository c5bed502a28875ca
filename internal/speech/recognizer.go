package speech

import "context"

// Segment is one recognized chunk of speech with its confidence score.
// A zero confidence is treated as the default 0.8 during aggregation.
type Segment struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// CaptureOptions mirror the audio constraints requested from the capture
// device.
type CaptureOptions struct {
	Language         string
	MaxAlternatives  int
	InterimResults   bool
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
}

// DefaultCaptureOptions returns the options used for answer recording.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		Language:         "en-US",
		MaxAlternatives:  3,
		InterimResults:   true,
		EchoCancellation: true,
		NoiseSuppression: true,
		AutoGainControl:  true,
	}
}

// Recognizer produces batches of recognized segments from an audio source.
// Start begins a fresh recognition run; the returned channel is closed when
// recognition ends. Stop ends the run and releases the underlying device.
type Recognizer interface {
	Start(ctx context.Context, opts CaptureOptions) (<-chan []Segment, error)
	Stop() error
}
