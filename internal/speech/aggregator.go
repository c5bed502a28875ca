package speech

import "sort"

const (
	defaultConfidence = 0.8
	completeThreshold = 10
)

// Aggregator composes a final answer from recognition batches. Each batch is
// sorted by confidence and only the best segment is appended, space-separated,
// to the accumulated answer. Overlapping batches are not deduplicated; the
// answer grows monotonically within one recording run.
type Aggregator struct {
	answer string
}

// Add folds one batch of segments into the accumulated answer and reports the
// text appended. Empty batches are ignored.
func (a *Aggregator) Add(batch []Segment) string {
	if len(batch) == 0 {
		return ""
	}

	scored := make([]Segment, len(batch))
	copy(scored, batch)
	for i := range scored {
		if scored[i].Confidence == 0 {
			scored[i].Confidence = defaultConfidence
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})

	best := scored[0].Transcript
	if a.answer == "" {
		a.answer = best
	} else {
		a.answer = a.answer + " " + best
	}
	return best
}

// Answer returns the accumulated answer text.
func (a *Aggregator) Answer() string {
	return a.answer
}

// Complete reports whether the accumulated answer is long enough to submit.
func (a *Aggregator) Complete() bool {
	return len(a.answer) > completeThreshold
}

// Reset clears the accumulated answer for a new recording run.
func (a *Aggregator) Reset() {
	a.answer = ""
}
