package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	answersScoredTotal       atomic.Uint64
	answersSavedTotal        atomic.Uint64
	answersRejectedTotal     atomic.Uint64
	generationStartedTotal   atomic.Uint64
	generationCompletedTotal atomic.Uint64
	generationFailedTotal    atomic.Uint64
	interviewsCompletedTotal atomic.Uint64

	scoringDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncAnswerScored increments the scored-answers counter.
func IncAnswerScored() {
	answersScoredTotal.Add(1)
}

// IncAnswerSaved increments the saved-answers counter.
func IncAnswerSaved() {
	answersSavedTotal.Add(1)
}

// IncAnswerRejected increments the rejected-answers counter (duplicates, bad input).
func IncAnswerRejected() {
	answersRejectedTotal.Add(1)
}

// IncGenerationStarted increments the question-generation started counter.
func IncGenerationStarted() {
	generationStartedTotal.Add(1)
}

// IncGenerationCompleted increments the question-generation completed counter.
func IncGenerationCompleted() {
	generationCompletedTotal.Add(1)
}

// IncGenerationFailed increments the question-generation failed counter.
func IncGenerationFailed() {
	generationFailedTotal.Add(1)
}

// IncInterviewCompleted increments the completed-interviews counter.
func IncInterviewCompleted() {
	interviewsCompletedTotal.Add(1)
}

// ObserveScoringDurationMs records a feedback-scoring duration in milliseconds.
func ObserveScoringDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scoringDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "answers_scored_total", "Total answers scored", answersScoredTotal.Load())
	writeCounter(&buf, "answers_saved_total", "Total answers saved", answersSavedTotal.Load())
	writeCounter(&buf, "answers_rejected_total", "Total answers rejected", answersRejectedTotal.Load())
	writeCounter(&buf, "generation_started_total", "Total question generations started", generationStartedTotal.Load())
	writeCounter(&buf, "generation_completed_total", "Total question generations completed", generationCompletedTotal.Load())
	writeCounter(&buf, "generation_failed_total", "Total question generations failed", generationFailedTotal.Load())
	writeCounter(&buf, "interviews_completed_total", "Total interviews completed", interviewsCompletedTotal.Load())
	writeHistogram(&buf, "scoring_duration_ms", "Feedback scoring duration in milliseconds", scoringDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
