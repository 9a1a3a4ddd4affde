package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	jobSearchTotal       atomic.Uint64
	jobSearchLiveTotal   atomic.Uint64
	jobFallbackTotal     atomic.Uint64
	llmFallbackTotal     atomic.Uint64
	sessionRecordedTotal atomic.Uint64

	jobSearchDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000})
)

// IncJobSearch increments the job search counter.
func IncJobSearch() {
	jobSearchTotal.Add(1)
}

// IncJobSearchLive counts searches answered by the live provider.
func IncJobSearchLive() {
	jobSearchLiveTotal.Add(1)
}

// IncJobFallback counts searches answered by the fallback catalog.
func IncJobFallback() {
	jobFallbackTotal.Add(1)
}

// IncLLMFallback counts LLM calls that resolved to a default record.
func IncLLMFallback() {
	llmFallbackTotal.Add(1)
}

// IncSessionRecorded counts persisted interview sessions.
func IncSessionRecorded() {
	sessionRecordedTotal.Add(1)
}

// ObserveJobSearchDurationMs records a job search duration in milliseconds.
func ObserveJobSearchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	jobSearchDuration.Observe(value)
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
	writeCounter(&buf, "job_search_total", "Total job searches", jobSearchTotal.Load())
	writeCounter(&buf, "job_search_live_total", "Job searches served by the search provider", jobSearchLiveTotal.Load())
	writeCounter(&buf, "job_search_fallback_total", "Job searches served by the fallback catalog", jobFallbackTotal.Load())
	writeCounter(&buf, "llm_fallback_total", "LLM calls resolved to a default record", llmFallbackTotal.Load())
	writeCounter(&buf, "session_recorded_total", "Interview sessions recorded", sessionRecordedTotal.Load())
	writeHistogram(&buf, "job_search_duration_ms", "Job search duration in milliseconds", jobSearchDuration.Snapshot())
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

// Observe counts value into the first bucket whose bound is >= value.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
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
