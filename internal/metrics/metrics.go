// README: Prometheus collectors for the conversation pipeline. A nil *Metrics is a no-op.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	events             *prometheus.CounterVec
	replies            *prometheus.CounterVec
	extractionFailures *prometheus.CounterVec
	searchResults      prometheus.Histogram
	llmDuration        prometheus.Histogram
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoatende_events_total",
			Help: "Inbound conversation events by kind",
		}, []string{"kind"}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoatende_replies_total",
			Help: "Handled events by reply state",
		}, []string{"state"}),
		extractionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoatende_extraction_failures_total",
			Help: "Failed model calls by reason",
		}, []string{"reason"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autoatende_search_results",
			Help:    "Vehicles returned per inventory search",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),
		llmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autoatende_llm_duration_seconds",
			Help:    "Latency of language model calls",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.events, m.replies, m.extractionFailures, m.searchResults, m.llmDuration)
	return m
}

func (m *Metrics) ObserveEvent(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveReply(state string) {
	if m == nil {
		return
	}
	m.replies.WithLabelValues(state).Inc()
}

func (m *Metrics) ObserveExtractionFailure(reason string) {
	if m == nil {
		return
	}
	m.extractionFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveSearch(results int) {
	if m == nil {
		return
	}
	m.searchResults.Observe(float64(results))
}

func (m *Metrics) ObserveLLM(d time.Duration) {
	if m == nil {
		return
	}
	m.llmDuration.Observe(d.Seconds())
}
