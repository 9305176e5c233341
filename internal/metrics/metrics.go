// Package metrics exports checker counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements ngramspell.Metrics with Prometheus collectors.
type Metrics struct {
	sentences      prometheus.Counter
	tokens         prometheus.Counter
	typos          *prometheus.CounterVec
	lookupFailures prometheus.Counter
	duration       prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sentences: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ngramspell_sentences_checked_total",
			Help: "Total number of sentences checked.",
		}),
		tokens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ngramspell_tokens_checked_total",
			Help: "Total number of tokens checked.",
		}),
		typos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ngramspell_typos_total",
			Help: "Total number of typos detected, by whether a correction was found.",
		}, []string{"result"}),
		lookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ngramspell_lookup_failures_total",
			Help: "Total number of candidates the language model could not score.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ngramspell_check_duration_seconds",
			Help:    "Time spent checking one sentence.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
	for _, c := range []prometheus.Collector{m.sentences, m.tokens, m.typos, m.lookupFailures, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) SentenceChecked(tokens int, elapsed time.Duration) {
	m.sentences.Inc()
	m.tokens.Add(float64(tokens))
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) TypoDetected(corrected bool) {
	result := "corrected"
	if !corrected {
		result = "unknown"
	}
	m.typos.WithLabelValues(result).Inc()
}

func (m *Metrics) LookupFailed() {
	m.lookupFailures.Inc()
}
