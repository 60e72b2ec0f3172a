package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors recorded by the search flow. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	searches       *prometheus.CounterVec
	pollAttempts   prometheus.Histogram
	startFallbacks *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
	searchDuration prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
}

// New builds the collectors and registers them with reg. Passing
// prometheus.DefaultRegisterer exposes them on promhttp.Handler().
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aviasearch",
			Name:      "searches_total",
			Help:      "Searches by outcome.",
		}, []string{"outcome"}),
		pollAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aviasearch",
			Name:      "poll_attempts",
			Help:      "Poll attempts used per search session.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		startFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aviasearch",
			Name:      "start_attempts_total",
			Help:      "Start calls by credential tier and result.",
		}, []string{"tier", "result"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aviasearch",
			Name:      "credential_refreshes_total",
			Help:      "Credential refreshes by result.",
		}, []string{"result"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aviasearch",
			Name:      "search_duration_seconds",
			Help:      "Wall time from start call to converged payload.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aviasearch",
			Name:      "cache_lookups_total",
			Help:      "Summary cache lookups by result.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.searches, m.pollAttempts, m.startFallbacks, m.refreshes, m.searchDuration, m.cacheLookups)
	}
	return m
}

func (m *Metrics) SearchFinished(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
	if outcome == "converged" {
		m.searchDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) PollAttempts(n int) {
	if m == nil {
		return
	}
	m.pollAttempts.Observe(float64(n))
}

func (m *Metrics) StartAttempt(tier, result string) {
	if m == nil {
		return
	}
	m.startFallbacks.WithLabelValues(tier, result).Inc()
}

func (m *Metrics) CredentialRefresh(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.refreshes.WithLabelValues(result).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
