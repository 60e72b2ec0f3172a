package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SearchFinished("converged", time.Second)
	m.PollAttempts(3)
	m.StartAttempt("primary", "ok")
	m.CredentialRefresh(errors.New("boom"))
	m.CacheLookup(true)
}

func TestCollectorsAreRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SearchFinished("converged", 2*time.Second)
	m.PollAttempts(4)
	m.StartAttempt("refreshed", "auth_error")
	m.CredentialRefresh(nil)
	m.CacheLookup(false)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")

	for _, want := range []string{
		"aviasearch_searches_total",
		"aviasearch_poll_attempts",
		"aviasearch_start_attempts_total",
		"aviasearch_credential_refreshes_total",
		"aviasearch_search_duration_seconds",
		"aviasearch_cache_lookups_total",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing collector %s in %s", want, joined)
		}
	}
}
