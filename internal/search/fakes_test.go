package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dharmasatrya/aviasearch/internal/models"
	"github.com/dharmasatrya/aviasearch/internal/providers"
)

// fakeTransport replays scripted start errors and poll pages.
type fakeTransport struct {
	mu sync.Mutex

	startErrs  []error
	startCreds []string
	searchID   string
	omitID     bool

	pages   []string
	pollErr error
	polls   []providers.PollCall
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) StartSearch(ctx context.Context, call providers.StartCall) (providers.StartResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.startCreds)
	f.startCreds = append(f.startCreds, call.Credential)
	if n < len(f.startErrs) && f.startErrs[n] != nil {
		return providers.StartResult{}, f.startErrs[n]
	}
	if f.omitID {
		return providers.StartResult{ResultsHost: "results.test"}, nil
	}
	id := f.searchID
	if id == "" {
		id = "sid-1"
	}
	return providers.StartResult{SearchID: id, ResultsHost: "results.test", SearchTimestamp: 1752000000}, nil
}

func (f *fakeTransport) PollResults(ctx context.Context, call providers.PollCall) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.polls = append(f.polls, call)
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	i := len(f.polls) - 1
	if i >= len(f.pages) {
		i = len(f.pages) - 1
	}
	return json.RawMessage(f.pages[i]), nil
}

func statusErr(code int) error {
	return &providers.StatusError{Provider: "fake", Endpoint: "/start", StatusCode: code}
}

// chunks renders a two-chunk page whose first chunk holds n tickets.
func chunks(n int) string {
	tickets := make([]string, n)
	for i := range tickets {
		tickets[i] = fmt.Sprintf(`{"id":"t%d"}`, i)
	}
	return `[{"chunk_id":"results","tickets":[` + strings.Join(tickets, ",") + `]},{"chunk_id":"progress"}]`
}

type fakeCredentials struct {
	mu       sync.Mutex
	cached   string
	fresh    string
	loadErr  error
	freshErr error
	calls    []bool
}

func (f *fakeCredentials) Credential(ctx context.Context, forceRefresh bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, forceRefresh)
	if forceRefresh {
		return f.fresh, f.freshErr
	}
	return f.cached, f.loadErr
}

func testRequest() models.SearchRequest {
	req := models.SearchRequest{
		Directions: []models.Direction{
			{Origin: "NQZ", Destination: "ALA", Date: "2025-07-09"},
			{Origin: "ALA", Destination: "NQZ", Date: "2025-07-17"},
		},
	}
	_ = req.Validate()
	return req
}

func fastConfig() Config {
	return Config{TicketThreshold: 100, MaxAttempts: 10, Interval: 0, PageLimit: 100}
}
