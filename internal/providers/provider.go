package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Transport is the search backend seen by the orchestrator: one call to
// start a search and one to poll its results.
type Transport interface {
	Name() string
	StartSearch(ctx context.Context, call StartCall) (StartResult, error)
	PollResults(ctx context.Context, call PollCall) (json.RawMessage, error)
}

// StartCall carries everything a start request needs, including the
// credential, so no header state is shared between searches.
type StartCall struct {
	Payload    StartPayload
	Credential string
}

type StartResult struct {
	SearchID        string
	ResultsHost     string
	SearchTimestamp int64
}

type PollCall struct {
	ResultsHost   string
	SearchID      string
	Cursor        int64
	Limit         int
	CorrelationID string
	Credential    string
}

// StatusError reports a non-success HTTP status from a provider endpoint.
type StatusError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s returned %d", e.Provider, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s returned %d: %s", e.Provider, e.Endpoint, e.StatusCode, e.Body)
}

// Unauthorized reports whether the backend rejected the credential.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
