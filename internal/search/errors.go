package search

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthError means the backend rejected the credential on start.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("backend rejected credential: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) HTTPStatus() int { return http.StatusBadGateway }

// BackendError covers any other non-success status and any response that
// does not match the backend contract.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) HTTPStatus() int { return http.StatusInternalServerError }

// PollTimeout means the attempt budget ran out before the results chunk
// reached the ticket threshold.
type PollTimeout struct {
	SearchID string
	Attempts int
	Tickets  int
}

func (e *PollTimeout) Error() string {
	return fmt.Sprintf("search %s did not converge after %d attempts (%d tickets)", e.SearchID, e.Attempts, e.Tickets)
}

func (e *PollTimeout) HTTPStatus() int { return http.StatusRequestTimeout }

// SearchUnavailable is returned once every credential tier failed to start
// a search. Failures holds one error per tier, in order.
type SearchUnavailable struct {
	Failures []error
}

func (e *SearchUnavailable) Error() string {
	parts := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		parts[i] = err.Error()
	}
	return "search unavailable: " + strings.Join(parts, "; ")
}

func (e *SearchUnavailable) Unwrap() []error { return e.Failures }

func (e *SearchUnavailable) HTTPStatus() int { return http.StatusServiceUnavailable }

var errMissingSearchID = errors.New("start response has no search_id")
