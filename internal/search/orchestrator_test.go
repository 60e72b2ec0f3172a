package search

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestStartReturnsSession(t *testing.T) {
	ft := &fakeTransport{searchID: "abc"}
	o := NewOrchestrator(ft, fastConfig(), nil)

	s, err := o.Start(context.Background(), testRequest(), "a=1")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.SearchID != "abc" || s.ResultsHost != "results.test" || s.SearchTimestamp != 1752000000 {
		t.Fatalf("session = %+v", s)
	}
	if s.LastUpdateCursor != 0 || s.CreatedAt.IsZero() {
		t.Fatalf("unexpected initial state %+v", s)
	}
	if ft.startCreds[0] != "a=1" {
		t.Fatalf("credential not forwarded: %q", ft.startCreds[0])
	}
}

func TestStartErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantAuth bool
	}{
		{"unauthorized", statusErr(http.StatusUnauthorized), true},
		{"forbidden", statusErr(http.StatusForbidden), true},
		{"server error", statusErr(http.StatusInternalServerError), false},
		{"network", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrchestrator(&fakeTransport{startErrs: []error{tt.err}}, fastConfig(), nil)
			_, err := o.Start(context.Background(), testRequest(), "")

			var authErr *AuthError
			var backendErr *BackendError
			if tt.wantAuth && !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if !tt.wantAuth && !errors.As(err, &backendErr) {
				t.Fatalf("expected BackendError, got %v", err)
			}
		})
	}
}

func TestStartWithoutSearchIDIsBackendError(t *testing.T) {
	o := NewOrchestrator(&fakeTransport{omitID: true}, fastConfig(), nil)
	_, err := o.Start(context.Background(), testRequest(), "")

	var backendErr *BackendError
	if !errors.As(err, &backendErr) || !errors.Is(err, errMissingSearchID) {
		t.Fatalf("expected missing search id BackendError, got %v", err)
	}
}

func TestPollConvergesOnThresholdAttempt(t *testing.T) {
	ft := &fakeTransport{pages: []string{chunks(10), chunks(99), chunks(100), chunks(150)}}
	o := NewOrchestrator(ft, fastConfig(), nil)
	s := &Session{SearchID: "sid-1", ResultsHost: "results.test", credential: "c"}

	raw, err := o.Poll(context.Background(), s)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if string(raw) != chunks(100) {
		t.Fatalf("returned payload of the wrong attempt: %s", raw)
	}
	if len(ft.polls) != 3 || s.Attempts != 3 {
		t.Fatalf("polls = %d, attempts = %d, want 3", len(ft.polls), s.Attempts)
	}
	for _, call := range ft.polls {
		if call.SearchID != "sid-1" || call.ResultsHost != "results.test" || call.Limit != 100 || call.Credential != "c" {
			t.Fatalf("poll call = %+v", call)
		}
	}
}

func TestPollTimeout(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 4
	ft := &fakeTransport{pages: []string{chunks(5)}}
	o := NewOrchestrator(ft, cfg, nil)

	_, err := o.Poll(context.Background(), &Session{SearchID: "sid-1"})

	var timeout *PollTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("expected PollTimeout, got %v", err)
	}
	if timeout.Attempts != 4 || timeout.Tickets != 5 || len(ft.polls) != 4 {
		t.Fatalf("timeout = %+v, polls = %d", timeout, len(ft.polls))
	}
	if timeout.HTTPStatus() != http.StatusRequestTimeout {
		t.Fatalf("status = %d", timeout.HTTPStatus())
	}
}

func TestPollOnlyCountsFirstChunk(t *testing.T) {
	cfg := fastConfig()
	cfg.TicketThreshold = 2
	cfg.MaxAttempts = 2
	page := `[{"chunk_id":"progress","tickets":[]},{"chunk_id":"results","tickets":[{},{},{}]}]`
	o := NewOrchestrator(&fakeTransport{pages: []string{page}}, cfg, nil)

	_, err := o.Poll(context.Background(), &Session{SearchID: "sid-1"})

	var timeout *PollTimeout
	if !errors.As(err, &timeout) {
		t.Fatalf("expected PollTimeout, got %v", err)
	}
}

func TestPollAdvancesCursorFromObjectResponse(t *testing.T) {
	cfg := fastConfig()
	cfg.TicketThreshold = 1
	ft := &fakeTransport{pages: []string{
		`{"last_update_timestamp":17,"tickets":[]}`,
		`{"tickets":[]}`,
		`{"last_update_timestamp":42,"tickets":[{}]}`,
	}}
	o := NewOrchestrator(ft, cfg, nil)
	s := &Session{SearchID: "sid-1"}

	if _, err := o.Poll(context.Background(), s); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	want := []int64{0, 17, 17}
	for i, call := range ft.polls {
		if call.Cursor != want[i] {
			t.Errorf("poll %d cursor = %d, want %d", i+1, call.Cursor, want[i])
		}
	}
	if s.LastUpdateCursor != 42 {
		t.Fatalf("final cursor = %d, want 42", s.LastUpdateCursor)
	}
}

func TestPollListResponseKeepsCursor(t *testing.T) {
	cfg := fastConfig()
	cfg.TicketThreshold = 1
	o := NewOrchestrator(&fakeTransport{pages: []string{`[{"last_update_timestamp":99,"tickets":[{}]}]`}}, cfg, nil)
	s := &Session{SearchID: "sid-1", LastUpdateCursor: 5}

	if _, err := o.Poll(context.Background(), s); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if s.LastUpdateCursor != 5 {
		t.Fatalf("cursor = %d, want 5", s.LastUpdateCursor)
	}
}

func TestPollMalformedPageAborts(t *testing.T) {
	pages := map[string]string{
		"no tickets":       `[{"chunk_id":"progress"}]`,
		"tickets not list": `[{"tickets":{"a":1}}]`,
		"empty list":       `[]`,
		"scalar":           `"pending"`,
		"chunk not object": `[1,2]`,
	}

	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			ft := &fakeTransport{pages: []string{page}}
			o := NewOrchestrator(ft, fastConfig(), nil)

			_, err := o.Poll(context.Background(), &Session{SearchID: "sid-1"})

			var backendErr *BackendError
			if !errors.As(err, &backendErr) {
				t.Fatalf("expected BackendError, got %v", err)
			}
			if len(ft.polls) != 1 {
				t.Fatalf("malformed page retried: %d polls", len(ft.polls))
			}
		})
	}
}

func TestPollTransportErrorIsBackendError(t *testing.T) {
	ft := &fakeTransport{pollErr: statusErr(http.StatusBadGateway)}
	o := NewOrchestrator(ft, fastConfig(), nil)

	_, err := o.Poll(context.Background(), &Session{SearchID: "sid-1"})

	var backendErr *BackendError
	if !errors.As(err, &backendErr) || backendErr.Op != "poll" {
		t.Fatalf("expected poll BackendError, got %v", err)
	}
}

func TestPollUsesFreshCorrelationIDs(t *testing.T) {
	ft := &fakeTransport{pages: []string{chunks(0), chunks(0), chunks(100)}}
	o := NewOrchestrator(ft, fastConfig(), nil)

	if _, err := o.Poll(context.Background(), &Session{SearchID: "sid-1"}); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	seen := make(map[string]bool)
	for _, call := range ft.polls {
		if call.CorrelationID == "" || seen[call.CorrelationID] {
			t.Fatalf("correlation id %q empty or reused", call.CorrelationID)
		}
		seen[call.CorrelationID] = true
	}
}

func TestPollStopsOnCancellation(t *testing.T) {
	cfg := fastConfig()
	cfg.Interval = time.Hour
	ft := &fakeTransport{pages: []string{chunks(1)}}
	o := NewOrchestrator(ft, cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	began := time.Now()
	_, err := o.Poll(ctx, &Session{SearchID: "sid-1"})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(began) > 5*time.Second {
		t.Fatal("poll waited out the interval after cancellation")
	}
	if len(ft.polls) != 1 {
		t.Fatalf("polls = %d, want 1", len(ft.polls))
	}
}
