package search

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/aviasearch/internal/metrics"
	"github.com/dharmasatrya/aviasearch/internal/models"
	"github.com/dharmasatrya/aviasearch/internal/providers"
)

const cursorField = "last_update_timestamp"

type Orchestrator struct {
	transport providers.Transport
	config    Config
	metrics   *metrics.Metrics
	newID     func() string
}

func NewOrchestrator(transport providers.Transport, config Config, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		transport: transport,
		config:    config.withDefaults(),
		metrics:   m,
		newID:     uuid.NewString,
	}
}

// Start issues the start call with the given credential. An empty
// credential sends the request without one.
func (o *Orchestrator) Start(ctx context.Context, req models.SearchRequest, credential string) (*Session, error) {
	res, err := o.transport.StartSearch(ctx, providers.StartCall{
		Payload:    providers.NewStartPayload(req),
		Credential: credential,
	})
	if err != nil {
		var se *providers.StatusError
		if errors.As(err, &se) && se.Unauthorized() {
			return nil, &AuthError{Err: err}
		}
		return nil, &BackendError{Op: "start", Err: err}
	}
	if res.SearchID == "" {
		return nil, &BackendError{Op: "start", Err: errMissingSearchID}
	}

	log.Printf("Search %s started, results host %s", res.SearchID, res.ResultsHost)

	return &Session{
		SearchID:        res.SearchID,
		ResultsHost:     res.ResultsHost,
		CreatedAt:       time.Now(),
		SearchTimestamp: res.SearchTimestamp,
		credential:      credential,
	}, nil
}

// Poll requests results until the first chunk holds at least
// TicketThreshold tickets and returns that payload unchanged. It sleeps
// Interval between attempts and gives up with *PollTimeout after
// MaxAttempts. Cancelling ctx aborts the wait between attempts.
func (o *Orchestrator) Poll(ctx context.Context, s *Session) (json.RawMessage, error) {
	var tickets int

	for attempt := 1; attempt <= o.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(o.config.Interval):
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := o.transport.PollResults(ctx, providers.PollCall{
			ResultsHost:   s.ResultsHost,
			SearchID:      s.SearchID,
			Cursor:        s.LastUpdateCursor,
			Limit:         o.config.PageLimit,
			CorrelationID: o.newID(),
			Credential:    s.credential,
		})
		s.Attempts = attempt
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, &BackendError{Op: "poll", Err: err}
		}

		tickets, err = inspectPage(raw, s)
		if err != nil {
			return nil, &BackendError{Op: "poll", Err: err}
		}

		log.Printf("Search %s poll %d/%d: %d tickets, cursor %d", s.SearchID, attempt, o.config.MaxAttempts, tickets, s.LastUpdateCursor)

		if tickets >= o.config.TicketThreshold {
			o.metrics.PollAttempts(attempt)
			return raw, nil
		}
	}

	o.metrics.PollAttempts(o.config.MaxAttempts)
	return nil, &PollTimeout{SearchID: s.SearchID, Attempts: o.config.MaxAttempts, Tickets: tickets}
}

// inspectPage advances the session cursor from an object response and
// returns the ticket count of the first chunk. An object response counts
// as a single chunk.
func inspectPage(raw json.RawMessage, s *Session) (int, error) {
	var first json.RawMessage

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		if v, ok := obj[cursorField]; ok {
			var cursor json.Number
			if err := json.Unmarshal(v, &cursor); err == nil {
				if n, err := cursor.Int64(); err == nil {
					s.LastUpdateCursor = n
				} else if f, err := cursor.Float64(); err == nil {
					s.LastUpdateCursor = int64(f)
				}
			}
		}
		first = raw
	} else {
		var chunks []json.RawMessage
		if err := json.Unmarshal(raw, &chunks); err != nil {
			return 0, errors.New("results page is neither an object nor a list")
		}
		if len(chunks) == 0 {
			return 0, errors.New("results page has no chunks")
		}
		first = chunks[0]
	}

	var chunk map[string]json.RawMessage
	if err := json.Unmarshal(first, &chunk); err != nil || chunk == nil {
		return 0, errors.New("first chunk is not an object")
	}
	var tickets []json.RawMessage
	if err := json.Unmarshal(chunk["tickets"], &tickets); err != nil || tickets == nil {
		return 0, errors.New("first chunk has no ticket list")
	}
	return len(tickets), nil
}
