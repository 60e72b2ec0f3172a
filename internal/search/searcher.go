package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dharmasatrya/aviasearch/internal/metrics"
	"github.com/dharmasatrya/aviasearch/internal/models"
	"github.com/dharmasatrya/aviasearch/internal/normalizer"
)

// CredentialSource supplies the opaque session credential sent with start
// and poll calls. forceRefresh bypasses any cached value.
type CredentialSource interface {
	Credential(ctx context.Context, forceRefresh bool) (string, error)
}

type Outcome struct {
	SearchID     string
	PollAttempts int
	Elapsed      time.Duration
	Raw          json.RawMessage
	Summary      models.SearchSummary
}

// Searcher composes start, poll and normalize, and owns the credential
// fallback: cached credential, then a forced refresh, then no credential.
type Searcher struct {
	orchestrator *Orchestrator
	credentials  CredentialSource
	linkBase     string
	metrics      *metrics.Metrics
}

func NewSearcher(o *Orchestrator, credentials CredentialSource, linkBase string, m *metrics.Metrics) *Searcher {
	return &Searcher{
		orchestrator: o,
		credentials:  credentials,
		linkBase:     linkBase,
		metrics:      m,
	}
}

// Search runs a full search and normalizes the converged payload.
func (s *Searcher) Search(ctx context.Context, req models.SearchRequest) (*Outcome, error) {
	out, err := s.SearchRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	summary, ok := normalizer.Normalize(out.Raw, normalizer.Options{
		Directions: req.Directions,
		LinkBase:   s.linkBase,
	})
	if !ok {
		log.Printf("Search %s: converged payload has no results chunk", out.SearchID)
	}
	out.Summary = summary
	return out, nil
}

// SearchRaw runs a full search and returns the converged payload as-is.
func (s *Searcher) SearchRaw(ctx context.Context, req models.SearchRequest) (*Outcome, error) {
	began := time.Now()

	session, err := s.start(ctx, req)
	if err != nil {
		s.metrics.SearchFinished(outcomeOf(err), time.Since(began))
		return nil, err
	}

	raw, err := s.orchestrator.Poll(ctx, session)
	elapsed := time.Since(began)
	if err != nil {
		log.Printf("Search %s failed after %d attempts: %v", session.SearchID, session.Attempts, err)
		s.metrics.SearchFinished(outcomeOf(err), elapsed)
		return nil, err
	}

	log.Printf("Search %s converged after %d attempts in %v", session.SearchID, session.Attempts, elapsed)
	s.metrics.SearchFinished("converged", elapsed)

	return &Outcome{
		SearchID:     session.SearchID,
		PollAttempts: session.Attempts,
		Elapsed:      elapsed,
		Raw:          raw,
	}, nil
}

func (s *Searcher) start(ctx context.Context, req models.SearchRequest) (*Session, error) {
	if s.credentials == nil {
		session, err := s.orchestrator.Start(ctx, req, "")
		s.metrics.StartAttempt("anonymous", resultOf(err))
		return session, err
	}

	var failures []error

	credential, err := s.credentials.Credential(ctx, false)
	if err != nil {
		log.Printf("Cached credential unavailable: %v", err)
		failures = append(failures, fmt.Errorf("load credential: %w", err))
	} else {
		session, err := s.orchestrator.Start(ctx, req, credential)
		s.metrics.StartAttempt("cached", resultOf(err))
		if err == nil {
			return session, nil
		}
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			return nil, err
		}
		log.Printf("Start rejected with cached credential, forcing refresh: %v", err)
		failures = append(failures, fmt.Errorf("cached credential: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	credential, err = s.credentials.Credential(ctx, true)
	s.metrics.CredentialRefresh(err)
	if err != nil {
		log.Printf("Credential refresh failed: %v", err)
		failures = append(failures, fmt.Errorf("refresh credential: %w", err))
	} else {
		session, err := s.orchestrator.Start(ctx, req, credential)
		s.metrics.StartAttempt("refreshed", resultOf(err))
		if err == nil {
			return session, nil
		}
		log.Printf("Start failed with refreshed credential, retrying without one: %v", err)
		failures = append(failures, fmt.Errorf("refreshed credential: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session, err := s.orchestrator.Start(ctx, req, "")
	s.metrics.StartAttempt("anonymous", resultOf(err))
	if err == nil {
		return session, nil
	}
	failures = append(failures, fmt.Errorf("no credential: %w", err))

	return nil, &SearchUnavailable{Failures: failures}
}

func resultOf(err error) string {
	var authErr *AuthError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &authErr):
		return "auth_error"
	default:
		return "error"
	}
}

func outcomeOf(err error) string {
	var (
		authErr     *AuthError
		backendErr  *BackendError
		timeout     *PollTimeout
		unavailable *SearchUnavailable
	)
	switch {
	case errors.As(err, &unavailable):
		return "unavailable"
	case errors.As(err, &timeout):
		return "timeout"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &backendErr):
		return "backend_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
