package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"
)

// ReplayTransport serves recorded results pages instead of calling the
// backend. Each poll of a session returns the next page; the last page
// repeats once the recording is exhausted.
type ReplayTransport struct {
	pages []json.RawMessage
	delay time.Duration

	mu       sync.Mutex
	sessions map[string]int
	started  int
}

// NewReplayTransport loads a recording: either a JSON list of pages, each
// a full poll response, or a single poll response.
func NewReplayTransport(path string, delay time.Duration) (*ReplayTransport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pages, err := parseRecording(data)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return &ReplayTransport{
		pages:    pages,
		delay:    delay,
		sessions: make(map[string]int),
	}, nil
}

func parseRecording(data []byte) ([]json.RawMessage, error) {
	var rec struct {
		Pages []json.RawMessage `json:"pages"`
	}
	if err := json.Unmarshal(data, &rec); err == nil && len(rec.Pages) > 0 {
		return rec.Pages, nil
	}
	if !json.Valid(data) {
		return nil, errors.New("recording is not valid JSON")
	}
	return []json.RawMessage{json.RawMessage(data)}, nil
}

func (p *ReplayTransport) Name() string {
	return "replay"
}

func (p *ReplayTransport) StartSearch(ctx context.Context, call StartCall) (StartResult, error) {
	if err := p.wait(ctx); err != nil {
		return StartResult{}, err
	}

	p.mu.Lock()
	p.started++
	id := fmt.Sprintf("replay-%d", p.started)
	p.sessions[id] = 0
	p.mu.Unlock()

	return StartResult{
		SearchID:        id,
		ResultsHost:     "replay",
		SearchTimestamp: time.Now().Unix(),
	}, nil
}

func (p *ReplayTransport) PollResults(ctx context.Context, call PollCall) (json.RawMessage, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	n, ok := p.sessions[call.SearchID]
	if !ok {
		return nil, &StatusError{Provider: p.Name(), Endpoint: "results", StatusCode: 404, Body: "unknown search_id"}
	}
	p.sessions[call.SearchID] = n + 1
	if n >= len(p.pages) {
		n = len(p.pages) - 1
	}
	return p.pages[n], nil
}

func (p *ReplayTransport) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	delay := p.delay/2 + time.Duration(rand.Int63n(int64(p.delay)))
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
