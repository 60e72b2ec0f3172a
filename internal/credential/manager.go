package credential

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultRefreshTimeout = 2 * time.Minute

// Manager caches the credential header for concurrent searches. Reads share
// the cached value; forced refreshes are coalesced so that concurrent
// callers wait on one browser run.
type Manager struct {
	store   Store
	fetcher Fetcher

	mu     sync.RWMutex
	cached string
	loaded bool

	group singleflight.Group

	// RefreshTimeout bounds a shared fetch independently of any caller.
	RefreshTimeout time.Duration
}

func NewManager(store Store, fetcher Fetcher) *Manager {
	return &Manager{store: store, fetcher: fetcher, RefreshTimeout: defaultRefreshTimeout}
}

// Credential returns the cached header, loading it from the store on first
// use. With forceRefresh it harvests a new one, saves it and replaces the
// cached value.
func (m *Manager) Credential(ctx context.Context, forceRefresh bool) (string, error) {
	if forceRefresh {
		return m.refresh(ctx)
	}

	m.mu.RLock()
	cached, loaded := m.cached, m.loaded
	m.mu.RUnlock()
	if loaded {
		return cached, nil
	}

	if m.store == nil {
		return "", ErrNoCredential
	}
	cookies, err := m.store.Load(ctx)
	if err != nil {
		return "", err
	}
	header := Header(cookies)
	if header == "" {
		return "", ErrNoCredential
	}

	m.mu.Lock()
	if !m.loaded {
		m.cached, m.loaded = header, true
	}
	header = m.cached
	m.mu.Unlock()

	return header, nil
}

// refresh runs one shared fetch for all concurrent callers. The fetch is
// detached from the caller that started it and bounded by RefreshTimeout,
// so a cancelled caller stops waiting without failing the others.
func (m *Manager) refresh(ctx context.Context) (string, error) {
	if m.fetcher == nil {
		return "", errors.New("credential: no fetcher configured")
	}

	leader := false
	ch := m.group.DoChan("refresh", func() (interface{}, error) {
		leader = true
		log.Printf("Refreshing credential")

		timeout := m.RefreshTimeout
		if timeout <= 0 {
			timeout = defaultRefreshTimeout
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		cookies, err := m.fetcher.Fetch(fetchCtx)
		if err != nil {
			return "", fmt.Errorf("credential: fetch: %w", err)
		}
		header := Header(cookies)
		if header == "" {
			return "", errors.New("credential: fetch returned no cookies")
		}

		if m.store != nil {
			if err := m.store.Save(fetchCtx, cookies); err != nil {
				log.Printf("Failed to persist refreshed credential: %v", err)
			}
		}

		m.mu.Lock()
		m.cached, m.loaded = header, true
		m.mu.Unlock()

		log.Printf("Credential refreshed with %d cookies", len(cookies))
		return header, nil
	})

	select {
	case res := <-ch:
		if res.Shared && !leader {
			log.Printf("Joined in-flight credential refresh")
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Invalidate drops the cached value so the next read goes to the store.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cached, m.loaded = "", false
	m.mu.Unlock()
}
