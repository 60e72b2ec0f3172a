// Package credential produces the anti-bot session credential sent to the
// search backend: a cookie header harvested by a headless browser, cached
// in memory and persisted to a Store between runs.
package credential

import (
	"context"
	"errors"
	"strings"
)

var ErrNoCredential = errors.New("credential: none stored")

type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Store persists harvested cookies. Load returns ErrNoCredential (possibly
// wrapped) when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) ([]Cookie, error)
	Save(ctx context.Context, cookies []Cookie) error
}

// Fetcher harvests a fresh cookie jar.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Cookie, error)
}

// Header joins cookies into the "name=value; name=value" header form.
// Cookies without a name are skipped.
func Header(cookies []Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
