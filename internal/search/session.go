// Package search drives the asynchronous search protocol of the backend:
// start a session, poll it until the results chunk converges, and recover
// from rejected credentials with a bounded fallback.
package search

import (
	"time"
)

type Config struct {
	// TicketThreshold is the results-chunk ticket count at which polling stops.
	TicketThreshold int
	MaxAttempts     int
	Interval        time.Duration
	PageLimit       int
}

func DefaultConfig() Config {
	return Config{
		TicketThreshold: 100,
		MaxAttempts:     10,
		Interval:        time.Second,
		PageLimit:       100,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TicketThreshold <= 0 {
		c.TicketThreshold = def.TicketThreshold
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.Interval < 0 {
		c.Interval = def.Interval
	}
	if c.PageLimit <= 0 {
		c.PageLimit = def.PageLimit
	}
	return c
}

// Session is the state of one started search. Only LastUpdateCursor and
// Attempts change after Start returns; a session is never reused once
// polling has finished.
type Session struct {
	SearchID         string
	ResultsHost      string
	CreatedAt        time.Time
	SearchTimestamp  int64
	LastUpdateCursor int64
	Attempts         int

	credential string
}
