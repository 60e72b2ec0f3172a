package ratelimit

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter throttles outbound calls per backend host. The start endpoint
// and every results host get their own token bucket.
type HostLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

func NewHostLimiter(config Config) *HostLimiter {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if config.BurstSize <= 0 {
		config.BurstSize = DefaultConfig().BurstSize
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func (h *HostLimiter) limiter(host string) *rate.Limiter {
	host = strings.ToLower(host)

	h.mu.RLock()
	limiter, exists := h.limiters[host]
	h.mu.RUnlock()

	if exists {
		return limiter
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if limiter, exists = h.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(h.defaults.RequestsPerSecond), h.defaults.BurstSize)
	h.limiters[host] = limiter
	return limiter
}

func (h *HostLimiter) SetHostLimit(host string, rps float64, burst int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.limiters[strings.ToLower(host)] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until a request to host is allowed or ctx is done. A nil
// limiter never blocks.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	if h == nil {
		return nil
	}
	return h.limiter(host).Wait(ctx)
}
