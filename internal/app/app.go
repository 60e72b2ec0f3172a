// Package app assembles the search stack from configuration for both the
// HTTP server and the CLI.
package app

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/aviasearch/internal/cache"
	"github.com/dharmasatrya/aviasearch/internal/config"
	"github.com/dharmasatrya/aviasearch/internal/credential"
	"github.com/dharmasatrya/aviasearch/internal/handler"
	"github.com/dharmasatrya/aviasearch/internal/metrics"
	"github.com/dharmasatrya/aviasearch/internal/providers"
	"github.com/dharmasatrya/aviasearch/internal/ratelimit"
	"github.com/dharmasatrya/aviasearch/internal/search"
)

type App struct {
	Config   config.Config
	Searcher *search.Searcher
	Cache    cache.Cache
	Metrics  *metrics.Metrics

	redis *redis.Client
}

// New wires transport, credential manager, orchestrator and cache. Redis
// is dialed only when the cache or the credential store needs it.
func New(cfg config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{Config: cfg}

	if cfg.Server.CacheEnabled || cfg.Credential.Store == "redis" {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.redis = client
		log.Printf("Connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	}

	a.Metrics = metrics.New(reg)

	if cfg.Server.CacheEnabled {
		a.Cache = cache.NewRedisCache(a.redis, cfg.Redis.TTL)
		log.Printf("Summary cache enabled (TTL: %v)", cfg.Redis.TTL)
	} else {
		a.Cache = cache.NewNoOpCache()
		log.Println("Summary cache disabled")
	}

	limiter := ratelimit.NewHostLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	var transport providers.Transport = providers.NewAviasalesClient(providers.AviasalesConfig{
		StartURL:       cfg.Backend.StartURL,
		ResultsHost:    cfg.Backend.ResultsHost,
		ResultsPath:    cfg.Backend.ResultsPath,
		SiteOrigin:     cfg.Backend.SiteOrigin,
		UserAgent:      cfg.Backend.UserAgent,
		RequestTimeout: cfg.Backend.RequestTimeout,
		Limiter:        limiter,
	})
	if cfg.Backend.ReplayFile != "" {
		replay, err := providers.NewReplayTransport(cfg.Backend.ReplayFile, cfg.Backend.ReplayDelay)
		if err != nil {
			return nil, err
		}
		transport = replay
		log.Printf("Replaying recorded results from %s", cfg.Backend.ReplayFile)
	}

	var store credential.Store
	if cfg.Credential.Store == "redis" {
		store = credential.NewRedisStore(a.redis, credential.DefaultRedisKey, 0)
	} else {
		store = credential.NewFileStore(cfg.Credential.File)
	}
	fetcher := credential.NewBrowserFetcher(cfg.Credential.WarmupURL, cfg.Backend.UserAgent, cfg.Credential.Settle, cfg.Credential.FetchTimeout)
	credentials := credential.NewManager(store, fetcher)

	orchestrator := search.NewOrchestrator(transport, search.Config{
		TicketThreshold: cfg.Poll.TicketThreshold,
		MaxAttempts:     cfg.Poll.MaxAttempts,
		Interval:        cfg.Poll.Interval,
		PageLimit:       cfg.Poll.PageLimit,
	}, a.Metrics)
	a.Searcher = search.NewSearcher(orchestrator, credentials, cfg.Backend.LinkBase, a.Metrics)

	return a, nil
}

// Server builds the echo instance with all routes registered.
func (a *App) Server() *echo.Echo {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	searchHandler := handler.NewSearchHandler(a.Searcher, a.Cache, a.Metrics)

	api := e.Group("/api/v1")
	api.POST("/search", searchHandler.Search)
	api.POST("/raw", searchHandler.Raw)
	e.GET("/health", handler.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func (a *App) Close() error {
	if err := a.Cache.Close(); err != nil {
		return err
	}
	if a.redis != nil && !a.Config.Server.CacheEnabled {
		return a.redis.Close()
	}
	return nil
}

// Run builds the stack with metrics on the default registry and serves
// HTTP until the server stops.
func Run(cfg config.Config) error {
	a, err := New(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer a.Close()

	log.Printf("Starting aviasearch server on port %s", cfg.Server.Port)
	return a.Server().Start(":" + cfg.Server.Port)
}
