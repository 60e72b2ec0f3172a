package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dharmasatrya/aviasearch/internal/credential"
	"github.com/dharmasatrya/aviasearch/internal/providers"
	"github.com/dharmasatrya/aviasearch/internal/token"
)

// Config holds all settings of the server and the CLI.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Backend    BackendConfig    `mapstructure:"backend"`
	Poll       PollConfig       `mapstructure:"poll"`
	Credential CredentialConfig `mapstructure:"credential"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	CacheEnabled bool   `mapstructure:"cache_enabled"`
}

type BackendConfig struct {
	StartURL       string        `mapstructure:"start_url"`
	ResultsHost    string        `mapstructure:"results_host"`
	ResultsPath    string        `mapstructure:"results_path"`
	SiteOrigin     string        `mapstructure:"site_origin"`
	LinkBase       string        `mapstructure:"link_base"`
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// ReplayFile, when set, serves recorded poll responses instead of
	// calling the backend.
	ReplayFile  string        `mapstructure:"replay_file"`
	ReplayDelay time.Duration `mapstructure:"replay_delay"`
}

type PollConfig struct {
	TicketThreshold int           `mapstructure:"ticket_threshold"`
	MaxAttempts     int           `mapstructure:"max_attempts"`
	Interval        time.Duration `mapstructure:"interval"`
	PageLimit       int           `mapstructure:"page_limit"`
}

type CredentialConfig struct {
	// Store is "file" or "redis".
	Store        string        `mapstructure:"store"`
	File         string        `mapstructure:"file"`
	WarmupURL    string        `mapstructure:"warmup_url"`
	Settle       time.Duration `mapstructure:"settle"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cache_enabled", false)

	v.SetDefault("backend.start_url", providers.DefaultStartURL)
	v.SetDefault("backend.results_host", providers.DefaultResultsHost)
	v.SetDefault("backend.results_path", providers.DefaultResultsPath)
	v.SetDefault("backend.site_origin", providers.DefaultSiteOrigin)
	v.SetDefault("backend.link_base", token.DefaultLinkBase)
	v.SetDefault("backend.user_agent", providers.DefaultUserAgent)
	v.SetDefault("backend.request_timeout", 15*time.Second)
	v.SetDefault("backend.replay_file", "")
	v.SetDefault("backend.replay_delay", 100*time.Millisecond)

	v.SetDefault("poll.ticket_threshold", 100)
	v.SetDefault("poll.max_attempts", 10)
	v.SetDefault("poll.interval", time.Second)
	v.SetDefault("poll.page_limit", 100)

	v.SetDefault("credential.store", "file")
	v.SetDefault("credential.file", "aviasales_cookies.json")
	v.SetDefault("credential.warmup_url", credential.DefaultWarmupURL)
	v.SetDefault("credential.settle", 5*time.Second)
	v.SetDefault("credential.fetch_timeout", 60*time.Second)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads defaults, an optional config file and AVIASEARCH_* environment
// variables, in increasing priority. An empty path searches ./config and the
// working directory for config.{yaml,json,toml}; a missing file is not an
// error unless path was given explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("AVIASEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Poll.MaxAttempts <= 0 {
		return errors.New("poll.max_attempts must be positive")
	}
	if c.Poll.TicketThreshold <= 0 {
		return errors.New("poll.ticket_threshold must be positive")
	}
	if c.Poll.Interval < 0 {
		return errors.New("poll.interval must not be negative")
	}
	switch c.Credential.Store {
	case "file", "redis":
	default:
		return fmt.Errorf("credential.store must be file or redis, got %q", c.Credential.Store)
	}
	return nil
}
