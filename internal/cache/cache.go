package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/aviasearch/internal/models"
)

type Cache interface {
	Get(ctx context.Context, req models.SearchRequest) (*models.SearchSummary, bool)
	Set(ctx context.Context, req models.SearchRequest, summary models.SearchSummary) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}
}

// NewRedisClient dials and pings redis. The client is shared by the summary
// cache and the credential store.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest) (*models.SearchSummary, bool) {
	data, err := c.client.Get(ctx, Key(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var summary models.SearchSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}

	return &summary, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, summary models.SearchSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(req), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.SearchRequest) (*models.SearchSummary, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.SearchRequest, summary models.SearchSummary) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key hashes every request field that changes the backend result. Call it
// on a validated request so that defaults are already applied.
func Key(req models.SearchRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return "aviasearch:summary:" + hex.EncodeToString(hash[:])
}
