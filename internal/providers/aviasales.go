package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/aviasearch/internal/ratelimit"
)

const (
	DefaultStartURL    = "https://tickets-api.aviasales.com/search/v2/start"
	DefaultResultsHost = "tickets-api.eu-central-1.aviasales.com"
	DefaultResultsPath = "/search/v3.2/results"
	DefaultSiteOrigin  = "https://www.aviasales.kz"
	DefaultUserAgent   = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:139.0) Gecko/20100101 Firefox/139.0"

	headerCredential    = "x-origin-cookie"
	headerCorrelationID = "x-request-id"

	maxErrorBody = 512
)

type AviasalesConfig struct {
	StartURL       string
	ResultsHost    string
	ResultsPath    string
	ResultsScheme  string
	SiteOrigin     string
	UserAgent      string
	RequestTimeout time.Duration
	Limiter        *ratelimit.HostLimiter
	HTTPClient     *http.Client
}

func DefaultAviasalesConfig() AviasalesConfig {
	return AviasalesConfig{
		StartURL:       DefaultStartURL,
		ResultsHost:    DefaultResultsHost,
		ResultsPath:    DefaultResultsPath,
		ResultsScheme:  "https",
		SiteOrigin:     DefaultSiteOrigin,
		UserAgent:      DefaultUserAgent,
		RequestTimeout: 15 * time.Second,
	}
}

type AviasalesClient struct {
	config AviasalesConfig
	client *http.Client
}

func NewAviasalesClient(cfg AviasalesConfig) *AviasalesClient {
	def := DefaultAviasalesConfig()
	if cfg.StartURL == "" {
		cfg.StartURL = def.StartURL
	}
	if cfg.ResultsHost == "" {
		cfg.ResultsHost = def.ResultsHost
	}
	if cfg.ResultsPath == "" {
		cfg.ResultsPath = def.ResultsPath
	}
	if cfg.ResultsScheme == "" {
		cfg.ResultsScheme = def.ResultsScheme
	}
	if cfg.SiteOrigin == "" {
		cfg.SiteOrigin = def.SiteOrigin
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &AviasalesClient{config: cfg, client: client}
}

func (c *AviasalesClient) Name() string {
	return "aviasales"
}

type startResponse struct {
	SearchID        string          `json:"search_id"`
	ResultsURL      string          `json:"results_url"`
	SearchTimestamp json.RawMessage `json:"search_timestamp"`
}

// StartSearch posts the start payload. A 2xx body without search_id is
// returned as-is with an empty SearchID; judging it is the caller's job.
func (c *AviasalesClient) StartSearch(ctx context.Context, call StartCall) (StartResult, error) {
	body, err := c.post(ctx, c.config.StartURL, call.Payload, call.Credential, "")
	if err != nil {
		return StartResult{}, err
	}

	var resp startResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return StartResult{}, fmt.Errorf("%s: decode start response: %w", c.Name(), err)
	}

	host := hostOf(resp.ResultsURL)
	if host == "" {
		host = c.config.ResultsHost
	}

	return StartResult{
		SearchID:        resp.SearchID,
		ResultsHost:     host,
		SearchTimestamp: parseTimestamp(resp.SearchTimestamp),
	}, nil
}

// PollResults fetches one results page and returns the body undecoded.
func (c *AviasalesClient) PollResults(ctx context.Context, call PollCall) (json.RawMessage, error) {
	host := call.ResultsHost
	if host == "" {
		host = c.config.ResultsHost
	}
	endpoint := c.config.ResultsScheme + "://" + host + c.config.ResultsPath

	body := pollBody{
		Limit:               call.Limit,
		PricePerPerson:      false,
		SearchByAirport:     false,
		SearchID:            call.SearchID,
		LastUpdateTimestamp: call.Cursor,
	}
	raw, err := c.post(ctx, endpoint, body, call.Credential, call.CorrelationID)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s: results body is not valid JSON", c.Name())
	}
	return raw, nil
}

func (c *AviasalesClient) post(ctx context.Context, endpoint string, payload interface{}, credential, correlationID string) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: parse endpoint %q: %w", c.Name(), endpoint, err)
	}
	if err := c.config.Limiter.Wait(ctx, u.Host); err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", c.Name(), err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.Name(), err)
	}
	c.setHeaders(req, credential, correlationID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: post %s: %w", c.Name(), u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s response: %w", c.Name(), u.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{
			Provider:   c.Name(),
			Endpoint:   u.Path,
			StatusCode: resp.StatusCode,
			Body:       snippet,
		}
	}
	return body, nil
}

func (c *AviasalesClient) setHeaders(req *http.Request, credential, correlationID string) {
	origin := strings.TrimRight(c.config.SiteOrigin, "/")

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", origin)
	req.Header.Set("Referer", origin+"/")
	req.Header.Set("Accept-Language", "ru-RU,en-US;q=0.8,ru;q=0.5,en;q=0.3")
	req.Header.Set("x-client-type", "web")
	if credential != "" {
		req.Header.Set(headerCredential, credential)
	}
	if correlationID != "" {
		req.Header.Set(headerCorrelationID, correlationID)
	}
}

// hostOf accepts either a bare host or a full URL.
func hostOf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		if u, err := url.Parse(s); err == nil {
			return u.Host
		}
		return ""
	}
	return strings.TrimRight(s, "/")
}

func parseTimestamp(raw json.RawMessage) int64 {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
