package models

type SearchMetadata struct {
	SearchID     string `json:"search_id"`
	TotalResults int    `json:"total_results"`
	PollAttempts int    `json:"poll_attempts"`
	SearchTimeMs int64  `json:"search_time_ms"`
	CacheHit     bool   `json:"cache_hit"`
}

type SearchResponse struct {
	Metadata SearchMetadata `json:"metadata"`
	SearchSummary
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
