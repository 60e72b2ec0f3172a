package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/aviasearch/internal/cache"
	"github.com/dharmasatrya/aviasearch/internal/metrics"
	"github.com/dharmasatrya/aviasearch/internal/models"
	"github.com/dharmasatrya/aviasearch/internal/search"
)

type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*search.Outcome, error)
	SearchRaw(ctx context.Context, req models.SearchRequest) (*search.Outcome, error)
}

type SearchHandler struct {
	searcher Searcher
	cache    cache.Cache
	metrics  *metrics.Metrics
}

func NewSearchHandler(s Searcher, c cache.Cache, m *metrics.Metrics) *SearchHandler {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &SearchHandler{
		searcher: s,
		cache:    c,
		metrics:  m,
	}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	req, errResp := bindRequest(c)
	if errResp != nil {
		return c.JSON(errResp.Code, errResp)
	}

	cached, found := h.cache.Get(ctx, req)
	h.metrics.CacheLookup(found)
	if found {
		return c.JSON(http.StatusOK, models.SearchResponse{
			Metadata: models.SearchMetadata{
				TotalResults: len(cached.Tickets),
				SearchTimeMs: time.Since(startTime).Milliseconds(),
				CacheHit:     true,
			},
			SearchSummary: *cached,
		})
	}

	out, err := h.searcher.Search(ctx, req)
	if err != nil {
		resp := errorResponse(err)
		return c.JSON(resp.Code, resp)
	}

	if err := h.cache.Set(ctx, req, out.Summary); err != nil {
		c.Logger().Warnf("cache set failed: %v", err)
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Metadata: models.SearchMetadata{
			SearchID:     out.SearchID,
			TotalResults: len(out.Summary.Tickets),
			PollAttempts: out.PollAttempts,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		SearchSummary: out.Summary,
	})
}

// Raw returns the converged backend payload without normalizing it.
func (h *SearchHandler) Raw(c echo.Context) error {
	req, errResp := bindRequest(c)
	if errResp != nil {
		return c.JSON(errResp.Code, errResp)
	}

	out, err := h.searcher.SearchRaw(c.Request().Context(), req)
	if err != nil {
		resp := errorResponse(err)
		return c.JSON(resp.Code, resp)
	}

	c.Response().Header().Set("X-Search-Id", out.SearchID)
	return c.JSONBlob(http.StatusOK, out.Raw)
}

func bindRequest(c echo.Context) (models.SearchRequest, *models.ErrorResponse) {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return req, &models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		}
	}

	if err := req.Validate(); err != nil {
		return req, &models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		}
	}
	return req, nil
}

func errorResponse(err error) models.ErrorResponse {
	var (
		authErr     *search.AuthError
		unavailable *search.SearchUnavailable
		timeout     *search.PollTimeout
		backendErr  *search.BackendError
	)

	resp := models.ErrorResponse{
		Error:   "search_error",
		Message: "Failed to search flights: " + err.Error(),
		Code:    http.StatusInternalServerError,
	}

	switch {
	case errors.As(err, &unavailable):
		resp.Error, resp.Code = "search_unavailable", unavailable.HTTPStatus()
	case errors.As(err, &timeout):
		resp.Error, resp.Code = "poll_timeout", timeout.HTTPStatus()
	case errors.As(err, &authErr):
		resp.Error, resp.Code = "auth_error", authErr.HTTPStatus()
	case errors.As(err, &backendErr):
		resp.Error, resp.Code = "backend_error", backendErr.HTTPStatus()
	}
	return resp
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
