package ingredientapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Amaru333/cci-hackathon-2025-backend/internal/domain"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRate       = 5.0
	defaultBurst      = 10
	defaultMaxRetries = 3
	defaultPageSize   = 500

	// maxErrorBody bounds how much of a failed response is kept for logging.
	maxErrorBody = 4 << 10
)

// ClientConfig configures the ingredient service client.
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	PageSize          int
}

// Client fetches the canonical ingredient list from a remote ingredient service.
// It implements domain.IngredientStore.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	pageSize    int
	maxRetries  int
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *slog.Logger
}

// NewClient creates a new ingredient service client
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		pageSize:    cfg.PageSize,
		maxRetries:  cfg.MaxRetries,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		backoff:     exponentialBackoff,
		logger:      logger.With("component", "ingredientapi"),
	}
}

// ListIngredients walks every page of GET {base}/v1/ingredients and returns the
// entries in the order the service emits them. A next_page that does not move
// forward is an error.
func (c *Client) ListIngredients(ctx context.Context) ([]domain.CanonicalIngredient, error) {
	var all []domain.CanonicalIngredient

	for page := 1; page > 0; {
		resp, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, mapIngredients(resp.Ingredients)...)
		if resp.NextPage != 0 && resp.NextPage <= page {
			return nil, fmt.Errorf("%w: next_page %d does not advance past page %d",
				domain.ErrIngredientAPIFailure, resp.NextPage, page)
		}
		page = resp.NextPage
	}

	c.logger.Debug("fetched ingredient list", "count", len(all))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*listResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(c.pageSize))
	reqURL := fmt.Sprintf("%s/v1/ingredients?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			c.logger.Warn("ingredient request failed", "attempt", attempt, "page", page, "error", err)
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := readLimitedBody(resp.Body, maxErrorBody)
			resp.Body.Close()

			lastErr = fmt.Errorf("%w: status %d", domain.ErrIngredientAPIFailure, resp.StatusCode)
			c.logger.Warn("ingredient service returned error",
				"attempt", attempt,
				"status", resp.StatusCode,
				"body", string(body),
			)
			if !retryable(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		var list listResponse
		err = json.NewDecoder(resp.Body).Decode(&list)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &list, nil
	}

	c.logger.Error("all retries failed", "page", page, "attempts", c.maxRetries)
	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pantry-standardizer/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIngredientAPIFailure, err)
	}
	return resp, nil
}

// retryable reports whether a non-200 status is worth another attempt.
// Client errors other than 429 are final.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return 500 * time.Millisecond * time.Duration(1<<(attempt-1))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
