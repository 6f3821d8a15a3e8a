// Package serper implements generation.Searcher on top of the Serper Google
// Search API (https://serper.dev).
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/scry-flashcards/internal/config"
	"github.com/phrazzld/scry-flashcards/internal/generation"
	"github.com/phrazzld/scry-flashcards/internal/redact"
	"github.com/phrazzld/scry-flashcards/internal/retry"
)

const (
	searchPath   = "/search"
	apiKeyHeader = "X-API-KEY"

	// maxErrorBody bounds how much of an error response is kept for logs.
	maxErrorBody = 512
)

// Errors returned by Client.Search.
var (
	ErrUnauthorized = errors.New("serper rejected the API key")
	ErrRateLimited  = errors.New("serper rate limit exceeded")
	ErrUnavailable  = errors.New("serper unavailable")
	ErrBadResponse  = errors.New("serper returned an unexpected response")
)

// Client calls the Serper search endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	resultCount int
	httpClient  *http.Client
	logger      *slog.Logger
	retry       retry.Config
}

var _ generation.Searcher = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry replaces the retry policy used for rate limits and server errors.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient creates a Serper client from cfg.
func NewClient(cfg config.SearchConfig, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.SerperAPIKey) == "" {
		return nil, fmt.Errorf("%w: serper API key cannot be empty", generation.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: serper base URL cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	resultCount := cfg.ResultCount
	if resultCount < 1 {
		resultCount = generation.DefaultSearchResults
	}

	c := &Client{
		apiKey:      cfg.SerperAPIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		resultCount: resultCount,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
		retry:       retry.DefaultConfig(),
	}
	c.retry.MaxRetries = 2
	c.retry.BaseDelay = time.Second
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type searchResponse struct {
	AnswerBox *struct {
		Title   string `json:"title"`
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"answerBox"`
	KnowledgeGraph *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Website     string `json:"website"`
	} `json:"knowledgeGraph"`
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}

// Search implements generation.Searcher. Rate limits and 5xx responses are
// retried with backoff; other failures are returned immediately.
func (c *Client) Search(ctx context.Context, query string) ([]generation.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []generation.SearchResult{}, nil
	}

	payload, err := json.Marshal(searchRequest{Query: query, Num: c.resultCount})
	if err != nil {
		return nil, fmt.Errorf("failed to encode serper request: %w", err)
	}

	cfg := c.retry
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.WarnContext(ctx, "serper request failed, retrying",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
			"error", redact.Error(err))
	}

	decoded, err := retry.Do(ctx, cfg, isRetryable, func(ctx context.Context) (*searchResponse, error) {
		return c.do(ctx, payload)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", generation.ErrProvider, query, err)
	}

	return c.toResults(decoded), nil
}

func (c *Client) do(ctx context.Context, payload []byte) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build serper request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &decoded, nil
}

func statusError(code int, body string) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %w: http %d", generation.ErrAuthentication, ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w: http %d", ErrRateLimited, retry.ErrRetryable, code)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: http %d: %s", ErrUnavailable, retry.ErrRetryable, code, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrBadResponse, code, body)
	}
}

// isRetryable retries rate limits and server errors, which statusError marks
// with retry.ErrRetryable, and transport failures.
func isRetryable(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrBadResponse) {
		return false
	}
	return retry.IsRetryable(err)
}

// toResults flattens the response, answer box and knowledge graph first,
// capped at the configured result count.
func (c *Client) toResults(resp *searchResponse) []generation.SearchResult {
	results := make([]generation.SearchResult, 0, c.resultCount)

	if ab := resp.AnswerBox; ab != nil {
		snippet := ab.Answer
		if snippet == "" {
			snippet = ab.Snippet
		}
		if snippet != "" {
			results = append(results, generation.SearchResult{Title: ab.Title, URL: ab.Link, Snippet: snippet})
		}
	}

	if kg := resp.KnowledgeGraph; kg != nil && kg.Description != "" {
		results = append(results, generation.SearchResult{Title: kg.Title, URL: kg.Website, Snippet: kg.Description})
	}

	for _, r := range resp.Organic {
		results = append(results, generation.SearchResult{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}

	if len(results) > c.resultCount {
		results = results[:c.resultCount]
	}
	return results
}
