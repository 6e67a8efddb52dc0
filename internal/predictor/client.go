package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/biblio/internal/common"
	"github.com/Veraticus/biblio/internal/model"
)

const (
	predictPath = "/predict"
	suggestPath = "/suggest"

	// MaxBodySize bounds how much of a response is read.
	MaxBodySize = 1 << 20
)

// Client calls the remote prediction and suggestion endpoints.
type Client struct {
	httpClient    *http.Client
	limiter       *rateLimiter
	baseURL       string
	userAgent     string
	categoryField CategoryField
}

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: service base URL is required", common.ErrMissingConfig)
	}

	field := cfg.CategoryField
	if field == "" {
		field = FieldAuto
	}
	if _, err := ParseCategoryField(string(field)); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "biblio"
	}

	if cfg.RequestsPerMinute < 0 {
		return nil, fmt.Errorf("%w: requests per minute must not be negative", common.ErrInvalidConfig)
	}

	c := &Client{
		baseURL:       baseURL,
		userAgent:     userAgent,
		categoryField: field,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	if cfg.RequestsPerMinute > 0 {
		c.limiter = newRateLimiter(cfg.RequestsPerMinute)
	}
	return c, nil
}

// Close releases the rate limiter and idle connections.
func (c *Client) Close() {
	if c.limiter != nil {
		c.limiter.stop()
	}
	c.httpClient.CloseIdleConnections()
}

// NewClientWithHTTP creates a client that sends requests through httpClient.
func NewClientWithHTTP(cfg Config, httpClient *http.Client) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

type textRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Category        *string  `json:"category"`
	Cluster         *string  `json:"cluster"`
	ConfidenceScore *float64 `json:"confidenceScore"`
}

type suggestResponse struct {
	Category       *string   `json:"category"`
	SuggestedBooks *[]string `json:"suggestedBooks"`
}

// Classify predicts the category of a book from its title and description.
// The category label and the score are returned exactly as the service sent
// them; callers normalise the label only to look up icons or catalog entries.
func (c *Client) Classify(ctx context.Context, title, description string) (model.ClassificationResult, error) {
	text := strings.TrimSpace(title + " " + description)

	body, err := c.post(ctx, predictPath, text)
	if err != nil {
		return model.ClassificationResult{}, err
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.ClassificationResult{}, &MalformedResponseError{Endpoint: predictPath, Reason: "undecodable body", Err: err}
	}

	category, ok := c.pickCategory(resp)
	if !ok {
		return model.ClassificationResult{}, &MalformedResponseError{
			Endpoint: predictPath,
			Reason:   fmt.Sprintf("missing %s field", c.categoryFieldName()),
		}
	}
	if resp.ConfidenceScore == nil {
		return model.ClassificationResult{}, &MalformedResponseError{Endpoint: predictPath, Reason: "missing confidenceScore field"}
	}

	result := model.ClassificationResult{
		Category:        model.Category(category),
		ConfidenceScore: *resp.ConfidenceScore,
	}

	slog.Debug("Prediction received",
		"category", result.Category,
		"confidence", result.ConfidenceScore)

	return result, nil
}

// Suggest asks the service for a category and related book titles.
// The category label and the suggested titles are returned as sent.
func (c *Client) Suggest(ctx context.Context, description string) (model.SuggestionResult, error) {
	body, err := c.post(ctx, suggestPath, strings.TrimSpace(description))
	if err != nil {
		return model.SuggestionResult{}, err
	}

	var resp suggestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.SuggestionResult{}, &MalformedResponseError{Endpoint: suggestPath, Reason: "undecodable body", Err: err}
	}

	if resp.Category == nil || strings.TrimSpace(*resp.Category) == "" {
		return model.SuggestionResult{}, &MalformedResponseError{Endpoint: suggestPath, Reason: "missing category field"}
	}
	if resp.SuggestedBooks == nil {
		return model.SuggestionResult{}, &MalformedResponseError{Endpoint: suggestPath, Reason: "missing suggestedBooks field"}
	}

	result := model.SuggestionResult{
		Category:       model.Category(*resp.Category),
		SuggestedBooks: *resp.SuggestedBooks,
	}

	slog.Debug("Suggestions received",
		"category", result.Category,
		"count", len(result.SuggestedBooks))

	return result, nil
}

func (c *Client) pickCategory(resp predictResponse) (string, bool) {
	present := func(v *string) bool {
		return v != nil && strings.TrimSpace(*v) != ""
	}

	switch c.categoryField {
	case FieldCategory:
		if present(resp.Category) {
			return *resp.Category, true
		}
	case FieldCluster:
		if present(resp.Cluster) {
			return *resp.Cluster, true
		}
	default:
		if present(resp.Category) {
			return *resp.Category, true
		}
		if present(resp.Cluster) {
			return *resp.Cluster, true
		}
	}
	return "", false
}

func (c *Client) categoryFieldName() string {
	if c.categoryField == FieldAuto {
		return "category or cluster"
	}
	return string(c.categoryField)
}

// post sends {"text": text} to path and returns the body of a 2xx response.
func (c *Client) post(ctx context.Context, path, text string) ([]byte, error) {
	payload, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.wait(ctx); err != nil {
			return nil, &NetworkError{Endpoint: path, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &NetworkError{Endpoint: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	truncated := len(body) > MaxBodySize
	if truncated {
		body = body[:MaxBodySize]
	}

	slog.Debug("Service responded",
		"endpoint", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(body), Truncated: truncated}
	}
	if truncated {
		return nil, &MalformedResponseError{
			Endpoint: path,
			Reason:   fmt.Sprintf("body exceeds %d bytes", MaxBodySize),
		}
	}

	return body, nil
}
