package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is where the classification service listens by default.
const DefaultBaseURL = "http://localhost:8000"

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 1 << 20

// ErrMalformed is returned when a 2xx body is missing required fields.
var ErrMalformed = errors.New("malformed prediction response")

// StatusError is returned for non-2xx responses and for error-shaped bodies.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("classifier returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("classifier returned status %d", e.StatusCode)
}

// Client talks to the classification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at baseURL. The default transport has
// no timeout of its own; callers bound each call with the context deadline.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Predict posts the text to /predict and decodes the result.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (PredictResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return PredictResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(data))
	if err != nil {
		return PredictResponse{}, fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, reqID)

	log := c.logger.With(zap.String("request_id", reqID))
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("predict request failed", zap.Error(err))
		return PredictResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("predict response unreadable", zap.Error(err))
		return PredictResponse{}, fmt.Errorf("read response: %w", err)
	}
	log.Debug("predict response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return PredictResponse{}, &StatusError{StatusCode: resp.StatusCode, Detail: detailOf(body)}
	}

	var out PredictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if d := detailOf(body); d != "" {
			return PredictResponse{}, &StatusError{StatusCode: resp.StatusCode, Detail: d}
		}
		return PredictResponse{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !out.Success {
		if d := detailOf(body); d != "" {
			return PredictResponse{}, &StatusError{StatusCode: resp.StatusCode, Detail: d}
		}
		return PredictResponse{}, fmt.Errorf("%w: success flag not set", ErrMalformed)
	}
	if err := checkShape(body); err != nil {
		return PredictResponse{}, err
	}
	if out.PredictedGenre == "" {
		return PredictResponse{}, fmt.Errorf("%w: empty predicted_genre", ErrMalformed)
	}
	if len(out.TopProbabilities) == 0 {
		return PredictResponse{}, fmt.Errorf("%w: empty top_5_probabilities", ErrMalformed)
	}

	return out, nil
}

// Health fetches /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return HealthResponse{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return HealthResponse{}, &StatusError{StatusCode: resp.StatusCode, Detail: detailOf(body)}
	}

	var h HealthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		return HealthResponse{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return h, nil
}

var (
	requiredFields = []string{
		"predicted_genre", "predicted_genre_tr", "emoji", "description",
		"confidence", "top_5_probabilities", "translated_text", "original_text",
	}
	requiredItemFields = []string{"genre", "genre_tr", "emoji", "probability"}
)

// checkShape reports ErrMalformed when a success body or one of its ranked
// items lacks a required key. A null value counts as missing.
func checkShape(body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if k := missingKey(raw, requiredFields); k != "" {
		return fmt.Errorf("%w: missing %s", ErrMalformed, k)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw["top_5_probabilities"], &items); err != nil {
		return fmt.Errorf("%w: top_5_probabilities: %v", ErrMalformed, err)
	}
	for i, item := range items {
		if k := missingKey(item, requiredItemFields); k != "" {
			return fmt.Errorf("%w: top_5_probabilities[%d] missing %s", ErrMalformed, i, k)
		}
	}
	return nil
}

func missingKey(raw map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return k
		}
	}
	return ""
}

// detailOf extracts a string "detail" field, or "" if absent or not a string.
func detailOf(body []byte) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	field, ok := raw["detail"]
	if !ok {
		return ""
	}
	var detail string
	if err := json.Unmarshal(field, &detail); err != nil {
		return ""
	}
	return detail
}
