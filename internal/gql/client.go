// Package gql is a small GraphQL-over-HTTP client with response caching and
// in-flight de-duplication.
package gql

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"usergrid/internal/cache"
)

// FetchPolicy decides whether a request may be answered from the cache.
type FetchPolicy int

const (
	// CacheFirst serves a fresh cached response and otherwise goes to the network.
	CacheFirst FetchPolicy = iota
	// NetworkOnly always goes to the network and refreshes the cache.
	NetworkOnly
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = time.Minute
	maxErrorBody    = 512
)

// Request is a GraphQL operation.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorEntry    `json:"errors"`
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a static header to every request, e.g. Authorization.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithCache enables response caching.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client posts GraphQL operations to a single endpoint. It is safe for
// concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	headers  http.Header
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	group    singleflight.Group
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("graphql endpoint required")
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: defaultTimeout},
		headers:  make(http.Header),
		cacheTTL: defaultCacheTTL,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do executes req and decodes the data member into out. A response carrying
// GraphQL errors returns *Error even if partial data was sent.
func (c *Client) Do(ctx context.Context, req Request, out any, policy FetchPolicy) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	key := cacheKey(body)

	if policy == CacheFirst && c.cache != nil {
		if data, ok := c.cache.Get(ctx, key); ok {
			if err := decodeData(data, out); err == nil {
				c.logger.Debug("cache hit", zap.String("operation", req.OperationName))
				return nil
			}
			// Entry no longer decodes into out; refetch and overwrite it.
			c.logger.Warn("dropping undecodable cache entry", zap.String("operation", req.OperationName))
			c.cache.Delete(ctx, key)
		}
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.post(ctx, req.OperationName, body)
	})
	if err != nil {
		return err
	}
	if shared {
		c.logger.Debug("shared in-flight request", zap.String("operation", req.OperationName))
	}

	data := v.(json.RawMessage)
	if c.cache != nil {
		c.cache.Set(ctx, key, data, c.cacheTTL)
	}
	return decodeData(data, out)
}

func (c *Client) post(ctx context.Context, operation string, body []byte) (json.RawMessage, error) {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("operation", operation), zap.String("request_id", requestID))
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header = c.headers.Clone()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("graphql request failed", zap.Error(err))
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Servers often report GraphQL errors with a 4xx status.
		var gr response
		if json.Unmarshal(raw, &gr) == nil && len(gr.Errors) > 0 {
			log.Warn("graphql errors", zap.Int("status", resp.StatusCode), zap.String("error", gr.Errors[0].Message))
			return nil, &Error{Entries: gr.Errors}
		}
		log.Warn("graphql http error", zap.Int("status", resp.StatusCode))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: excerpt(raw)}
	}

	var gr response
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(gr.Errors) > 0 {
		log.Warn("graphql errors", zap.String("error", gr.Errors[0].Message))
		return nil, &Error{Entries: gr.Errors}
	}

	log.Debug("graphql request completed", zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(raw)))
	return gr.Data, nil
}

func decodeData(data json.RawMessage, out any) error {
	if out == nil || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

func cacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return "gql:" + hex.EncodeToString(sum[:])
}

func excerpt(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody])
	}
	return string(b)
}
