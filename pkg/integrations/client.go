package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/codelabs/pkg/buildinfo"
	"github.com/matzehuels/codelabs/pkg/cache"
	"github.com/matzehuels/codelabs/pkg/observability"
)

const httpTimeout = 15 * time.Second

var (
	// ErrNotFound is returned when the content host has no such resource.
	ErrNotFound = cache.ErrNotFound

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = cache.ErrNetwork
)

// NewHTTPClient creates an HTTP client with the standard request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Client provides shared HTTP functionality for content host clients.
type Client struct {
	http       *http.Client
	cache      cache.Cache
	keyer      cache.Keyer
	namespace  string
	ttl        time.Duration
	headers    map[string]string
	retryDelay time.Duration
}

// NewClient creates a Client. Cached responses are stored in c under keys
// built from namespace and live for ttl. headers are sent with every
// request; nil is allowed. A nil cache disables caching.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:       NewHTTPClient(),
		cache:      c,
		keyer:      cache.NewDefaultKeyer(),
		namespace:  namespace,
		ttl:        ttl,
		headers:    headers,
		retryDelay: cache.DefaultDelay,
	}
}

// WithKeyer sets the key builder, typically a [cache.ScopedKeyer].
func (c *Client) WithKeyer(k cache.Keyer) *Client {
	if k != nil {
		c.keyer = k
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.http = h
	}
	return c
}

// Cached loads v from the cache under key, or runs fetch (with retries) to
// populate v and stores the JSON encoding of v. If refresh is true the cache
// read is skipped. Cache failures never fail the call.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	fullKey := c.keyer.HTTPKey(c.namespace, key)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, fullKey); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				observability.Cache().OnCacheHit(ctx, "http")
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}
	if err := cache.Retry(ctx, cache.DefaultAttempts, c.retryDelay, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, fullKey, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, "http", len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetText performs an HTTP GET request and returns the response body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, url, nil)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", cache.Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}
	return string(data), nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
