// Package apiclient is a typed client for the Resource API. List responses
// are cached per resource and bearer token, and dropped whenever that
// resource is mutated through the same client or the token changes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/talentdesk/internal/common"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultCacheTTL = 30 * time.Second

	requestIDHeader = "X-Request-Id"
	maxErrorBody    = 64 << 10
)

// Cache tags, one per resource.
const (
	TagUsers        = "users"
	TagTalents      = "talents"
	TagReferentes   = "referentes"
	TagInteractions = "interactions"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *gocache.Cache

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = gocache.New(ttl, time.Minute) }
}

// New creates a client for baseURL authenticating with the bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   gocache.New(DefaultCacheTTL, time.Minute),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken swaps the bearer, e.g. after a session refresh. Responses cached
// under the previous token are dropped.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == c.token {
		return
	}
	c.token = token
	c.cache.Flush()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Invalidate drops every cached response under tag.
func (c *Client) Invalidate(tag string) {
	prefix := tag + "|"
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

// cachedGet serves GET path from the cache under tag, fetching on a miss.
// Keys carry the token so a fetch racing SetToken cannot leak into the
// other identity's view.
func (c *Client) cachedGet(ctx context.Context, tag, path string, out any) error {
	token := c.currentToken()
	key := tag + "|" + token + "|" + path
	if v, ok := c.cache.Get(key); ok {
		return json.Unmarshal(v.([]byte), out)
	}

	body, err := c.doAs(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	c.cache.SetDefault(key, body)
	return json.Unmarshal(body, out)
}

// mutate sends a write and invalidates tag whether or not it succeeded.
func (c *Client) mutate(ctx context.Context, tag, method, path string, in, out any) error {
	defer c.Invalidate(tag)

	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	return c.doAs(ctx, c.currentToken(), method, path, in)
}

func (c *Client) doAs(ctx context.Context, token, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	return io.ReadAll(resp.Body)
}
