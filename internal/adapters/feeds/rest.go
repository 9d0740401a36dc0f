package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds a single feed request when the caller's context has no deadline.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a feed response is read.
const maxBody = 8 << 20

var (
	ErrNoBaseURL = errors.New("feeds: base URL is empty")
	ErrStatus    = errors.New("feeds: unexpected status")
)

// Client is the HTTP side shared by every REST feed.
type Client struct {
	base    *url.URL
	http    *http.Client
	token   func() string
	headers http.Header
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.http = c }
}

// WithBearer attaches "Authorization: Bearer <token>" when token returns non-empty.
func WithBearer(token func() string) ClientOption {
	return func(cl *Client) { cl.token = token }
}

// WithHeader adds a static header to every request.
func WithHeader(key, value string) ClientOption {
	return func(cl *Client) { cl.headers.Set(key, value) }
}

// NewClient parses baseURL, e.g. "http://localhost:5000/api".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("feeds: parse base URL: %w", err)
	}
	c := &Client{
		base: u,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
		headers: http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL joins the base with a resource path.
func (c *Client) URL(resource string) string {
	return c.base.JoinPath(resource).String()
}

// GetJSON issues GET {base}/{resource} and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(resource), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header[k] = v
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return fmt.Errorf("%w: GET %s: %d", ErrStatus, resource, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("feeds: decode %s: %w", resource, err)
	}
	return nil
}

// Source is the primary tier for one resource: GET {base}/{resource}
// returning either a JSON array or an envelope {"data": [...]}.
type Source[T any] struct {
	client   *Client
	resource string
}

var _ ports.Source[struct{}] = (*Source[struct{}])(nil)

func NewSource[T any](client *Client, resource string) *Source[T] {
	return &Source[T]{client: client, resource: resource}
}

func (s *Source[T]) Name() string { return "rest:" + s.resource }

func (s *Source[T]) Fetch(ctx context.Context) ([]T, error) {
	var raw json.RawMessage
	if err := s.client.GetJSON(ctx, s.resource, &raw); err != nil {
		return nil, err
	}
	return decodeItems[T](raw)
}

// ErrNoItems means a response carried neither an array nor a data or items
// list.
var ErrNoItems = errors.New("feeds: response has no items")

type envelope[T any] struct {
	Data  []T `json:"data"`
	Items []T `json:"items"`
}

func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, ErrNoItems
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("feeds: decode items: %w", err)
		}
		return items, nil
	}
	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("feeds: decode envelope: %w", err)
	}
	switch {
	case env.Data != nil:
		return env.Data, nil
	case env.Items != nil:
		return env.Items, nil
	}
	return nil, ErrNoItems
}
