// Package api — HTTP-клиент коммерческого API. Один экземпляр создаётся при
// старте и разделяется всеми запросами рендера; после New конфигурация не меняется.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"CasaMoreno/internal/storage"
)

// Interceptor вызывается перед каждой отправкой запроса и может менять его заголовки.
// Ошибка интерсептора прерывает вызов и возвращается вызывающему без изменений.
type Interceptor func(req *http.Request) error

// StatusError — ответ бэкенда с не-2xx статусом.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: server returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: server returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client represents an HTTP client for the commerce API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	header       http.Header
	interceptors []Interceptor
}

// Option configures the client before construction.
type Option func(*options)

type options struct {
	httpClient   *http.Client
	store        storage.Reader
	tokenKey     string
	header       http.Header
	interceptors []Interceptor
}

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithStorage sets the client-side storage the auth token is read from.
func WithStorage(r storage.Reader) Option {
	return func(o *options) { o.store = r }
}

// WithTokenKey overrides the storage slot name (default storage.AuthTokenKey).
func WithTokenKey(key string) Option {
	return func(o *options) {
		if key = strings.TrimSpace(key); key != "" {
			o.tokenKey = key
		}
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(o *options) { o.header.Set(key, value) }
}

// WithInterceptor appends a request interceptor; it runs after the auth interceptor.
func WithInterceptor(i Interceptor) Option {
	return func(o *options) {
		if i != nil {
			o.interceptors = append(o.interceptors, i)
		}
	}
}

// New creates a new API client for the given absolute base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	o := &options{
		httpClient: &http.Client{},
		tokenKey:   storage.AuthTokenKey,
		header:     http.Header{},
	}
	o.header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}

	interceptors := make([]Interceptor, 0, len(o.interceptors)+1)
	if o.store != nil {
		interceptors = append(interceptors, BearerToken(o.store, o.tokenKey))
	}
	interceptors = append(interceptors, o.interceptors...)

	return &Client{
		baseURL:      strings.TrimRight(u.String(), "/"),
		httpClient:   o.httpClient,
		header:       o.header,
		interceptors: interceptors,
	}, nil
}

// BaseURL returns the fixed base endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// BearerToken returns the auth interceptor: it reads key from the storage and,
// when a non-empty token is present, sets "Authorization: Bearer <token>".
// Unavailable storage means an anonymous request; any other storage error is returned as is.
func BearerToken(store storage.Reader, key string) Interceptor {
	return func(req *http.Request) error {
		if store == nil {
			return nil
		}
		token, ok, err := store.Get(req.Context(), key)
		if errors.Is(err, storage.ErrUnavailable) {
			return nil
		}
		if err != nil {
			return err
		}
		if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// NewRequest builds a request with default headers and runs the interceptors on it.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	for k, vs := range c.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// Get issues GET path and decodes the JSON body into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Post sends payload as JSON to path and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := c.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
