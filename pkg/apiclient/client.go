// Package apiclient is the HTTP client for the newsdesk API. It injects the
// session token, retries requests that got no response and tears the session
// down on 401.
package apiclient

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
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultTimeout    = 12 * time.Second
	DefaultMaxRetries = 2
	defaultBaseDelay  = 300 * time.Millisecond
	defaultLoginURL   = "/login"
)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *Session
	loginURL       string
	onUnauthorized func(loginURL string)
	maxRetries     uint64
	baseDelay      time.Duration
	timer          backoff.Timer
}

type Option func(*Client)

// WithTimeout bounds each attempt. A timed out attempt counts as a network
// failure and is retried.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRedirect sets the callback that sends the user to the login entry
// point after a 401.
func WithRedirect(loginURL string, fn func(loginURL string)) Option {
	return func(c *Client) {
		if loginURL != "" {
			c.loginURL = loginURL
		}
		c.onUnauthorized = fn
	}
}

func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = uint64(maxRetries)
		}
		if baseDelay > 0 {
			c.baseDelay = baseDelay
		}
	}
}

func withTimer(t backoff.Timer) Option {
	return func(c *Client) {
		c.timer = t
	}
}

func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		session:    session,
		loginURL:   defaultLoginURL,
		maxRetries: DefaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Request describes one API call. POST is only retried when Idempotent is
// set; every other method is retried on network failure.
type Request struct {
	Method     string
	Path       string
	Query      url.Values
	Body       interface{}
	Idempotent bool
}

func (r Request) retryable() bool {
	return r.Method != http.MethodPost || r.Idempotent
}

// Do sends the request and decodes a 2xx JSON body into out when out is
// not nil.
func (c *Client) Do(ctx context.Context, r Request, out interface{}) error {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var payload []byte
	if r.Body != nil {
		var err error
		payload, err = json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	operation := func() error {
		return c.attempt(ctx, r.Method, target, payload, out)
	}

	maxRetries := c.maxRetries
	if !r.retryable() {
		maxRetries = 0
	}

	err := backoff.RetryNotifyWithTimer(operation, c.newBackOff(ctx, maxRetries), nil, c.timer)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			// Cancelled while waiting between attempts
			return &TransportError{Method: r.Method, URL: target, Err: err}
		}
	}
	return err
}

func (c *Client) newBackOff(ctx context.Context, maxRetries uint64) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.baseDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Minute
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, maxRetries), ctx)
}

// attempt returns a plain TransportError for failures worth retrying and a
// permanent error for everything else.
func (c *Client) attempt(ctx context.Context, method, target string, payload []byte, out interface{}) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, generation := c.session.current()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := &TransportError{Method: method, URL: target, Err: err}
		if ctx.Err() != nil {
			return backoff.Permanent(transportErr)
		}
		return transportErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// a response arrived, so this is not retried
		return backoff.Permanent(&TransportError{Method: method, URL: target, Err: err})
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.handleUnauthorized(generation)
		return backoff.Permanent(&AuthError{Message: errorMessage(raw).Error})
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg := errorMessage(raw)
		return backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Message: msg.Error, Fields: msg.Fields})
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *Client) handleUnauthorized(generation uint64) {
	if c.session.teardown(generation) && c.onUnauthorized != nil {
		c.onUnauthorized(c.loginURL)
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func errorMessage(raw []byte) errorBody {
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	return body
}
