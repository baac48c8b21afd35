package transport

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
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"salesdrive/internal/apierr"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second

	apiKeyHeader    = "X-Api-Key"
	requestIDHeader = "X-Request-Id"
	userAgent       = "salesdrive-go"
)

// Doer executes SalesDrive API calls. Services depend on it, not on *Client.
type Doer interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

// Config configures a Client
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// BaseURL returns the account URL for a SalesDrive subdomain
func BaseURL(domain string) string {
	return "https://" + domain + ".salesdrive.me/"
}

// Client is the HTTP executor shared by all services. It is safe for concurrent use.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	log        zerolog.Logger
}

// New creates a Client. Zero values in cfg fall back to the package defaults.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, apierr.InvalidArgument("base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, apierr.InvalidArgument("invalid base url %q: %v", cfg.BaseURL, err)
	}
	if cfg.APIKey == "" {
		return nil, apierr.InvalidArgument("api key is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Client{
		http:       hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: retries,
		retryDelay: delay,
		log:        logger.With().Str("component", "transport").Logger(),
	}, nil
}

// Get issues a GET with query and decodes the JSON body into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the JSON response into out
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apierr.InvalidArgument("marshal request body: %v", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	reqID := uuid.NewString()

	var (
		resp    *Response
		attempt int
	)
	op := func() error {
		attempt++
		r, err := c.roundTrip(ctx, method, endpoint, reqID, payload)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(apierr.Wrap(apierr.KindTransport, ctx.Err()))
			}
			return apierr.Wrap(apierr.KindTransport, err)
		}
		resp = r
		if r.IsSuccess() {
			return nil
		}
		apiErr := translate(r)
		if retryable(method, r.StatusCode) {
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn().
			Str("request_id", reqID).
			Str("method", method).
			Str("path", path).
			Int("attempt", attempt).
			Dur("wait", wait).
			Err(err).
			Msg("retrying request")
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		var apiErr *apierr.Error
		if !errors.As(err, &apiErr) {
			err = apierr.Wrap(apierr.KindTransport, err)
		}
		c.log.Error().
			Str("request_id", reqID).
			Str("method", method).
			Str("path", path).
			Int("attempts", attempt).
			Err(err).
			Msg("request failed")
		return err
	}

	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return &apierr.Error{
			Kind:       apierr.KindAPI,
			Message:    fmt.Sprintf("decode %s response", path),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	return nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint, reqID string, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("url", redact(endpoint)).
		Msg("making HTTP request")

	started := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Int("status_code", res.StatusCode).
		Int("body_length", len(raw)).
		Dur("elapsed", time.Since(started)).
		Msg("received HTTP response")

	return &Response{StatusCode: res.StatusCode, Headers: res.Header, Body: raw}, nil
}

// redact drops the query string, which may carry phone numbers
func redact(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func retryable(method string, status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500 && method == http.MethodGet
}

// errorBody is the error envelope SalesDrive uses on non-2xx responses
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func translate(r *Response) *apierr.Error {
	var eb errorBody
	if err := json.Unmarshal(r.Body, &eb); err != nil {
		eb = errorBody{}
	}
	msg := eb.Message
	if msg == "" {
		msg = http.StatusText(r.StatusCode)
	}

	switch r.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apierr.Authentication(msg, r.StatusCode)
	}
	return &apierr.Error{
		Kind:       apierr.KindAPI,
		Message:    msg,
		StatusCode: r.StatusCode,
		Fields:     eb.Errors,
	}
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// IsSuccess checks for a 2xx status code
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v
func (r *Response) Decode(v any) error {
	if raw, ok := v.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], r.Body...)
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
