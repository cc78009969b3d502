// Package apiclient talks to the remote HR API. Every response is normalised into
// an Envelope so callers never branch on response shape, and every failure is
// mapped onto the shared error taxonomy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// Config configures the API client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	Logger   *slog.Logger
}

// Client is the shared transport. Bind a token with WithToken before calling.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  *slog.Logger
}

// New constructs a Client. RetryMax of zero sends every request exactly once.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = max(cfg.RetryMax, 0)
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = logger
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    rc,
		logger:  logger,
	}
}

// WithToken returns a Caller that authenticates as the holder of token.
func (c *Client) WithToken(token string) *Caller {
	return &Caller{client: c, token: token}
}

// Caller issues requests on behalf of one session.
type Caller struct {
	client *Client
	token  string
}

// Read issues a GET to endpoint with query parameters.
func (c *Caller) Read(ctx context.Context, endpoint string, query url.Values) (Envelope, error) {
	return c.do(ctx, http.MethodGet, withQuery(endpoint, query), nil)
}

// Write sends body to endpoint with method GET, POST, PUT or DELETE.
func (c *Caller) Write(ctx context.Context, endpoint string, body any, method string) (Ack, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return Ack{}, fmt.Errorf("apiclient: metode tidak didukung: %s", method)
	}
	env, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return Ack{}, err
	}
	return Ack{Message: env.Message, Envelope: env}, nil
}

func (c *Caller) do(ctx context.Context, method, endpoint string, body any) (Envelope, error) {
	var payload io.Reader
	if body != nil && method != http.MethodGet {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("apiclient: encode body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	target := c.client.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Envelope{}, ctx.Err()
		}
		c.client.logger.Warn("api request failed",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.Any("error", err))
		return Envelope{}, fmt.Errorf("%s %s: %w", method, endpoint, shared.ErrNetwork)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s %s: %w", method, endpoint, shared.ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Envelope{}, &shared.ServerError{Status: resp.StatusCode, Message: msg}
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return Envelope{}, &shared.ServerError{Status: resp.StatusCode, Message: "Respons server tidak valid.", Err: err}
	}
	if env.Failed {
		msg := env.Message
		if msg == "" {
			msg = "Server error"
		}
		return Envelope{}, &shared.ServerError{Status: resp.StatusCode, Message: msg}
	}
	return env, nil
}

func withQuery(endpoint string, query url.Values) string {
	if len(query) == 0 {
		return endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + query.Encode()
}
