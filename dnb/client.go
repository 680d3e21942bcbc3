package dnb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client represents a URN service API client.
//
// A Client keeps no per-call state and may be shared between goroutines.
type Client struct {
	baseURL     string
	username    string
	password    string
	httpClient  Doer
	userAgent   string
	concurrency int
	logger      zerolog.Logger
}

// NewClient creates a new URN service client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL must be http or https, got %q", ErrInvalidConfig, baseURL)
	}

	// Ensure baseURL ends with exactly one slash
	baseURL = strings.TrimRight(baseURL, "/") + "/"

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		var transport http.RoundTripper = http.DefaultTransport
		if options.tracing {
			transport = NewTracingTransport(transport)
		}
		httpClient = &http.Client{
			Timeout:   options.timeout,
			Transport: transport,
		}
	}

	return &Client{
		baseURL:     baseURL,
		username:    username,
		password:    password,
		httpClient:  httpClient,
		userAgent:   options.userAgent,
		concurrency: options.concurrency,
		logger:      logger,
	}, nil
}

// BaseURL returns the normalized base address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one call against the API
type request struct {
	method string
	path   string
	auth   bool
	body   any
}

// response is the raw result of a call that reached the server
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// doRequest performs an HTTP request, with authentication when required
func (c *Client) doRequest(ctx context.Context, req request) (*response, error) {
	if req.auth && c.username == "" {
		return nil, ErrMissingCredentials
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.auth {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("method", req.method).
			Str("path", req.path).
			Msg("URN service request failed")
		return nil, &TransportError{Method: req.method, Path: req.path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.method, Path: req.path, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("URN service request")

	return &response{status: resp.StatusCode, body: data}, nil
}

// decode unmarshals a 2xx body into v
func decode(resp *response, v any) error {
	if !resp.ok() {
		return newAPIError(resp.status, resp.body)
	}
	body := bytes.TrimSpace(resp.body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return &DecodeError{StatusCode: resp.status, Err: io.ErrUnexpectedEOF}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{StatusCode: resp.status, Err: err}
	}
	if p, ok := v.(payload); ok {
		if err := p.validate(); err != nil {
			return &DecodeError{StatusCode: resp.status, Err: err}
		}
	}
	return nil
}

// payload is implemented by response objects with required fields
type payload interface {
	validate() error
}

// expectNoContent accepts only 204, the service's answer to mutations
// without a body
func expectNoContent(resp *response) error {
	if resp.status != http.StatusNoContent {
		return newAPIError(resp.status, resp.body)
	}
	return nil
}
