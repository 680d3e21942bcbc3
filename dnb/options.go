package dnb

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production v2 API
	DefaultBaseURL = "https://api.nbn-resolving.org/v2/"
	// SandboxBaseURL is the test environment of the v2 API
	SandboxBaseURL = "https://api.nbn-resolving.org/sandbox/v2/"

	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 10
	MaxConcurrency     = 50

	defaultUserAgent = "dnburn"
)

// Doer performs a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient  Doer
	timeout     time.Duration
	userAgent   string
	tracing     bool
	concurrency int
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:     DefaultTimeout,
		userAgent:   defaultUserAgent,
		tracing:     true,
		concurrency: DefaultConcurrency,
	}
}

// WithHTTPClient replaces the transport used for every request.
// Timeout and tracing options are ignored when it is set.
func WithHTTPClient(doer Doer) Option {
	return func(o *clientOptions) {
		o.httpClient = doer
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithTracing toggles the OpenTelemetry transport.
func WithTracing(enabled bool) Option {
	return func(o *clientOptions) {
		o.tracing = enabled
	}
}

// WithConcurrency sets how many requests batch helpers run in parallel.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 && n <= MaxConcurrency {
			o.concurrency = n
		}
	}
}
