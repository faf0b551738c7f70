// Package apix provides the configured HTTP client used by application code.
//
// Overview:
//   - Responsibility: One client per service with envelope decoding, linear
//     retries, and an unauthorized hook; a process-wide default instance
//   - Key Types: Options for construction, Client, Response envelope
//   - Concurrency Model: Clients are immutable after construction and safe
//     for concurrent use; only the default-instance holder is guarded
//   - Error Semantics: Enveloped calls never fail, raw calls propagate errors
//
// Usage:
//
//	client, err := apix.New(
//	  apix.WithBaseURL("https://api.example.com"),
//	  apix.WithTokenProvider(session.Token),
//	  apix.WithOnUnauthorized(session.Expire),
//	)
//	resp := apix.Get[User](ctx, client, "/users/42")
//	if resp.Code != 200 { ... }
package apix

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/ethanz-code/appkit/apix/internal"
	"github.com/ethanz-code/appkit/core/errors"
	"github.com/ethanz-code/appkit/core/log"
	"github.com/ethanz-code/appkit/logx"
)

// Options configures a Client.
type Options struct {
	// BaseURL prefixes every request path. Required.
	BaseURL string `validate:"required,url"`

	// TokenProvider supplies the bearer token for the Authorization header.
	// It is consulted once, at construction time; a token rotated later is
	// not picked up until the client is rebuilt.
	TokenProvider func() string

	// OnUnauthorized runs whenever a response body carries code 401,
	// whatever the HTTP status. The response still reaches the caller.
	OnUnauthorized func()

	Timeout          time.Duration // Per-attempt timeout (default: 10s)
	MaxRetries       int           `validate:"gte=0"` // Retries after the first attempt (default: 3)
	RetryInterval    time.Duration // Wait before retry n is n*interval (default: 1s)
	EnableCircuit    bool          // Wrap the transport in a circuit breaker (default: off)
	CircuitThreshold uint32        // Consecutive failures before the breaker opens (default: 5)
	Logger           log.Logger    // Logger (default: discard)

	// Transport overrides the base round tripper. Used by tests.
	Transport http.RoundTripper
}

// Option is a functional option for configuring the client.
type Option func(*Options)

// WithBaseURL sets the base URL every request path is resolved against.
func WithBaseURL(u string) Option {
	return func(o *Options) { o.BaseURL = u }
}

// WithTokenProvider sets the bearer-token accessor.
func WithTokenProvider(fn func() string) Option {
	return func(o *Options) { o.TokenProvider = fn }
}

// WithOnUnauthorized sets the hook invoked on envelope code 401.
func WithOnUnauthorized(fn func()) Option {
	return func(o *Options) { o.OnUnauthorized = fn }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithMaxRetries sets the number of retries after the initial attempt.
func WithMaxRetries(n int) Option {
	return func(o *Options) { o.MaxRetries = n }
}

// WithRetryInterval sets the linear retry interval.
func WithRetryInterval(d time.Duration) Option {
	return func(o *Options) { o.RetryInterval = d }
}

// WithCircuitBreaker enables the circuit breaker around the transport.
func WithCircuitBreaker(enabled bool) Option {
	return func(o *Options) { o.EnableCircuit = enabled }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTransport overrides the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *Options) { o.Transport = rt }
}

// Client is an HTTP client bound to one base URL with fixed default headers.
// It is read-only after construction and safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	headers        http.Header
	onUnauthorized func()
	logger         log.Logger
}

// New creates a Client from the given options.
func New(opts ...Option) (*Client, error) {
	options := Options{
		Timeout:          10 * time.Second,
		MaxRetries:       3,
		RetryInterval:    time.Second,
		CircuitThreshold: 5,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = logx.Nop()
	}

	if err := validator.New().Struct(options); err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "apix.New", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	if options.TokenProvider != nil {
		if tok := options.TokenProvider(); tok != "" {
			headers.Set("Authorization", "Bearer "+tok)
		}
	}

	var cb *gobreaker.CircuitBreaker
	if options.EnableCircuit {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "apix",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > options.CircuitThreshold
			},
		})
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   options.Timeout,
			Transport: internal.NewRetryTransport(options.Transport, options.MaxRetries, options.RetryInterval, cb),
		},
		baseURL:        options.BaseURL,
		headers:        headers,
		onUnauthorized: options.OnUnauthorized,
		logger:         options.Logger,
	}, nil
}

// BaseURL returns the base URL the client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}
