package apix

import (
	"sync"

	"github.com/ethanz-code/appkit/core/errors"
)

// The process-wide default client. The holder is the only mutable state in
// this package: unset until Init, then fixed for the process lifetime.
var defaultHolder struct {
	mu     sync.Mutex
	client *Client
}

// Init constructs the default client. The first call wins; any later call
// logs a warning and leaves the existing instance active, so applications
// that initialize defensively from several entry points don't crash.
func Init(opts ...Option) error {
	defaultHolder.mu.Lock()
	defer defaultHolder.mu.Unlock()

	if defaultHolder.client != nil {
		defaultHolder.client.logger.Warn("apix already initialized, keeping existing client",
			"base_url", defaultHolder.client.baseURL)
		return nil
	}

	client, err := New(opts...)
	if err != nil {
		return err
	}
	defaultHolder.client = client
	return nil
}

// Default returns the client set up by Init. Calling it earlier is a
// programming error and yields a FAILED_PRECONDITION error, never an
// envelope.
func Default() (*Client, error) {
	defaultHolder.mu.Lock()
	defer defaultHolder.mu.Unlock()

	if defaultHolder.client == nil {
		return nil, errors.New(errors.CodeFailedPrecondition, "apix is not initialized, call apix.Init first")
	}
	return defaultHolder.client, nil
}

// MustDefault is Default for call sites that run strictly after Init.
func MustDefault() *Client {
	client, err := Default()
	if err != nil {
		panic(err)
	}
	return client
}

// resetDefault clears the holder. Tests only.
func resetDefault() {
	defaultHolder.mu.Lock()
	defer defaultHolder.mu.Unlock()
	defaultHolder.client = nil
}
