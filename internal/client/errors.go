package client

import (
	"errors"
	"fmt"
)

// TransportError is a network-level failure talking to a provider.
type TransportError struct {
	Provider string
	URL      string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request to %s failed: %v", e.Provider, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError is a non-2xx answer from a provider.
type ProviderError struct {
	Provider   string
	URL        string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: received status code %d from %s", e.Provider, e.StatusCode, e.URL)
}

// IsProviderError reports whether err wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsTransportError reports whether err wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
