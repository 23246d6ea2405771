package api

import "time"

// DefaultBaseURL is the API target used when the config does not set one.
const DefaultBaseURL = "http://localhost:8000"

// NewDefaultClient builds a client pointed at the default API URL.
func NewDefaultClient(apiKey string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, apiKey, timeout...)
}

// NewConfiguredClient builds a client for baseURL, falling back to
// DefaultBaseURL when it is empty.
func NewConfiguredClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		return NewDefaultClient(apiKey, timeout)
	}
	return NewClient(baseURL, apiKey, timeout)
}
