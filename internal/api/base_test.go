package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestNewDefaultClientUsesDefaultBaseURL(t *testing.T) {
	var gotURL string
	client := NewDefaultClient("nbl_testkey")
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		body := `{"data":{"id":"u1","username":"alice"}}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURL, DefaultBaseURL))
}

func TestNewConfiguredClientFallsBackToDefault(t *testing.T) {
	client := NewConfiguredClient("", "k", 3*time.Second)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)

	custom := NewConfiguredClient("https://tags.example.com/", "k", 0)
	assert.Equal(t, "https://tags.example.com", custom.baseURL)
	assert.Equal(t, 30*time.Second, custom.httpClient.Timeout)
}
