package api

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
)

const userAgent = "nebula-tags-cli"

// Client wraps HTTP calls to the Nebula tags REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, apiKey string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: httpTimeout},
	}
}

// SetAPIKey updates the bearer token used for subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return NewClient(c.baseURL, c.apiKey, timeout)
}

// Error is a non-2xx response. Message is the server's explanation when the
// body carried one, otherwise the raw body.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	raw        bool
}

func (e *Error) Error() string {
	if e.raw {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	msg, _ := formatAPIError(e.Code, e.Message)
	return msg
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// do executes a request and returns the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, responseError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) del(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// decodeOne decodes a single-item API response.
func decodeOne[T any](data []byte) (*T, error) {
	var resp apiResponse[T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp.Data, nil
}

// decodeList decodes a list API response. A missing data field is an empty list.
func decodeList[T any](data []byte) ([]T, error) {
	var resp apiResponse[[]T]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Data == nil {
		return []T{}, nil
	}
	return resp.Data, nil
}

// buildQuery appends query params to a path. Empty values are skipped.
func buildQuery(path string, params QueryParams) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func responseError(status int, body []byte) *Error {
	if code, message, ok := extractAPIError(body); ok {
		return &Error{StatusCode: status, Code: code, Message: message}
	}
	return &Error{StatusCode: status, Message: strings.TrimSpace(string(body)), raw: true}
}

// extractAPIError reads the envelope error, a bare "error" value or a
// "detail" field, in that order.
func extractAPIError(body []byte) (code, message string, ok bool) {
	if len(body) == 0 {
		return "", "", false
	}

	var envelope apiResponse[any]
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		code, message = strings.TrimSpace(envelope.Error.Code), strings.TrimSpace(envelope.Error.Message)
		return code, message, code != "" || message != ""
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", false
	}
	if code, message, ok := parseErrorValue(payload["error"]); ok {
		return code, message, true
	}
	return parseErrorValue(payload["detail"])
}

func parseErrorValue(raw any) (code, message string, ok bool) {
	switch value := raw.(type) {
	case string:
		message = strings.TrimSpace(value)
		return "", message, message != ""
	case map[string]any:
		if code, message, ok := parseErrorValue(value["error"]); ok {
			return code, message, true
		}
		code, _ = value["code"].(string)
		message, _ = value["message"].(string)
		code, message = strings.TrimSpace(code), strings.TrimSpace(message)
		return code, message, code != "" || message != ""
	}
	return "", "", false
}

func formatAPIError(code, message string) (string, bool) {
	switch {
	case code != "" && message != "":
		return code + ": " + message, true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
