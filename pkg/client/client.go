package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// authPaths are endpoints whose purpose is authentication itself. A 401 from
// one of these means "bad credentials", not "session expired", so the
// refresh-and-retry interceptor must never touch them.
var authPaths = []string{
	"/auth/login",
	"/auth/admin/login",
	"/auth/signup",
	"/auth/forgot-password",
	"/auth/verify-otp-login",
	"/auth/refresh-token",
}

// Client is the platform API client. The server keeps the session in
// httpOnly cookies, so every request rides on the shared cookie jar.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client against baseURL with a fixed request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil) //nolint:errcheck // only fails on a bad PublicSuffixList option
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do issues one request and applies the refresh-and-retry rule: the first
// 401 from a non-auth endpoint triggers exactly one refresh-token call and
// one resubmission. The retry state lives on this stack frame, so concurrent
// requests cannot observe each other's retries. A failed refresh propagates
// the original 401, and a 401 on the resubmission is returned as-is. The
// body is marshaled once up front so the retry replays identical bytes.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		payload = data
	}

	err := c.send(ctx, method, path, payload, out)
	if err == nil || isAuthPath(path) || !IsStatus(err, http.StatusUnauthorized) {
		return err
	}

	if refreshErr := c.send(ctx, http.MethodPost, "/auth/refresh-token", nil, nil); refreshErr != nil {
		return err
	}
	return c.send(ctx, method, path, payload, out)
}

// send performs a single HTTP round trip and unwraps the response envelope.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		if msg := strings.TrimSpace(string(respBody)); msg != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}

	// Every success rides in a {"data": ...} envelope, unwrapped exactly
	// one level. A 2xx body that is not a well-formed envelope is a
	// contract violation, not a server error.
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &InvalidResponseError{Reason: fmt.Sprintf("malformed envelope: %v", err)}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &InvalidResponseError{Reason: "envelope missing data field"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &InvalidResponseError{Reason: fmt.Sprintf("decode data: %v", err)}
	}
	return nil
}
