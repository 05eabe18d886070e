// Package backendapi is the HTTP client for the upstream employee-management
// API. It attaches the calling session's bearer token, classifies failures
// into the application error taxonomy, and broadcasts credential rejections
// so the owning session can be discarded.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/staffdesk/ui-gateway/internal/errors"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// messageExpr extracts the human-readable message from an error payload.
// The backend is not consistent about the key.
const messageExpr = "message || error || msg"

// Client talks to the employee backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	forced     ports.ForcedLogoutSink
}

// ClientOptions contains the dependencies for NewClient.
type ClientOptions struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string
	// Timeout bounds each request. Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a backend client.
func NewClient(opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SetForcedLogout registers the sink notified when the backend rejects a
// session's credential. Set after construction; the sink itself depends on
// this client.
func (c *Client) SetForcedLogout(sink ports.ForcedLogoutSink) {
	c.forced = sink
}

// call performs one backend request. The bearer token, when present, comes
// from the caller identity in the context. A 401 response broadcasts a
// forced logout for the calling session before returning.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	caller, hasCaller := ports.CallerFromContext(ctx)
	if hasCaller && caller.Token != "" {
		req.Header.Set("Authorization", "Bearer "+caller.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable", "method", method, "path", path, "error", err)
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "backend unreachable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "read response body")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.forced != nil && hasCaller && caller.SessionID != "" {
			c.forced.ForceLogout(ctx, caller.SessionID)
		}
		return apperrors.Unauthorized(extractMessage(data, "session expired"))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := extractMessage(data, fmt.Sprintf("backend returned %d", resp.StatusCode))
		c.logger.Warn("backend rejected request",
			"method", method, "path", path, "status", resp.StatusCode)
		return apperrors.BackendRejected(msg)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeDecode, "decode response body")
		}
	}
	return nil
}

// listEnvelope is the shape of every list endpoint's response.
type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

// extractMessage pulls the human-readable message out of an error payload,
// falling back when the body is not JSON or carries no known message key.
func extractMessage(data []byte, fallback string) string {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fallback
	}
	v, err := jmespath.Search(messageExpr, payload)
	if err != nil {
		return fallback
	}
	if msg, ok := v.(string); ok && msg != "" {
		return msg
	}
	return fallback
}
