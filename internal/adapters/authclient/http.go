package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Messages shared by the remote providers.
const (
	MsgNetworkError     = "Network error. Please try again."
	MsgCheckFailed      = "Authentication check failed"
	MsgNoToken          = "No token found"
	MsgLoggedOut        = "Logged out successfully"
	MsgNotConfigured    = "Authentication service is not configured"
	MsgLoginOK          = "Login successful"
	MsgSignupOK         = "Account created successfully"
	MsgSignupConfirm    = "Check your email to confirm your account"
	MsgSessionOK        = "Session is valid"
	MsgUnexpectedStatus = "Authentication service error"
)

const defaultTimeout = 10 * time.Second

const maxBody = 1 << 20

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   defaultTimeout,
	}
}

// statusError carries a non-2xx response whose body could not be decoded.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// doJSON sends body (if any) as JSON and decodes the reply into out.
// Non-2xx replies are still decoded when they carry a JSON body, so that
// servers returning {"success":false,...} with a 401 surface their message.
func doJSON(ctx context.Context, c *http.Client, method, url string, headers map[string]string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if resp.StatusCode >= 300 {
			return resp.StatusCode, &statusError{code: resp.StatusCode}
		}
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= 300 {
			return resp.StatusCode, &statusError{code: resp.StatusCode}
		}
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
