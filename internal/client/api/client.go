// Package api is the single point of egress for all calls to the TesteMatch
// backend. It owns the default authorization header, appends a cache-busting
// timestamp to every request, and transparently performs at most one token
// refresh-and-replay when a request comes back 401.
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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/testematch/cli/internal/client/models"
	"github.com/testematch/cli/internal/common"
	"github.com/testematch/cli/internal/logging"
)

const refreshPath = "/auth/refresh"

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 10 * time.Second

// Client talks to the backend REST API.
//
// The auth token is process-wide state mutated only through SetAuthToken
// (normally by the session store) and by the internal refresh protocol.
// Each request captures the token generation at issue time so that two
// concurrent 401s trigger a single refresh: the second caller finds the
// generation already advanced and just replays.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu       sync.Mutex
	token    string
	tokenGen uint64

	refreshMu sync.Mutex

	// OnTokenRefreshed is invoked after the refresh protocol obtained a new
	// token, so the session store can persist the record. Optional.
	OnTokenRefreshed func(token string)

	// OnSessionExpired is invoked when a refresh attempt fails terminally.
	// Optional.
	OnSessionExpired func()

	// now is a test seam for the cache-busting timestamp.
	now func() time.Time
}

// New builds a Client for the given base URL ("http://host:port/api").
// A zero timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
		now:     time.Now,
	}
}

// SetAuthToken sets or clears the default authorization header applied to
// all subsequent requests. An empty token removes the header.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenGen++
}

func (c *Client) authToken() (string, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.tokenGen
}

// do issues one request and, on a 401, runs the refresh protocol and replays
// the request exactly once. The refresh endpoint itself is never retried.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	token, gen := c.authToken()

	err := c.send(ctx, method, path, params, body, out, token)
	if err == nil {
		return nil
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || path == refreshPath {
		return err
	}

	newToken, refreshErr := c.refresh(ctx, gen)
	if refreshErr != nil {
		c.log.Warn(ctx, "token refresh failed, session expired", "path", path, "error", refreshErr)
		if c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
		return fmt.Errorf("session expired: %w", common.ErrUnauthorized)
	}

	// Replay once with the fresh header. A second 401 propagates as-is.
	return c.send(ctx, method, path, params, body, out, newToken)
}

// refresh exchanges the current token for a new one via POST /auth/refresh.
// callerGen is the token generation observed by the failed request: if the
// token already changed since then, another request refreshed first and the
// current token is returned without a network call.
func (c *Client) refresh(ctx context.Context, callerGen uint64) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	token, gen := c.authToken()
	if gen != callerGen {
		return token, nil
	}

	var resp models.TokenResponse
	if err := c.send(ctx, http.MethodPost, refreshPath, nil, nil, &resp, token); err != nil {
		return "", err
	}

	c.SetAuthToken(resp.Token)
	if c.OnTokenRefreshed != nil {
		c.OnTokenRefreshed(resp.Token)
	}
	return resp.Token, nil
}

// send performs a single HTTP exchange with no retry logic.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, body, out any, token string) error {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set(common.CacheBustParam, strconv.FormatInt(c.now().UnixMilli(), 10))

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+q.Encode(), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: extractMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls the backend's human-readable error string out of a
// failure body. The backend uses "error"; "message" is accepted as a
// fallback for older endpoints.
func extractMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
