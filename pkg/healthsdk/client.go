package healthsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every gateway call.
const DefaultTimeout = 5 * time.Second

// Client is the remote data gateway for the HealthMate API. Every call goes
// through Request, which folds transport failures, timeouts and error
// responses into a Result instead of returning an error.
//
// The bearer token is held here and attached to every request when set. An
// empty token is not an error: the request goes out unauthenticated and the
// server decides.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a gateway for baseURL. A zero timeout selects
// DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken replaces the bearer credential. Pass "" to clear it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer credential, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Result is the outcome of one gateway call. Exactly one of Data or Error
// is meaningful, selected by OK.
type Result struct {
	OK bool
	// Status is the HTTP status, or 0 when no response arrived.
	Status int
	Data   json.RawMessage
	Error  string
}

// Unreachable reports whether the call never got an HTTP response.
func (r Result) Unreachable() bool { return !r.OK && r.Status == 0 }

// Request issues method+path with an optional JSON payload. It never fails;
// see Result.
func (c *Client) Request(ctx context.Context, method, path string, payload any) Result {
	return c.do(ctx, method, path, payload)
}

// Call is Request plus decoding of a successful body into T. A 2xx body
// that does not decode is reported as a failed Result.
func Call[T any](ctx context.Context, c *Client, method, path string, payload any) (T, Result) {
	var out T

	res := c.Request(ctx, method, path, payload)
	if !res.OK || len(res.Data) == 0 {
		return out, res
	}
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return out, Result{Status: res.Status, Error: "unexpected response from server"}
	}
	return out, res
}

// Source says which side served a client operation.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)
