// Package relay sends form payloads to the third-party email relay that
// delivers them to the Tareeqi inbox.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/form"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

// DefaultEndpoint is the relay form URL used when none is configured.
const DefaultEndpoint = "https://formspree.io/f/tareeqi"

// maxResponseBody caps how much of a relay response is read.
const maxResponseBody = 64 << 10

// Client posts JSON payloads to one relay endpoint. It is safe for
// concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger logging.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger.WithComponent("relay")
		}
	}
}

// NewClient creates a client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// response is the subset of the relay reply we understand.
type response struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Send posts p as JSON. Any 2xx status is success. There is no retry and
// no client timeout; cancellation comes from ctx.
func (c *Client) Send(ctx context.Context, p form.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeInternalError, "encode payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeRelayUnreachable, "invalid relay request", err).
			WithContext("endpoint", c.endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	perf := logging.StartOperation(c.logger, "relay.send")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		perf.EndWithError(ctx, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.NewNetworkError(errors.ErrCodeRelayUnreachable, "relay unreachable", err).
			WithContext("endpoint", c.endpoint)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if readErr != nil {
		c.logger.Debug(ctx, "failed to read relay response",
			"status", resp.StatusCode, "read_bytes", len(raw), "error", readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		perf.End(ctx, "status", resp.StatusCode, "kind", string(p.Kind()))
		return nil
	}

	detail := rejectionDetail(raw)
	msg := fmt.Sprintf("relay responded %d", resp.StatusCode)
	if detail != "" {
		msg += ": " + detail
	}
	rerr := errors.NewNetworkError(errors.ErrCodeRelayRejected, msg, nil).
		WithContext("status", resp.StatusCode).
		WithContext("endpoint", c.endpoint)
	perf.EndWithError(ctx, rerr)
	return rerr
}

func rejectionDetail(raw []byte) string {
	var r response
	if len(raw) == 0 || json.Unmarshal(raw, &r) != nil {
		return ""
	}
	if r.Error != "" {
		return r.Error
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

var _ form.Sender = (*Client)(nil)
