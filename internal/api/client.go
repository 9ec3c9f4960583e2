// Package api implements the HTTP client for the quantatel backend contract:
// quantum-job submission and polling, threat list/stats reads, collector
// triggers, and breach lookups. The backend owns all persistence; this client
// is stateless between calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/quantatel/quantatel-go/internal/errors"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 30 * time.Second

	// maxErrorBodyBytes caps how much of an error response body is carried
	// into the transport error message.
	maxErrorBodyBytes = 512
)

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	// BaseURL is the backend root, e.g. "https://quantatel.example.com".
	BaseURL string
	// Tokens supplies the bearer credential for every request. The client
	// never refreshes or stores credentials itself.
	Tokens oauth2.TokenSource
	// HTTPClient is optional; a default with a 30s timeout is used when nil.
	// Its timeout policy is the only request timeout applied.
	HTTPClient *http.Client
	// Logger is an optional structured logger.
	Logger *slog.Logger
}

// Client is the HTTP API client for the threat-intelligence backend.
type Client struct {
	baseURL string
	tokens  oauth2.TokenSource
	http    *http.Client
	logger  *slog.Logger
}

// NewClient constructs a new Client.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme: %q", u.Scheme)
	}
	if opts.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "api_client")
	}

	return &Client{
		baseURL: base,
		tokens:  opts.Tokens,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// do issues one JSON request and decodes a 2xx response body into out.
// Network failures and non-2xx statuses surface as transport errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "marshal %s %s request", method, path)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s %s request", method, path)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeTransport, "resolve bearer credential")
	}
	token.SetAuthHeader(req)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeTransport, "%s %s", method, path)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && c.logger != nil {
			c.logger.WarnContext(ctx, "close response body failed", "path", path, "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeTransport, "decode %s %s response", method, path)
	}
	return nil
}

// statusError builds a transport error from a non-2xx response, keeping a
// short body snippet for diagnostics.
func (c *Client) statusError(method, path string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	msg := fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode)
	if len(snippet) > 0 {
		msg += ": " + strings.TrimSpace(string(snippet))
	}

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NotFound(msg)
	}
	return apperrors.TransportStatus(resp.StatusCode, msg)
}
