// Package api is the HTTP client for the FluffyJobs backend. It attaches
// the current access token to every request and maps authorization
// failures onto the session-expiry path; it deliberately does not attempt
// token refresh, so a session ends when its access token does.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource yields the current access token, or "" when signed out.
type TokenSource func() string

type Client struct {
	http    tls_client.HttpClient
	baseURL string
	token   TokenSource
	logger  zerolog.Logger

	// onUnauthorized runs when an authenticated call comes back 401.
	// The session container registers its force-logout here.
	onUnauthorized func()
}

type Options struct {
	BaseURL        string
	Token          TokenSource
	OnUnauthorized func()
	Timeout        time.Duration
	Logger         zerolog.Logger
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:           httpClient,
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		token:          opts.Token,
		logger:         opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

// SetOnUnauthorized installs the 401 hook after construction. The session
// container needs the client to exist before it can register itself.
func (c *Client) SetOnUnauthorized(hook func()) {
	c.onUnauthorized = hook
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// doJSON performs a request and decodes the JSON response into out
// (skipped when out is nil). authed marks endpoints where a 401 means the
// session expired rather than bad credentials.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	target := c.endpoint(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := fhttp.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode == fhttp.StatusUnauthorized {
		if !authed {
			return ErrInvalidCredentials
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrSessionExpired
	}
	if resp.StatusCode == fhttp.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", ErrRequestFailed, method, path, err)
	}
	return nil
}

// errorMessage pulls the backend's {"error": ...} or {"message": ...} out
// of a failed response body, best effort.
func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	for _, msg := range []string{payload.Error, payload.Message, payload.Detail} {
		if strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return ""
}
