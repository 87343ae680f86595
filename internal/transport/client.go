// Package transport provides the HTTP client used to talk to the Wikidata
// Query Service. It applies the User-Agent the Wikimedia API policy asks
// bots to send and retries rate-limited or failed requests with capped
// exponential backoff.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
)

// DefaultUserAgent identifies this tool to the query service, per the
// Wikimedia User-Agent policy.
const DefaultUserAgent = "pleiades-wikidata/1.0 (https://github.com/isawnyu/pleiades_wikidata)"

// Client provides HTTP access with retry and backoff.
type Client struct {
	http       *http.Client
	userAgent  string
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxRetries sets how many times a retryable request is reattempted.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the base backoff between attempts.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// New creates a transport client with default settings.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent:  DefaultUserAgent,
		maxRetries: constants.MaxRetries,
		backoff:    constants.RetryBackoff,
		maxBackoff: constants.MaxRetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request with the given Accept header.
func (c *Client) Get(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", accept)
		return req, nil
	})
}

// PostForm performs a form-encoded POST request with the given Accept
// header. The body is rebuilt for each retry attempt.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, accept string) (*http.Response, error) {
	encoded := form.Encode()
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", accept)
		return req, nil
	})
}

// do runs a request, retrying on 429 and 5xx responses and on transient
// transport failures.
func (c *Client) do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.wait(attempt, lastErr)
			logging.Ctx(ctx).Debug().
				Int("attempt", attempt).
				Dur("backoff", wait).
				Msg("Retrying request")
			select {
			case <-ctx.Done():
				return nil, wrapContextErr(ctx.Err())
			case <-time.After(wait):
			}
		}

		req, err := build()
		if err != nil {
			return nil, errors.WrapValidation("request", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, wrapContextErr(ctx.Err())
			}
			lastErr = errors.WrapAPI(req.URL.Host, 0, err)
			continue
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		lastErr = statusError(resp)
	}

	return nil, lastErr
}

// wait computes the backoff before an attempt, honoring a Retry-After value
// from a rate-limit response when one was given.
func (c *Client) wait(attempt int, lastErr error) time.Duration {
	var apiErr *errors.APIError
	if errors.As(lastErr, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(apiErr.Message); err == nil && secs > 0 {
			d := time.Duration(secs) * time.Second
			if d <= c.maxBackoff {
				return d
			}
			return c.maxBackoff
		}
	}

	wait := c.backoff << (attempt - 1)
	if wait > c.maxBackoff {
		wait = c.maxBackoff
	}
	return wait
}

// statusError drains the response and converts it to an APIError. For 429
// responses the Retry-After header is carried in the message so wait can
// honor it.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes))
	_ = resp.Body.Close()

	message := strings.TrimSpace(string(body))
	if resp.StatusCode == http.StatusTooManyRequests {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			message = ra
		}
	}

	return errors.NewAPIError(resp.Request.URL.Host, resp.StatusCode, message)
}

// ReadResponse reads a successful response body, converting error statuses
// to typed errors.
func ReadResponse(resp *http.Response) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes))
		return nil, errors.NewAPIError(resp.Request.URL.Host, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	return body, nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func wrapContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.ErrTimeout
	}
	return errors.ErrCanceled
}
