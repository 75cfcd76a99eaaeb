// Package client calls the comeback API's generate endpoint with fixed-delay retries.
// Generate never fails: after the last attempt it returns Fallback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	DefaultRetries = 2
	DefaultDelay   = time.Second

	generatePath = "/api/generate"
	maxErrorBody = 512
)

// Fallback is returned once every attempt has failed
var Fallback = []string{
	"Could not reach the comeback service.",
	"Check your network connection and try again.",
	"The service may be busy; please retry shortly.",
}

// Sleeper waits between attempts; it returns early with an error when ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Logger receives one line per failed attempt
type Logger func(format string, args ...any)

type Client struct {
	baseURL    string
	retries    int
	delay      time.Duration
	httpClient *http.Client
	sleep      Sleeper
	logf       Logger
}

type Option func(*Client)

// WithRetries sets how many extra attempts follow the first one
func WithRetries(retries int) Option {
	return func(c *Client) { c.retries = lo.Max([]int{retries, 0}) }
}

// WithDelay sets the fixed wait between attempts
func WithDelay(delay time.Duration) Option {
	return func(c *Client) { c.delay = delay }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithSleeper(sleep Sleeper) Option {
	return func(c *Client) { c.sleep = sleep }
}

func WithLogger(logf Logger) Option {
	return func(c *Client) { c.logf = logf }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		retries:    DefaultRetries,
		delay:      DefaultDelay,
		httpClient: http.DefaultClient,
		sleep:      SleepContext,
		logf:       func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SleepContext waits for d or until ctx is done
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type generateRequest struct {
	OpponentText string `json:"opponentText"`
	Intensity    int    `json:"intensity"`
}

type generateResponse struct {
	Responses []string `json:"responses"`
	Error     string   `json:"error"`
}

// Generate asks the server for three comebacks.
// Attempts run one after another, retries+1 at most, with a fixed delay between them.
func (c *Client) Generate(ctx context.Context, opponentText string, intensity int) []string {
	for attempt := 0; attempt <= c.retries; attempt++ {
		responses, err := c.attempt(ctx, opponentText, intensity)
		if err == nil {
			return responses
		}
		c.logf("generate attempt %d/%d failed: %v", attempt+1, c.retries+1, err)

		if attempt < c.retries {
			if err := c.sleep(ctx, c.delay); err != nil {
				break
			}
		}
	}
	return append([]string(nil), Fallback...)
}

func (c *Client) attempt(ctx context.Context, opponentText string, intensity int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "request cancelled")
	}

	body, err := json.Marshal(generateRequest{OpponentText: opponentText, Intensity: intensity})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal generate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to init generate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call generate endpoint")
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read generate response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("generate endpoint returned status %d: %s", resp.StatusCode, truncate(respBytes))
	}

	var out generateResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal generate response: %s", truncate(respBytes))
	}
	if out.Error != "" {
		return nil, errors.Errorf("generate endpoint returned error: %s", out.Error)
	}

	return lo.If(out.Responses != nil, out.Responses).Else([]string{}), nil
}

func truncate(b []byte) string {
	if len(b) <= maxErrorBody {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:maxErrorBody])
}
