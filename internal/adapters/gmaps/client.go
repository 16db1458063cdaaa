package gmaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/ports"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client implements the DirectionsProvider and PlaceProvider ports using
// the Google Maps web services.
//
// It coordinates:
//   - Response caching with per-tier TTLs
//   - Fallback route synthesis when no driving route exists
//   - Retry/backoff on the place-lookup path
//   - Deduplication of concurrent identical place lookups
//
// The client is safe for concurrent use.
type Client struct {
	session    *http.Client
	noRedirect *http.Client
	apiKey     string
	baseURL    string
	cache      ports.ResponseCache
	lookups    singleflight.Group
}

func NewClient(apiKey string, baseURL string, respCache ports.ResponseCache, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid maps base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		session: &http.Client{Timeout: timeout},
		// The photo endpoint answers with a redirect whose Location header
		// is the result; never follow it.
		noRedirect: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		apiKey:  apiKey,
		baseURL: baseURL,
		cache:   respCache,
	}

	return client, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.doWith(c.session, req)
}

func (c *Client) doWith(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx
// responses) using exponential backoff while respecting context
// cancellation. The directions path never goes through here; its caller
// decides whether a day is worth abandoning.
func (c *Client) doWithRetry(
	ctx context.Context,
	client *http.Client,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.doWith(client, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

// formatCoord renders a request coordinate at the same precision the
// cache key uses, so a request and its key can never disagree.
func formatCoord(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// providerErr maps an exhausted HTTP-level failure onto the provider
// error taxonomy.
func providerErr(op string, err error) error {
	var he *httpStatusError
	if errors.As(err, &he) {
		return &ports.ProviderError{
			Operation: op,
			Status:    fmt.Sprintf("HTTP_%d", he.Code),
			Message:   he.Body,
		}
	}

	// A url.Error prints the full request URL, api key included. Only the
	// transport cause may reach logs and responses.
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s request failed: %w", op, ue.Err)
	}

	return fmt.Errorf("%s request failed: %w", op, err)
}

// cacheSet stores an encodable value under key. Caching is best-effort
// everywhere; encode failures are logged, never propagated.
func (c *Client) cacheSet(key string, v any, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("gmaps: cache encode failed key=%q err=%v", key, err)
		return
	}
	c.cache.Set(key, payload, ttl)
}
