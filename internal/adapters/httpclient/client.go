package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ngnfx/internal/domain"

	"golang.org/x/time/rate"
)

// jsonClient performs throttled GET requests against a single vendor.
type jsonClient struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

func (c *jsonClient) getJSON(ctx context.Context, path string, query url.Values, headers map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		// Wait fails early when the next token lies past the deadline, without wrapping ctx.Err().
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			return fmt.Errorf("rate limiter wait: %w: %w", context.DeadlineExceeded, err)
		}
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Options are shared by every vendor adapter.
type Options struct {
	HTTPClient *http.Client
	BaseURL    string
	MaxRPS     float64
}

func newJSONClient(opts Options) *jsonClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	limit := rate.Inf
	if opts.MaxRPS > 0 {
		limit = rate.Limit(opts.MaxRPS)
	}
	return &jsonClient{http: httpClient, baseURL: opts.BaseURL, limiter: rate.NewLimiter(limit, 1)}
}

func successRate(source string, value float64) (domain.ExternalRate, error) {
	if !domain.IsPositiveFinite(value) {
		return domain.ExternalRate{}, fmt.Errorf("%w: %s returned invalid rate %v", domain.ErrSourceUnavailable, source, value)
	}
	return domain.ExternalRate{
		Source:     source,
		USDNGNRate: value,
		Timestamp:  time.Now(),
		Status:     domain.SourceSuccess,
	}, nil
}

func sourceError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, source, err)
}
