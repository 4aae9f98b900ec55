package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/trainerdash/internal/telemetry/metrics"
	"github.com/2beens/trainerdash/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// https://developers.strava.com/docs/reference/#api-Activities-getLoggedInAthleteActivities

const (
	DefaultBaseURL     = "https://www.strava.com/api/v3"
	DefaultPageSize    = 100
	DefaultPageDelay   = 250 * time.Millisecond
	DefaultMaxAttempts = 5
	DefaultHTTPTimeout = 30 * time.Second

	maxErrBodyLen = 512
)

type ClientConfig struct {
	BaseURL string
	// PageSize is capped at 100, the API maximum.
	PageSize    int
	PageDelay   time.Duration
	MaxAttempts int
}

// Client is a rate limit aware Strava API client.
// Pages are always requested sequentially; a page shorter than the page size ends the listing.
type Client struct {
	baseURL        string
	pageSize       int
	pageDelay      time.Duration
	maxAttempts    int
	httpClient     *http.Client
	metricsManager *metrics.Manager

	// Sleep waits for the given duration or until ctx is done.
	// Can be swapped in tests to avoid real waiting.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig, httpClient *http.Client, metricsManager *metrics.Manager) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 || cfg.PageSize > DefaultPageSize {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PageDelay < 0 {
		cfg.PageDelay = 0
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		pageSize:       cfg.PageSize,
		pageDelay:      cfg.PageDelay,
		maxAttempts:    cfg.MaxAttempts,
		httpClient:     httpClient,
		metricsManager: metricsManager,
		Sleep:          SleepContext,
	}
}

// FetchActivitiesSince drains all activities started at or after the given time.
// The result is fully accumulated in memory before returning.
func (c *Client) FetchActivitiesSince(ctx context.Context, accessToken string, after time.Time) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.fetchActivitiesSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("after", after.Unix()))

	var activities []Activity
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("after", strconv.FormatInt(after.Unix(), 10))
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(c.pageSize))

		var batch []Activity
		if err := c.getJSON(ctx, accessToken, "/athlete/activities", query, &batch); err != nil {
			return nil, fmt.Errorf("fetch activities page %d: %w", page, err)
		}

		activities = append(activities, batch...)
		log.Tracef("strava: activities page %d: %d items (total %d)", page, len(batch), len(activities))

		if len(batch) < c.pageSize {
			break
		}

		if err := c.Sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("activities", len(activities)))
	if c.metricsManager != nil {
		c.metricsManager.CounterFetchedActivities.Add(float64(len(activities)))
	}

	return activities, nil
}

// GetAthlete returns the profile of the athlete owning the access token.
func (c *Client) GetAthlete(ctx context.Context, accessToken string) (_ Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.getAthlete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profile := Profile{}
	if err := c.getJSON(ctx, accessToken, "/athlete", nil, &profile); err != nil {
		return nil, fmt.Errorf("get athlete: %w", err)
	}
	return profile, nil
}

func (c *Client) GetAthleteStats(ctx context.Context, accessToken string, athleteID int64) (_ *AthleteStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strava.client.getAthleteStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("athlete.id", athleteID))

	stats := &AthleteStats{}
	path := fmt.Sprintf("/athletes/%d/stats", athleteID)
	if err := c.getJSON(ctx, accessToken, path, nil, stats); err != nil {
		return nil, fmt.Errorf("get athlete stats: %w", err)
	}
	return stats, nil
}

func (c *Client) getJSON(ctx context.Context, accessToken, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.getWithRetry(ctx, accessToken, endpoint)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) getWithRetry(ctx context.Context, accessToken, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		body, err := c.get(ctx, accessToken, endpoint)
		if err == nil {
			return body, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}

		lastErr = err
		if attempt == c.maxAttempts-1 {
			break
		}

		wait := backoff(err, attempt)
		log.Warnf("strava: attempt %d/%d for [%s] failed: %s; waiting %s", attempt+1, c.maxAttempts, endpoint, err, wait)
		c.observeRetry(err)

		if err := c.Sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, c.maxAttempts, lastErr)
}

func (c *Client) get(ctx context.Context, accessToken, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return nil, &ServerError{StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, &authError{statusCode: resp.StatusCode}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyLen))
		return nil, &UnexpectedResponseError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
}

func (c *Client) observeRetry(err error) {
	if c.metricsManager == nil {
		return
	}
	reason := "server_error"
	if _, ok := err.(*RateLimitError); ok {
		reason = "rate_limited"
	}
	c.metricsManager.CounterUpstreamRetries.WithLabelValues(reason).Inc()
}

// backoff honors Retry-After when present, otherwise waits 2^attempt seconds.
func backoff(err error, attempt int) time.Duration {
	if rle, ok := err.(*RateLimitError); ok && rle.RetryAfter > 0 {
		return rle.RetryAfter
	}
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
