package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ListingClient fetches the recipes belonging to a category.
type ListingClient interface {
	FetchByCategory(ctx context.Context, category string) ([]RecipeSummary, error)
}

// DetailClient fetches a single recipe by identifier. The boolean result is
// false when the API has no matching record.
type DetailClient interface {
	FetchByID(ctx context.Context, id string) (RecipeDetail, bool, error)
}

// RecipeSource is implemented by *Client and can be used for testing.
type RecipeSource interface {
	ListingClient
	DetailClient
}

// Ensure Client implements RecipeSource at compile time.
var _ RecipeSource = (*Client)(nil)

const (
	// DefaultBaseURL is the public TheMealDB v1 API root.
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

	defaultUserAgent = "crumb/0.1"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20

	opList   = "list recipes"
	opLookup = "lookup recipe"
)

// Client talks to the recipe HTTP API. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       logrus.FieldLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL. A blank baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		log:       discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client resolves endpoints against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchByCategory lists the recipes in category in server order. A category
// with no matches yields an empty slice and a nil error.
func (c *Client) FetchByCategory(ctx context.Context, category string) ([]RecipeSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}

	page, err := c.fetchMeals(ctx, opList, "filter.php", url.Values{"c": {category}})
	if err != nil {
		return nil, err
	}

	summaries := make([]RecipeSummary, 0, len(page.meals))
	for i, raw := range page.meals {
		var wire wireSummary
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, page.decodeError(fmt.Errorf("meal %d: %w", i, err))
		}
		summary, err := wire.toSummary()
		if err != nil {
			return nil, page.decodeError(fmt.Errorf("meal %d: %w", i, err))
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// FetchByID looks up one recipe. When the API returns no record the result is
// (RecipeDetail{}, false, nil).
func (c *Client) FetchByID(ctx context.Context, id string) (RecipeDetail, bool, error) {
	if c == nil {
		return RecipeDetail{}, false, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return RecipeDetail{}, false, ErrEmptyID
	}

	page, err := c.fetchMeals(ctx, opLookup, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return RecipeDetail{}, false, err
	}
	if len(page.meals) == 0 {
		return RecipeDetail{}, false, nil
	}
	if len(page.meals) > 1 {
		c.log.WithFields(logrus.Fields{"url": page.url, "count": len(page.meals)}).
			Warn("lookup returned more than one meal, using the first")
	}

	var wire wireMeal
	if err := json.Unmarshal(page.meals[0], &wire); err != nil {
		return RecipeDetail{}, false, page.decodeError(err)
	}
	detail, err := wire.toDetail()
	if err != nil {
		return RecipeDetail{}, false, page.decodeError(err)
	}
	return detail, true, nil
}

// mealsPage is a decoded envelope with its meals left raw.
type mealsPage struct {
	op    string
	url   string
	meals []json.RawMessage
}

func (p mealsPage) decodeError(err error) error {
	return &DecodeError{Op: p.op, URL: p.url, Err: err}
}

func (c *Client) fetchMeals(ctx context.Context, op, endpoint string, query url.Values) (mealsPage, error) {
	reqURL := c.baseURL.JoinPath(endpoint)
	reqURL.RawQuery = query.Encode()
	page := mealsPage{op: op, url: reqURL.String()}

	body, err := c.get(ctx, op, page.url)
	if err != nil {
		return mealsPage{}, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return mealsPage{}, page.decodeError(err)
	}
	if len(env.Meals) == 0 {
		return mealsPage{}, page.decodeError(errors.New(`missing "meals" field`))
	}
	if string(env.Meals) == "null" {
		return page, nil
	}
	if err := json.Unmarshal(env.Meals, &page.meals); err != nil {
		return mealsPage{}, page.decodeError(fmt.Errorf(`"meals": %w`, err))
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, op, target string) ([]byte, error) {
	logger := c.log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"op":         op,
		"url":        target,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: target, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Warn("request failed")
		return nil, &NetworkError{Op: op, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	logger = logger.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("unexpected status")
		return nil, &NetworkError{Op: op, URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		logger.WithError(err).Warn("read response failed")
		return nil, &NetworkError{Op: op, URL: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(body) > maxResponseBytes {
		logger.Warn("response too large")
		return nil, &DecodeError{Op: op, URL: target, Err: fmt.Errorf("response exceeds %d MiB", maxResponseBytes>>20)}
	}
	logger.WithField("bytes", len(body)).Debug("request complete")
	return body, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
