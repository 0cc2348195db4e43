// Package provider adapts the external places-search API to domain suggestions.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

const (
	DefaultLimit   = 25
	DefaultTimeout = 10 * time.Second

	placesPath   = "/data/places"
	maxBodyBytes = 2 << 20
)

// ErrDisabled is reported when no API key is configured.
var ErrDisabled = errors.New("places provider disabled")

// Config configures the places API client
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Limit   int
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Outcome is the result of one provider search. Results is never nil; Err is
// set on any failure, in which case Results is empty.
type Outcome struct {
	Results []domain.Suggestion
	Intent  domain.Intent
	Err     error
}

// Client talks to the places API
type Client struct {
	baseURL string
	apiKey  string
	limit   int
	timeout time.Duration
	http    *http.Client
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limit:   cfg.Limit,
		timeout: cfg.Timeout,
		http:    hc,
	}
}

// Enabled reports whether searches will reach the API
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != "" && c.baseURL != ""
}

// SearchExternal detects the query intent and searches the places API with
// the cleaned query. It never panics and never fails the caller: every
// problem is reported through Outcome.Err.
func (c *Client) SearchExternal(ctx context.Context, query string) (out Outcome) {
	out.Intent = domain.DetectIntent(query)
	out.Results = []domain.Suggestion{}

	defer func() {
		if r := recover(); r != nil {
			out.Results = []domain.Suggestion{}
			out.Err = fmt.Errorf("places search panicked: %v", r)
		}
	}()

	if !c.Enabled() {
		out.Err = ErrDisabled
		return out
	}

	records, err := c.fetch(ctx, out.Intent)
	if err != nil {
		out.Err = err
		return out
	}

	for _, rec := range records {
		s, ok := rec.suggestion()
		if !ok {
			continue
		}
		if len(out.Intent.Types) > 0 && !out.Intent.HasType(s.Type) {
			continue
		}
		out.Results = append(out.Results, s)
	}
	return out
}

func (c *Client) fetch(ctx context.Context, intent domain.Intent) ([]placeRecord, error) {
	const op = "provider.fetch"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("textQuery", intent.CleanQuery)
	params.Set("limit", strconv.Itoa(c.limit))
	for _, t := range intent.Types {
		params.Add("type", string(t))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+placesPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var body placesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return body.Data, nil
}
