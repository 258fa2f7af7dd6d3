// Package gamebackend talks to the game's own backend: the source of market
// listings, countries, plant levels and the results board.
package gamebackend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	pathMarket         = "/resources/show_prices.json"
	pathCountries      = "/countries.json"
	pathPlantLevels    = "/plant_levels.json"
	pathTradeTurnover  = "/countries/show_trade_turnover.json"
	pathTradeLevels    = "/countries/trade_levels_and_thresholds.json"
	pathScreenBundle   = "/game_parameters/screen_bundle"
	pathResultsDisplay = "/game_parameters/change_results_display"
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RPS        float64
	CacheTTL   time.Duration
	MaxRetries uint64
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
	maxRetries uint64
}

func NewClient(cfg Config) *Client {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: cfg.MaxRetries,
	}
	// A non-positive TTL disables caching.
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	return c
}

// Invalidate drops every cached response.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(target); ok {
			return sonic.Unmarshal(cached.([]byte), out)
		}
	}

	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %s: %w", path, err.Error(), constants.ErrUpstream)
	}

	if c.cache != nil {
		c.cache.SetDefault(target, body)
	}
	return nil
}

func (c *Client) patch(ctx context.Context, path string, payload interface{}) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if _, err := c.do(ctx, http.MethodPatch, c.baseURL+path, body); err != nil {
		return err
	}

	c.Invalidate()
	return nil
}

// do performs the request with rate limiting and retries. Transport errors
// and 5xx answers are retried, anything else is final.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var body []byte

	err := backoff.Retry(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(err)
			}

			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}

			req, err := http.NewRequestWithContext(ctx, method, target, reader)
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Header.Set("Accept", "application/json")
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("http.Do: %w", err)
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}
			if resp.StatusCode >= http.StatusBadRequest {
				return backoff.Permanent(fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status))
			}

			body = data
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
			ctx,
		),
	)
	if err != nil {
		logger.Warnf(ctx, "game backend %s %s: %s", method, target, err.Error())
		return nil, fmt.Errorf("%s %s: %s: %w", method, target, err.Error(), constants.ErrUpstream)
	}

	return body, nil
}
