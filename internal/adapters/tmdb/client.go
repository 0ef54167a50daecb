// Package tmdb is the metadata provider client used for search, details and trending titles
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"cinebot/internal/core/media"
	"cinebot/internal/core/normalize"
	"cinebot/internal/platform/config"
	perr "cinebot/internal/platform/errors"
	"cinebot/internal/platform/logger"
)

const (
	baseURLDefault  = "https://api.themoviedb.org/3"
	defaultTimeout  = 8 * time.Second
	defaultRPS      = 20
	defaultBurst    = 10
	defaultCache    = 512
	defaultCacheTTL = 30 * time.Minute
	maxBody         = 2 << 20
)

// Options configures the Client
type Options struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration

	// RPS and Burst shape the outbound request rate
	RPS   float64
	Burst int

	// CacheSize entries of details and searches are kept for CacheTTL
	CacheSize int
	CacheTTL  time.Duration
}

// OptionsFromConfig reads TMDB_* settings, the api key is required
func OptionsFromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("TMDB_")
	return Options{
		BaseURL:   c.MayString("BASE_URL", baseURLDefault),
		APIKey:    c.MustString("API_KEY"),
		Language:  c.MayString("LANGUAGE", "en-US"),
		Timeout:   cfg.MayDuration("BOT_PROVIDER_TIMEOUT", defaultTimeout),
		RPS:       c.MayFloat64("RPS", defaultRPS),
		Burst:     c.MayInt("BURST", defaultBurst),
		CacheSize: c.MayInt("CACHE_SIZE", defaultCache),
		CacheTTL:  c.MayDuration("CACHE_TTL", defaultCacheTTL),
	}
}

// Client talks to the provider
// failures are not retried, callers get one answer per call
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger

	details  *expirable.LRU[media.Ref, media.Details]
	searches *expirable.LRU[string, media.SearchResult]
}

// NewClient creates a Client with defaults for every zero option
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	if o.CacheSize <= 0 {
		o.CacheSize = defaultCache
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaultCacheTTL
	}
	return &Client{
		http:     &http.Client{Timeout: o.Timeout},
		opts:     o,
		limiter:  rate.NewLimiter(rate.Limit(o.RPS), o.Burst),
		log:      *logger.Named("tmdb"),
		details:  expirable.NewLRU[media.Ref, media.Details](o.CacheSize, nil, o.CacheTTL),
		searches: expirable.NewLRU[string, media.SearchResult](o.CacheSize, nil, o.CacheTTL),
	}
}

// get issues one GET and decodes a 2xx json body into out
// transport failures and unexpected statuses are Unavailable, 404 is NotFound
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "tmdb rate limiter")
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.opts.APIKey)
	if c.opts.Language != "" {
		q.Set("language", c.opts.Language)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "tmdb new request failed")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(redact(err), perr.ErrorCodeUnavailable, "tmdb request failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("tmdb close body failed")
		}
	}()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("tmdb http response")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return perr.NotFoundf("tmdb %s not found", path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return perr.Newf(perr.ErrorCodeUnavailable, "tmdb unexpected status %d body %s", resp.StatusCode, string(body))
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "tmdb read body failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "tmdb decode failed")
	}
	return nil
}

// redact strips the request url, which carries the api key, from transport errors
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

// Search returns the first multi search hit for query
// media.ErrNoResults and media.ErrNotMedia are answers, anything else is a failure
func (c *Client) Search(ctx context.Context, query string) (media.SearchResult, error) {
	key := normalize.Key(query)
	if key == "" {
		return media.SearchResult{}, media.ErrNoResults
	}
	if hit, ok := c.searches.Get(key); ok {
		return hit, nil
	}

	var page searchPage
	q := url.Values{"query": {query}, "include_adult": {"false"}}
	if err := c.get(ctx, "/search/multi", q, &page); err != nil {
		return media.SearchResult{}, err
	}
	if len(page.Results) == 0 {
		return media.SearchResult{}, media.ErrNoResults
	}
	res, ok := page.Results[0].result()
	if !ok {
		return media.SearchResult{}, media.ErrNotMedia
	}
	c.searches.Add(key, res)
	return res, nil
}

// Details fetches the enrichment for ref with its videos in one call
func (c *Client) Details(ctx context.Context, ref media.Ref) (media.Details, error) {
	if !ref.Valid() {
		return media.Details{}, perr.InvalidArgf("tmdb: bad ref %s", ref)
	}
	if d, ok := c.details.Get(ref); ok {
		return d, nil
	}

	var body detailsBody
	path := fmt.Sprintf("/%s/%d", kind(ref.Type), ref.ID)
	if err := c.get(ctx, path, url.Values{"append_to_response": {"videos"}}, &body); err != nil {
		return media.Details{}, err
	}
	d := body.details(ref)
	c.details.Add(ref, d)
	return d, nil
}

// Trending returns this week's trending movies and series
func (c *Client) Trending(ctx context.Context) ([]media.SearchResult, error) {
	var page searchPage
	if err := c.get(ctx, "/trending/all/week", nil, &page); err != nil {
		return nil, err
	}
	out := make([]media.SearchResult, 0, len(page.Results))
	for _, r := range page.Results {
		if res, ok := r.result(); ok {
			out = append(out, res)
		}
	}
	return out, nil
}

func kind(t media.Type) string {
	if t == media.Series {
		return "tv"
	}
	return "movie"
}
