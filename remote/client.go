// Package remote implements feed.Provider over an HTTP search API.
//
// Each resource kind is searched at GET {base}/{kind}/search. The query
// string is derived from the url tags of feed.Query, so unset filters are
// never sent. Responses are decoded with feed.DecodePageResponse and may
// carry pagination under either "pagination" or "meta".
//
// Example usage:
//
//	client, err := remote.New[listing.Listing]("https://api.example.com/v1",
//	    remote.WithRateLimit(5, 1),
//	)
//	resp, err := client.Search(ctx, q)
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/nrfta/feed-go"
)

// maxBodySize bounds the response body read from the API.
const maxBodySize = 4 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search api returned %d: %s", e.StatusCode, e.Body)
}

// Client is an HTTP search provider for items of type T.
type Client[T any] struct {
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
	header  http.Header
}

// New creates a client for the API rooted at baseURL.
func New[T any](baseURL string, opts ...Option) (*Client[T], error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", baseURL)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Client[T]{
		base:    base,
		client:  o.client,
		limiter: o.limiter,
		logger:  o.logger,
		header:  o.header,
	}, nil
}

// Endpoint returns the request URL for q.
func (c *Client[T]) Endpoint(q feed.Query) (string, error) {
	if q.Kind == "" {
		return "", errors.New("query has no kind")
	}

	values, err := query.Values(q)
	if err != nil {
		return "", errors.Wrap(err, "encode query")
	}

	u := *c.base
	u.Path = u.Path + "/" + url.PathEscape(string(q.Kind)) + "/search"
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// Search fetches one page of q.
func (c *Client[T]) Search(ctx context.Context, q feed.Query) (*feed.PageResponse[T], error) {
	endpoint, err := c.Endpoint(q)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "search %s page %d", q.Kind, q.Page)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	c.logger.Debug().
		Str("kind", string(q.Kind)).
		Int("page", q.Page).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("search request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return feed.DecodePageResponse[T](body)
}
