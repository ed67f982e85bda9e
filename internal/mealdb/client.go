// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mealdb

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"

	"github.com/staranto/mealctl/internal/cache"
)

// DefaultBaseURL is the public TheMealDB v1 API using the shared test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const defaultTimeout = 15 * time.Second

// Client is the data access service. Every accessor consults the cache
// before the network and returns an empty (never nil) slice alongside any
// error, so callers that only look at the value see "no results".
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the pooled cleanhttp client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCache sets the response cache. Without one, every call goes upstream.
func WithCache(rc *cache.Cache) ClientOption {
	return func(c *Client) { c.cache = rc }
}

func NewClient(opts ...ClientOption) *Client {
	h := cleanhttp.DefaultPooledClient()
	h.Timeout = defaultTimeout

	c := &Client{
		baseURL: DefaultBaseURL,
		http:    h,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cache returns the response cache, which may be nil.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// SearchByName returns meals whose name matches query. Callers are expected
// to skip blank queries.
func (c *Client) SearchByName(ctx context.Context, query string) ([]Meal, error) {
	return c.meals(ctx, "search", c.endpoint("search.php", url.Values{"s": {query}}))
}

// LookupByID returns the full record for id, or ErrNotFound.
func (c *Client) LookupByID(ctx context.Context, id string) (*Meal, error) {
	u := c.endpoint("lookup.php", url.Values{"i": {id}})
	meals, err := c.meals(ctx, "lookup", u)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		err := &UpstreamError{Op: "lookup", URL: u, Kind: ErrNotFound, Err: fmt.Errorf("meal %q", id)}
		log.WithField("url", u).Warn(err.Error())
		return nil, err
	}
	return &meals[0], nil
}

// Categories returns every recipe category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	u := c.endpoint("categories.php", nil)
	items, err := c.collection(ctx, "categories", u, "categories")
	out := make([]Category, 0, len(items))
	for _, r := range items {
		out = append(out, decodeCategory(r))
	}
	return out, err
}

// Areas returns the names of every cuisine area.
func (c *Client) Areas(ctx context.Context) ([]string, error) {
	u := c.endpoint("list.php", url.Values{"a": {"list"}})
	items, err := c.collection(ctx, "areas", u, "meals")
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.Get("strArea").String())
	}
	return out, err
}

// FilterByCategory returns the summary meals in category.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]Meal, error) {
	return c.meals(ctx, "filter-category", c.endpoint("filter.php", url.Values{"c": {category}}))
}

// FilterByArea returns the summary meals from area.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]Meal, error) {
	return c.meals(ctx, "filter-area", c.endpoint("filter.php", url.Values{"a": {area}}))
}

// endpoint builds the request URL. It doubles as the cache key, so the
// parameters are always encoded.
func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (c *Client) meals(ctx context.Context, op, u string) ([]Meal, error) {
	items, err := c.collection(ctx, op, u, "meals")
	out := make([]Meal, 0, len(items))
	for _, r := range items {
		out = append(out, decodeMeal(r))
	}
	return out, err
}

// collection fetches u and returns the array under field. An absent or null
// field is an empty collection.
func (c *Client) collection(ctx context.Context, op, u, field string) ([]gjson.Result, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, u); ok {
			if res, err := envelope(op, u, field, body); err == nil {
				return res, nil
			}
			log.WithField("url", u).Debug("cached response has the wrong shape, refetching")
		}
	}

	body, err := c.fetch(ctx, op, u)
	if err != nil {
		return nil, err
	}

	items, err := envelope(op, u, field, body)
	if err != nil {
		log.WithField("url", u).Warn(err.Error())
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, u, body); err != nil {
			log.WithError(err).Warn("failed to write response to cache")
		}
	}
	return items, nil
}

// envelope extracts the list under field from body.
func envelope(op, u, field string, body []byte) ([]gjson.Result, error) {
	res := gjson.GetBytes(body, field)
	switch {
	case !res.Exists(), res.Type == gjson.Null:
		return nil, nil
	case !res.IsArray():
		return nil, &UpstreamError{Op: op, URL: u, Kind: ErrMalformed, Err: fmt.Errorf("%q is not a list", field)}
	}
	return res.Array(), nil
}

// fetch GETs u and returns the body when it is a successful JSON response.
func (c *Client) fetch(ctx context.Context, op, u string) ([]byte, error) {
	fail := func(kind, cause error) ([]byte, error) {
		err := &UpstreamError{Op: op, URL: u, Kind: kind, Err: cause}
		log.WithField("url", u).Warn(err.Error())
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fail(ErrTransport, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(ErrTransport, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return fail(ErrTransport, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(ErrTransport, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body := doc.Bytes()
	if !gjson.ValidBytes(body) {
		return fail(ErrMalformed, fmt.Errorf("response is not valid JSON"))
	}
	return body, nil
}
