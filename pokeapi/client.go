// Package pokeapi is a small client for the Pokémon REST API.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alphadex-cli/alphadex/internal/cache"
	"github.com/alphadex-cli/alphadex/key"
	"github.com/alphadex-cli/alphadex/log"
	"github.com/alphadex-cli/alphadex/network"
	"github.com/alphadex-cli/alphadex/where"
	"github.com/spf13/viper"
)

// Client fetches and decodes API resources.
type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Store
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithCache serves responses from store when possible and fills it on success.
func WithCache(store *cache.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  network.NewClient(60 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a client from the api.* and cache.* settings.
func FromConfig() *Client {
	opts := []Option{
		WithHTTPClient(network.NewClient(time.Duration(viper.GetInt(key.APITimeoutSeconds)) * time.Second)),
	}
	if viper.GetBool(key.CacheEnable) {
		ttl := time.Duration(viper.GetInt(key.CacheTTLHours)) * time.Hour
		opts = append(opts, WithCache(cache.New(where.Responses(), ttl)))
	}
	return NewClient(viper.GetString(key.APIBaseURL), opts...)
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListURL returns the URL of the list page starting at offset.
func (c *Client) ListURL(limit, offset int) string {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(limit))
	query.Set("offset", fmt.Sprint(offset))
	return fmt.Sprintf("%s/pokemon?%s", c.baseURL, query.Encode())
}

// PokemonURL returns the detail URL for a name or numeric id.
func (c *Client) PokemonURL(nameOrID string) string {
	return fmt.Sprintf("%s/pokemon/%s/", c.baseURL, url.PathEscape(strings.ToLower(strings.TrimSpace(nameOrID))))
}

// List fetches one page of the list endpoint.
func (c *Client) List(ctx context.Context, url string) (*ListResponse, error) {
	var page ListResponse
	if err := c.getAndDecode(ctx, url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Pokemon fetches a detail record.
func (c *Client) Pokemon(ctx context.Context, url string) (*Pokemon, error) {
	var pokemon Pokemon
	if err := c.getAndDecode(ctx, url, &pokemon); err != nil {
		return nil, err
	}
	return &pokemon, nil
}

// Species fetches a species record.
func (c *Client) Species(ctx context.Context, url string) (*Species, error) {
	var species Species
	if err := c.getAndDecode(ctx, url, &species); err != nil {
		return nil, err
	}
	return &species, nil
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	var cacheKey string
	if c.cache != nil {
		cacheKey = cache.Key(url)
		if c.cache.Read(cacheKey, target) {
			log.Debugf("cache hit %s", url)
			return nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		// keep context errors visible to callers
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrNetwork, ctxErr)
		}
		return fmt.Errorf("%w: %s", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %s", ErrNetwork, url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrParse, url, err)
	}

	if c.cache != nil {
		if err := c.cache.Write(cacheKey, target); err != nil {
			log.Warnf("cache write %s: %s", url, err)
		}
	}
	return nil
}
