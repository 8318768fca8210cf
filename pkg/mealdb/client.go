package mealdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/mealdb/pkg/httpclient"
)

// DefaultBaseURL is the public TheMealDB v1 API using the shared test key.
const DefaultBaseURL = "https://themealdb.com/api/json/v1/1/"

const (
	endpointSearch     = "search.php"
	endpointLookup     = "lookup.php"
	endpointRandom     = "random.php"
	endpointCategories = "categories.php"
	endpointFilter     = "filter.php"
	endpointList       = "list.php"

	fieldMeals      = "meals"
	fieldCategories = "categories"

	listToken = "list"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client issues single GET requests against the recipe API. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    httpclient.Client
	log     Logger
}

// New builds a Client. A nil http client is replaced by a resty-backed one
// honouring opts.Timeout and opts.UserAgent.
func New(opts Options, client httpclient.Client, log Logger) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.Options{
			Timeout:   opts.Timeout,
			UserAgent: opts.UserAgent,
		})
	}
	return &Client{baseURL: base, http: client, log: ensureLogger(log)}
}

// BaseURL returns the normalised API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// SearchByName returns every meal whose name matches name.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Meal, error) {
	return list[Meal](ctx, c, endpointSearch, url.Values{"s": {name}}, fieldMeals)
}

// SearchByLetter returns every meal whose name starts with letter.
func (c *Client) SearchByLetter(ctx context.Context, letter string) ([]Meal, error) {
	return list[Meal](ctx, c, endpointSearch, url.Values{"f": {letter}}, fieldMeals)
}

// GetByID looks up a single meal.
func (c *Client) GetByID(ctx context.Context, id int) (*Meal, error) {
	meals, err := list[Meal](ctx, c, endpointLookup, url.Values{"i": {strconv.Itoa(id)}}, fieldMeals)
	return first(meals, err)
}

// GetRandom returns one random meal.
func (c *Client) GetRandom(ctx context.Context) (*Meal, error) {
	meals, err := list[Meal](ctx, c, endpointRandom, nil, fieldMeals)
	return first(meals, err)
}

// ListCategories returns the full category records.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	return list[Category](ctx, c, endpointCategories, nil, fieldCategories)
}

// FilterByIngredient returns summaries of meals using the main ingredient.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]MealSummary, error) {
	return list[MealSummary](ctx, c, endpointFilter, url.Values{"i": {ingredient}}, fieldMeals)
}

// FilterByArea returns summaries of meals from area.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]MealSummary, error) {
	return list[MealSummary](ctx, c, endpointFilter, url.Values{"a": {area}}, fieldMeals)
}

// FilterByCategory returns summaries of meals in category.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]MealSummary, error) {
	return list[MealSummary](ctx, c, endpointFilter, url.Values{"c": {category}}, fieldMeals)
}

// ListCategoryNames returns only the category names, in API order.
func (c *Client) ListCategoryNames(ctx context.Context) ([]string, error) {
	items, err := list[categoryName](ctx, c, endpointList, url.Values{"c": {listToken}}, fieldMeals)
	return project(items, err, func(v categoryName) string { return v.Name })
}

// ListIngredients returns every known ingredient.
func (c *Client) ListIngredients(ctx context.Context) ([]Ingredient, error) {
	return list[Ingredient](ctx, c, endpointList, url.Values{"i": {listToken}}, fieldMeals)
}

// ListAreaNames returns only the area names, in API order.
func (c *Client) ListAreaNames(ctx context.Context) ([]string, error) {
	items, err := list[areaName](ctx, c, endpointList, url.Values{"a": {listToken}}, fieldMeals)
	return project(items, err, func(v areaName) string { return v.Name })
}

// list runs the shared request/unwrap path for every operation.
func list[T any](ctx context.Context, c *Client, endpoint string, query url.Values, field string) ([]T, error) {
	body, err := c.fetch(ctx, endpoint, query)
	if err == nil {
		var items []T
		if items, err = decodeField[T](body, field); err == nil {
			return items, nil
		}
	}

	if !errors.Is(err, ErrNoResults) {
		c.log.DebugObj("mealdb request failed", "mealdb_error", map[string]any{
			"endpoint": endpoint,
			"query":    query.Encode(),
			"error":    err.Error(),
		})
	}
	return nil, err
}

func (c *Client) fetch(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := c.http.Get(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrTransport, endpoint, err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrTransport, endpoint, code)
	}

	body := resp.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBody, endpoint)
	}
	return body, nil
}
