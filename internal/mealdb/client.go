// Package mealdb implements a client for the TheMealDB HTTP/JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	httpx "github.com/mealdex/mealdex/internal/http"
	jsonx "github.com/mealdex/mealdex/internal/json"

	"github.com/hashicorp/go-retryablehttp"
)

// MealSummary is the partial record returned by the filter endpoints.
// Full details require a follow-up lookup by id.
type MealSummary struct {
	IDMeal       string `json:"idMeal"`
	StrMeal      string `json:"strMeal"`
	StrMealThumb string `json:"strMealThumb"`
}

// Category is a category record from categories.php.
type Category struct {
	IDCategory             string `json:"idCategory"`
	StrCategory            string `json:"strCategory"`
	StrCategoryThumb       string `json:"strCategoryThumb"`
	StrCategoryDescription string `json:"strCategoryDescription"`
}

type mealsEnvelope struct {
	Meals []Meal `json:"meals"`
}

type summariesEnvelope struct {
	Meals []MealSummary `json:"meals"`
}

type categoriesEnvelope struct {
	Categories []Category `json:"categories"`
}

// list.php responds under the "meals" key regardless of what is listed.
type listEnvelope struct {
	Meals []struct {
		StrCategory   string `json:"strCategory"`
		StrArea       string `json:"strArea"`
		StrIngredient string `json:"strIngredient"`
	} `json:"meals"`
}

type Client struct {
	baseURL string
	http    *httpx.HTTP
}

func New(baseURL string, client *httpx.HTTP) *Client {
	return &Client{
		baseURL: baseURL,
		http:    client,
	}
}

// get issues one GET request against the named endpoint and decodes the
// JSON body into dst. Transport failures and non-2xx statuses surface as
// NetworkError; undecodable bodies as ParseError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if err := httpx.ExpectStatus2xx(resp); err != nil {
		return &NetworkError{Endpoint: endpoint, Err: err}
	}

	if err := jsonx.DecodeJSON(dst, json.NewDecoder(resp.Body)); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// SearchByName searches meals by name using search.php?s=name.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Meal, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "search.php", url.Values{"s": {name}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// SearchByFirstLetter lists meals by first letter using search.php?f=letter.
func (c *Client) SearchByFirstLetter(ctx context.Context, letter string) ([]Meal, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "search.php", url.Values{"f": {letter}}, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// FilterByIngredient lists meal summaries by ingredient using filter.php?i=.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]MealSummary, error) {
	return c.filter(ctx, url.Values{"i": {ingredient}})
}

// FilterByCategory lists meal summaries by category using filter.php?c=.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]MealSummary, error) {
	return c.filter(ctx, url.Values{"c": {category}})
}

// FilterByArea lists meal summaries by area using filter.php?a=.
func (c *Client) FilterByArea(ctx context.Context, area string) ([]MealSummary, error) {
	return c.filter(ctx, url.Values{"a": {area}})
}

func (c *Client) filter(ctx context.Context, params url.Values) ([]MealSummary, error) {
	var env summariesEnvelope
	if err := c.get(ctx, "filter.php", params, &env); err != nil {
		return nil, err
	}
	return env.Meals, nil
}

// LookupByID fetches the full meal record using lookup.php?i=id.
// Returns nil when the id is unknown upstream.
func (c *Client) LookupByID(ctx context.Context, mealID string) (*Meal, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "lookup.php", url.Values{"i": {mealID}}, &env); err != nil {
		return nil, err
	}
	if len(env.Meals) == 0 {
		return nil, nil
	}
	return &env.Meals[0], nil
}

// Random fetches one random meal using random.php.
func (c *Client) Random(ctx context.Context) (*Meal, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "random.php", nil, &env); err != nil {
		return nil, err
	}
	if len(env.Meals) == 0 {
		return nil, nil
	}
	return &env.Meals[0], nil
}

// Categories fetches the full category records using categories.php.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var env categoriesEnvelope
	if err := c.get(ctx, "categories.php", nil, &env); err != nil {
		return nil, err
	}
	return env.Categories, nil
}

// ListCategories lists category names using list.php?c=list.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	env, err := c.list(ctx, "c")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(env.Meals))
	for _, m := range env.Meals {
		if m.StrCategory != "" {
			names = append(names, m.StrCategory)
		}
	}
	return names, nil
}

// ListAreas lists area names using list.php?a=list.
func (c *Client) ListAreas(ctx context.Context) ([]string, error) {
	env, err := c.list(ctx, "a")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(env.Meals))
	for _, m := range env.Meals {
		if m.StrArea != "" {
			names = append(names, m.StrArea)
		}
	}
	return names, nil
}

// ListIngredients lists ingredient names using list.php?i=list.
func (c *Client) ListIngredients(ctx context.Context) ([]string, error) {
	env, err := c.list(ctx, "i")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(env.Meals))
	for _, m := range env.Meals {
		if m.StrIngredient != "" {
			names = append(names, m.StrIngredient)
		}
	}
	return names, nil
}

func (c *Client) list(ctx context.Context, key string) (listEnvelope, error) {
	var env listEnvelope
	err := c.get(ctx, "list.php", url.Values{key: {"list"}}, &env)
	return env, err
}
