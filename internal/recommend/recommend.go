// Package recommend ranks stored recipes with simple match heuristics.
package recommend

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/recipe"
)

// Similarity weights. A shared category counts for more than a shared
// area; each common ingredient adds a half point.
const (
	categoryWeight   = 2.0
	areaWeight       = 1.0
	ingredientWeight = 0.5
)

const (
	// DefaultLimit is how many recipes a recommendation returns when the
	// caller does not say otherwise.
	DefaultLimit = 6

	perCategoryPicks = 2
	ingredientPicks  = 3
)

// Store is the part of the data store the engine reads from.
type Store interface {
	SearchRecipes(ctx context.Context, f database.SearchFilters) ([]recipe.Recipe, error)
	RecentRecipes(ctx context.Context, n int) ([]recipe.Recipe, error)
	SimilarCandidates(ctx context.Context, r recipe.Recipe) ([]recipe.Recipe, error)
}

// Preferences describes what a visitor likes. Both lists are optional.
type Preferences struct {
	Categories  []string `json:"categories"`
	Ingredients []string `json:"ingredients"`
}

type Engine struct {
	db     Store
	logger *slog.Logger
}

func New(db Store, logger *slog.Logger) *Engine {
	return &Engine{
		db:     db,
		logger: logger,
	}
}

// SearchAndRecommend searches the store and, when the result falls short
// of n, pads it with recently added recipes, de-duplicated.
func (e *Engine) SearchAndRecommend(ctx context.Context, query string, mode database.SearchMode, n int) ([]recipe.Recipe, error) {
	if n <= 0 {
		n = DefaultLimit
	}

	e.logger.DebugContext(ctx, "searching recipes",
		slog.String("query", query), slog.String("mode", string(mode)), slog.Int("limit", n))

	results, err := e.db.SearchRecipes(ctx, database.SearchFilters{
		Query: query,
		Mode:  mode,
		Limit: n,
	})
	if err != nil {
		return nil, err
	}

	if len(results) < n {
		recent, err := e.db.RecentRecipes(ctx, n)
		if err != nil {
			// Padding is best-effort; the search result itself is fine.
			e.logger.WarnContext(ctx, "failed to pad search results", slog.Any("error", err))
			return results, nil
		}
		results = appendUnique(results, recent, n)
	}

	return truncate(results, n), nil
}

// ByIngredients recommends recipes ranked by how many of the given
// ingredients they contain (case-insensitive substring match).
func (e *Engine) ByIngredients(ctx context.Context, ingredients []string, n int) ([]recipe.Recipe, error) {
	if n <= 0 {
		n = DefaultLimit
	}

	var candidates []recipe.Recipe
	for _, ing := range ingredients {
		matches, err := e.db.SearchRecipes(ctx, database.SearchFilters{
			Query: ing,
			Mode:  database.SearchIngredient,
			Limit: n * len(ingredients),
		})
		if err != nil {
			return nil, err
		}
		candidates = appendUnique(candidates, matches, 0)
	}

	rankByIngredientMatches(ingredients, candidates)
	return truncate(candidates, n), nil
}

// Similar recommends recipes close to the given one: shared category,
// shared area, and overlapping ingredients, in that order of weight.
func (e *Engine) Similar(ctx context.Context, base recipe.Recipe, n int) ([]recipe.Recipe, error) {
	if n <= 0 {
		n = DefaultLimit
	}

	candidates, err := e.db.SimilarCandidates(ctx, base)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return similarityScore(base, candidates[i]) > similarityScore(base, candidates[j])
	})
	return truncate(candidates, n), nil
}

// Trending returns the most recently added recipes.
func (e *Engine) Trending(ctx context.Context, n int) ([]recipe.Recipe, error) {
	if n <= 0 {
		n = DefaultLimit
	}
	return e.db.RecentRecipes(ctx, n)
}

// Personalized mixes picks from the preferred categories and ingredients
// and pads the rest with recent recipes.
func (e *Engine) Personalized(ctx context.Context, prefs Preferences, n int) ([]recipe.Recipe, error) {
	if n <= 0 {
		n = DefaultLimit
	}

	var picks []recipe.Recipe
	for _, category := range prefs.Categories {
		matches, err := e.db.SearchRecipes(ctx, database.SearchFilters{
			Query: category,
			Mode:  database.SearchCategory,
			Limit: perCategoryPicks,
		})
		if err != nil {
			return nil, err
		}
		picks = appendUnique(picks, matches, 0)
	}

	if len(prefs.Ingredients) > 0 {
		matches, err := e.ByIngredients(ctx, prefs.Ingredients, ingredientPicks)
		if err != nil {
			return nil, err
		}
		picks = appendUnique(picks, matches, 0)
	}

	if len(picks) < n {
		recent, err := e.db.RecentRecipes(ctx, n)
		if err != nil {
			e.logger.WarnContext(ctx, "failed to pad personalized picks", slog.Any("error", err))
			return truncate(picks, n), nil
		}
		picks = appendUnique(picks, recent, n)
	}

	return truncate(picks, n), nil
}

// similarityScore rates how close candidate is to base.
func similarityScore(base, candidate recipe.Recipe) float64 {
	var score float64
	if base.Category != "" && strings.EqualFold(base.Category, candidate.Category) {
		score += categoryWeight
	}
	if base.Area != "" && strings.EqualFold(base.Area, candidate.Area) {
		score += areaWeight
	}
	score += float64(commonIngredients(base, candidate)) * ingredientWeight
	return score
}

func commonIngredients(a, b recipe.Recipe) int {
	seen := make(map[string]bool, len(a.Ingredients))
	for _, ing := range a.Ingredients {
		seen[strings.ToLower(ing)] = true
	}

	count := 0
	for _, ing := range b.Ingredients {
		key := strings.ToLower(ing)
		if seen[key] {
			count++
			seen[key] = false // count each shared ingredient once
		}
	}
	return count
}

// rankByIngredientMatches sorts recipes in place by how many of the
// wanted ingredients each contains, most first. Ties keep store order.
func rankByIngredientMatches(wanted []string, recipes []recipe.Recipe) {
	matches := func(r recipe.Recipe) int {
		count := 0
		for _, ing := range wanted {
			if r.HasIngredient(ing) {
				count++
			}
		}
		return count
	}
	sort.SliceStable(recipes, func(i, j int) bool {
		return matches(recipes[i]) > matches(recipes[j])
	})
}

// appendUnique appends entries of extra whose ID is not already present
// in base. limit 0 means no cap.
func appendUnique(base, extra []recipe.Recipe, limit int) []recipe.Recipe {
	seen := make(map[int64]bool, len(base))
	for _, r := range base {
		seen[r.ID] = true
	}
	for _, r := range extra {
		if limit > 0 && len(base) >= limit {
			break
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		base = append(base, r)
	}
	return base
}

func truncate(recipes []recipe.Recipe, n int) []recipe.Recipe {
	if len(recipes) > n {
		return recipes[:n]
	}
	return recipes
}
