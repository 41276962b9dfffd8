// Package sync pulls recipes from the upstream API into the data store.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mealdex/mealdex/internal/mealdb"
	"github.com/mealdex/mealdex/internal/recipe"
)

// Thresholds and batch sizes for the smart strategy: sparse databases
// get large random batches, populated ones get targeted category pulls.
const (
	smartSparseRows = 100
	smartMediumRows = 500

	smartSparseBatch = 50
	smartMediumBatch = 30
	smartFullBatch   = 20

	maxSampledScopes = 3
)

// Strategy names a scoped-sync flavor.
type Strategy string

const (
	StrategyRandom   Strategy = "random"
	StrategyCategory Strategy = "category"
	StrategyArea     Strategy = "area"
)

func (s Strategy) Validate() error {
	switch s {
	case StrategyRandom, StrategyCategory, StrategyArea:
		return nil
	}
	return fmt.Errorf("unknown sync strategy: %q", s)
}

// Source is the part of the upstream client the sync service uses.
type Source interface {
	Random(ctx context.Context) (*mealdb.Meal, error)
	LookupByID(ctx context.Context, mealID string) (*mealdb.Meal, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.MealSummary, error)
	FilterByArea(ctx context.Context, area string) ([]mealdb.MealSummary, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListAreas(ctx context.Context) ([]string, error)
}

// Store is the part of the data store the sync service uses.
type Store interface {
	UpsertRecipe(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error)
	CountRecipes(ctx context.Context) (int64, error)
}

// Stats summarizes one sync run. A record failing to fetch, parse, or
// store counts as Failed and never aborts the batch.
type Stats struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

func (s Stats) Total() int { return s.Added + s.Updated }

type Service struct {
	src    Source
	db     Store
	logger *slog.Logger
}

func New(src Source, db Store, logger *slog.Logger) *Service {
	return &Service{
		src:    src,
		db:     db,
		logger: logger,
	}
}

// upsert parses and stores one wire meal, folding the outcome into stats.
// The store sets updated_at strictly after created_at only on conflict,
// which is how an update is told apart from an insert.
func (s *Service) upsert(ctx context.Context, meal *mealdb.Meal, stats *Stats) {
	r, err := mealdb.ParseMeal(meal)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to parse meal",
			slog.String("meal_id", meal.IDMeal), slog.Any("error", err))
		stats.Failed++
		return
	}

	stored, err := s.db.UpsertRecipe(ctx, r)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store recipe",
			slog.String("meal_id", r.MealID), slog.Any("error", err))
		stats.Failed++
		return
	}

	if stored.UpdatedAt.After(stored.CreatedAt) {
		stats.Updated++
	} else {
		stats.Added++
	}
	s.logger.DebugContext(ctx, "stored recipe",
		slog.String("meal_id", stored.MealID), slog.String("name", stored.Name))
}

// Quick fetches n random meals and upserts each one.
func (s *Service) Quick(ctx context.Context, n int) (Stats, error) {
	s.logger.InfoContext(ctx, "starting quick sync", slog.Int("count", n))

	var stats Stats
	for range n {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		meal, err := s.src.Random(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to fetch random meal", slog.Any("error", err))
			stats.Failed++
			continue
		}
		if meal == nil {
			stats.Failed++
			continue
		}
		s.upsert(ctx, meal, &stats)
	}

	s.logger.InfoContext(ctx, "quick sync finished",
		slog.Int("added", stats.Added), slog.Int("updated", stats.Updated),
		slog.Int("failed", stats.Failed))
	return stats, nil
}

// Category syncs the meals of one category. The filter endpoint only
// returns partial records, so each one is looked up in full before the
// upsert. limit <= 0 syncs the whole category.
func (s *Service) Category(ctx context.Context, category string, limit int) (Stats, error) {
	s.logger.InfoContext(ctx, "starting category sync", slog.String("category", category))

	summaries, err := s.src.FilterByCategory(ctx, category)
	if err != nil {
		return Stats{}, fmt.Errorf("listing category %q: %w", category, err)
	}
	return s.syncSummaries(ctx, summaries, limit)
}

// Area syncs the meals of one area, like Category.
func (s *Service) Area(ctx context.Context, area string, limit int) (Stats, error) {
	s.logger.InfoContext(ctx, "starting area sync", slog.String("area", area))

	summaries, err := s.src.FilterByArea(ctx, area)
	if err != nil {
		return Stats{}, fmt.Errorf("listing area %q: %w", area, err)
	}
	return s.syncSummaries(ctx, summaries, limit)
}

func (s *Service) syncSummaries(ctx context.Context, summaries []mealdb.MealSummary, limit int) (Stats, error) {
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	var stats Stats
	for _, summary := range summaries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		meal, err := s.src.LookupByID(ctx, summary.IDMeal)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to look up meal",
				slog.String("meal_id", summary.IDMeal), slog.Any("error", err))
			stats.Failed++
			continue
		}
		if meal == nil {
			s.logger.WarnContext(ctx, "meal vanished upstream", slog.String("meal_id", summary.IDMeal))
			stats.Failed++
			continue
		}
		s.upsert(ctx, meal, &stats)
	}

	s.logger.InfoContext(ctx, "scoped sync finished",
		slog.Int("added", stats.Added), slog.Int("updated", stats.Updated),
		slog.Int("failed", stats.Failed))
	return stats, nil
}

// Daily runs the scheduled sync with the given strategy. StrategyRandom
// pulls n random meals; StrategyCategory and StrategyArea sample up to
// three scopes and split n between them.
func (s *Service) Daily(ctx context.Context, n int, strategy Strategy) (Stats, error) {
	if err := strategy.Validate(); err != nil {
		return Stats{}, err
	}

	switch strategy {
	case StrategyRandom:
		return s.Quick(ctx, n)
	case StrategyCategory:
		scopes, err := s.src.ListCategories(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("listing categories: %w", err)
		}
		return s.syncSampledScopes(ctx, scopes, n, s.Category)
	default: // StrategyArea
		scopes, err := s.src.ListAreas(ctx)
		if err != nil {
			return Stats{}, fmt.Errorf("listing areas: %w", err)
		}
		return s.syncSampledScopes(ctx, scopes, n, s.Area)
	}
}

// Smart picks a strategy from the current database size: sparse data
// gets bulk random pulls, a filled database gets targeted category syncs.
func (s *Service) Smart(ctx context.Context) (Stats, error) {
	count, err := s.db.CountRecipes(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting recipes: %w", err)
	}

	switch {
	case count < smartSparseRows:
		s.logger.InfoContext(ctx, "smart sync: sparse database, bulk random pull",
			slog.Int64("current", count))
		return s.Quick(ctx, smartSparseBatch)
	case count < smartMediumRows:
		s.logger.InfoContext(ctx, "smart sync: random pull", slog.Int64("current", count))
		return s.Quick(ctx, smartMediumBatch)
	default:
		s.logger.InfoContext(ctx, "smart sync: category pull", slog.Int64("current", count))
		return s.Daily(ctx, smartFullBatch, StrategyCategory)
	}
}

func (s *Service) syncSampledScopes(ctx context.Context, scopes []string, n int,
	syncOne func(context.Context, string, int) (Stats, error)) (Stats, error) {
	if len(scopes) == 0 {
		return Stats{}, nil
	}

	rand.Shuffle(len(scopes), func(i, j int) {
		scopes[i], scopes[j] = scopes[j], scopes[i]
	})
	if len(scopes) > maxSampledScopes {
		scopes = scopes[:maxSampledScopes]
	}

	perScope := max(n/len(scopes), 1)

	var stats Stats
	for _, scope := range scopes {
		scopeStats, err := syncOne(ctx, scope, perScope)
		stats.Added += scopeStats.Added
		stats.Updated += scopeStats.Updated
		stats.Failed += scopeStats.Failed
		if err != nil {
			// A whole scope failing to list is logged and skipped, like
			// a single record.
			s.logger.ErrorContext(ctx, "scope sync failed",
				slog.String("scope", scope), slog.Any("error", err))
		}
	}
	return stats, nil
}
