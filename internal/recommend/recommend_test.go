package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/log"
	"github.com/mealdex/mealdex/internal/recipe"
)

type fakeStore struct {
	recipes   []recipe.Recipe
	searchErr error
	recentErr error
}

func (f *fakeStore) SearchRecipes(ctx context.Context, filters database.SearchFilters) ([]recipe.Recipe, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	q := strings.ToLower(filters.Query)
	var out []recipe.Recipe
	for _, r := range f.recipes {
		var match bool
		switch filters.Mode {
		case database.SearchName:
			match = strings.Contains(strings.ToLower(r.Name), q)
		case database.SearchCategory:
			match = strings.Contains(strings.ToLower(r.Category), q)
		case database.SearchArea:
			match = strings.Contains(strings.ToLower(r.Area), q)
		case database.SearchIngredient:
			match = r.HasIngredient(q)
		default:
			match = strings.Contains(strings.ToLower(r.Name), q) ||
				strings.Contains(strings.ToLower(r.Category), q) ||
				strings.Contains(strings.ToLower(r.Area), q) ||
				r.HasIngredient(q)
		}
		if match {
			out = append(out, r)
		}
		if filters.Limit > 0 && len(out) >= filters.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) RecentRecipes(ctx context.Context, n int) ([]recipe.Recipe, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	// Newest first: the fixture slice is oldest first.
	var out []recipe.Recipe
	for i := len(f.recipes) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.recipes[i])
	}
	return out, nil
}

func (f *fakeStore) SimilarCandidates(ctx context.Context, r recipe.Recipe) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	for _, candidate := range f.recipes {
		if candidate.ID == r.ID {
			continue
		}
		if strings.EqualFold(candidate.Category, r.Category) || strings.EqualFold(candidate.Area, r.Area) {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func fixtures() []recipe.Recipe {
	return []recipe.Recipe{
		{ID: 1, Name: "Teriyaki Chicken Casserole", Category: "Chicken", Area: "Japanese",
			Ingredients: []string{"chicken breasts", "soy sauce", "rice"}},
		{ID: 2, Name: "Beef Wellington", Category: "Beef", Area: "British",
			Ingredients: []string{"beef fillet", "mushrooms", "pastry"}},
		{ID: 3, Name: "Chicken Katsu", Category: "Chicken", Area: "Japanese",
			Ingredients: []string{"chicken breasts", "panko", "rice"}},
		{ID: 4, Name: "Fish Pie", Category: "Seafood", Area: "British",
			Ingredients: []string{"cod", "potatoes", "cream"}},
	}
}

func TestSearchAndRecommendExactMatch(t *testing.T) {
	engine := New(&fakeStore{recipes: fixtures()}, log.NullLogger())

	got, err := engine.SearchAndRecommend(context.Background(), "Teriyaki", database.SearchName, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected exactly the Teriyaki recipe, got %v", got)
	}
}

func TestSearchAndRecommendPadsWithRecent(t *testing.T) {
	engine := New(&fakeStore{recipes: fixtures()}, log.NullLogger())

	got, err := engine.SearchAndRecommend(context.Background(), "Teriyaki", database.SearchName, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected padding to 3 results, got %d", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("expected the search match first, got id %d", got[0].ID)
	}

	seen := make(map[int64]bool)
	for _, r := range got {
		if seen[r.ID] {
			t.Errorf("duplicate recipe id %d in results", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestSearchAndRecommendSurfacesStoreError(t *testing.T) {
	storeErr := &database.StoreError{Op: "search recipes", Err: errors.New("down")}
	engine := New(&fakeStore{searchErr: storeErr}, log.NullLogger())

	_, err := engine.SearchAndRecommend(context.Background(), "x", database.SearchAll, 3)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}

func TestByIngredientsRanksByMatchCount(t *testing.T) {
	engine := New(&fakeStore{recipes: fixtures()}, log.NullLogger())

	got, err := engine.ByIngredients(context.Background(), []string{"chicken", "rice", "panko"}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("expected at least the two chicken recipes, got %d", len(got))
	}
	// Chicken Katsu matches all three, Teriyaki only two.
	if got[0].ID != 3 {
		t.Errorf("expected Chicken Katsu (3 matches) first, got id %d", got[0].ID)
	}
	if got[1].ID != 1 {
		t.Errorf("expected Teriyaki (2 matches) second, got id %d", got[1].ID)
	}
}

func TestSimilarScoring(t *testing.T) {
	base := fixtures()[0] // Chicken / Japanese
	engine := New(&fakeStore{recipes: fixtures()}, log.NullLogger())

	got, err := engine.Similar(context.Background(), base, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected similar recipes")
	}
	// Chicken Katsu shares category, area and two ingredients; nothing
	// else comes close.
	if got[0].ID != 3 {
		t.Errorf("expected Chicken Katsu first, got id %d", got[0].ID)
	}
	for _, r := range got {
		if r.ID == base.ID {
			t.Error("similar results must not contain the base recipe")
		}
	}
}

func TestSimilarityScoreWeights(t *testing.T) {
	base := recipe.Recipe{ID: 1, Category: "Chicken", Area: "Japanese",
		Ingredients: []string{"rice", "soy sauce"}}

	tests := []struct {
		name      string
		candidate recipe.Recipe
		want      float64
	}{
		{
			name:      "category and area and one ingredient",
			candidate: recipe.Recipe{Category: "chicken", Area: "JAPANESE", Ingredients: []string{"Rice"}},
			want:      categoryWeight + areaWeight + ingredientWeight,
		},
		{
			name:      "area only",
			candidate: recipe.Recipe{Category: "Beef", Area: "Japanese"},
			want:      areaWeight,
		},
		{
			name:      "nothing shared",
			candidate: recipe.Recipe{Category: "Dessert", Area: "French", Ingredients: []string{"sugar"}},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := similarityScore(base, tt.candidate); got != tt.want {
				t.Errorf("similarityScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrending(t *testing.T) {
	engine := New(&fakeStore{recipes: fixtures()}, log.NullLogger())

	got, err := engine.Trending(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 4 {
		t.Errorf("expected the two newest recipes starting with id 4, got %v", got)
	}
}

func TestPersonalized(t *testing.T) {
	engine := New(&fakeStore{recipes: fixtures()}, log.NullLogger())

	got, err := engine.Personalized(context.Background(), Preferences{
		Categories:  []string{"Chicken"},
		Ingredients: []string{"beef fillet"},
	}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 padded results, got %d", len(got))
	}

	ids := make(map[int64]bool)
	for _, r := range got {
		if ids[r.ID] {
			t.Errorf("duplicate recipe id %d", r.ID)
		}
		ids[r.ID] = true
	}
	if !ids[1] || !ids[3] {
		t.Error("expected both chicken recipes from the category preference")
	}
	if !ids[2] {
		t.Error("expected the beef recipe from the ingredient preference")
	}
}
