package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/env"
	"github.com/mealdex/mealdex/internal/log"
	"github.com/mealdex/mealdex/internal/recipe"
	"github.com/mealdex/mealdex/internal/recommend"
)

type fakeStore struct {
	recipes   []recipe.Recipe
	searchErr error
}

func (f *fakeStore) SearchRecipes(ctx context.Context, filters database.SearchFilters) ([]recipe.Recipe, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []recipe.Recipe
	for _, r := range f.recipes {
		if filters.Query == "" || strings.Contains(strings.ToLower(r.Name), strings.ToLower(filters.Query)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) RecentRecipes(ctx context.Context, n int) ([]recipe.Recipe, error) {
	if n > len(f.recipes) {
		n = len(f.recipes)
	}
	return f.recipes[:n], nil
}

func (f *fakeStore) SimilarCandidates(ctx context.Context, r recipe.Recipe) ([]recipe.Recipe, error) {
	return nil, nil
}

func searchEnv(store *fakeStore) *env.Env {
	return &env.Env{
		Logger:    log.NullLogger(),
		Recommend: recommend.New(store, log.NullLogger()),
	}
}

func searchRequest(t *testing.T, e *env.Env, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(env.WithCtx(req.Context(), e))
	rec := httptest.NewRecorder()
	HandleSearchRecipes(rec, req)
	return rec
}

func TestHandleSearchRecipes(t *testing.T) {
	store := &fakeStore{recipes: []recipe.Recipe{
		{ID: 1, MealID: "52772", Name: "Teriyaki Chicken Casserole"},
		{ID: 2, MealID: "52803", Name: "Beef Wellington"},
	}}

	rec := searchRequest(t, searchEnv(store), "/api/recipes?q=teriyaki&mode=name&limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, received %d", http.StatusOK, rec.Code)
	}

	var resp SearchRecipesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Recipes) != 1 {
		t.Fatalf("expected 1 recipe, received %d", len(resp.Recipes))
	}
	if resp.Recipes[0].Name != "Teriyaki Chicken Casserole" {
		t.Errorf("unexpected recipe %q", resp.Recipes[0].Name)
	}
}

func TestHandleSearchRecipesEmptyResult(t *testing.T) {
	rec := searchRequest(t, searchEnv(&fakeStore{}), "/api/recipes?q=nothing")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, received %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"recipes":[]`) {
		t.Errorf("expected an empty array, received %s", rec.Body.String())
	}
}

func TestHandleSearchRecipesRejectsBadMode(t *testing.T) {
	rec := searchRequest(t, searchEnv(&fakeStore{}), "/api/recipes?mode=bogus")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, received %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandleSearchRecipesRejectsBadLimit(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		rec := searchRequest(t, searchEnv(&fakeStore{}), "/api/recipes?limit="+raw)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: expected status %d, received %d", raw, http.StatusBadRequest, rec.Code)
		}
	}
}
