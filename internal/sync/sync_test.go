package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mealdex/mealdex/internal/log"
	"github.com/mealdex/mealdex/internal/mealdb"
	"github.com/mealdex/mealdex/internal/recipe"
)

type fakeSource struct {
	meals       map[string]*mealdb.Meal
	randomQueue []*mealdb.Meal
	randomErrs  []error
	randomCalls int

	categories map[string][]mealdb.MealSummary
	areas      map[string][]mealdb.MealSummary

	listCategoriesCalls int
}

func (f *fakeSource) Random(ctx context.Context) (*mealdb.Meal, error) {
	i := f.randomCalls
	f.randomCalls++
	if i < len(f.randomErrs) && f.randomErrs[i] != nil {
		return nil, f.randomErrs[i]
	}
	if i < len(f.randomQueue) {
		return f.randomQueue[i], nil
	}
	return nil, errors.New("random queue exhausted")
}

func (f *fakeSource) LookupByID(ctx context.Context, mealID string) (*mealdb.Meal, error) {
	return f.meals[mealID], nil
}

func (f *fakeSource) FilterByCategory(ctx context.Context, category string) ([]mealdb.MealSummary, error) {
	return f.categories[category], nil
}

func (f *fakeSource) FilterByArea(ctx context.Context, area string) ([]mealdb.MealSummary, error) {
	return f.areas[area], nil
}

func (f *fakeSource) ListCategories(ctx context.Context) ([]string, error) {
	f.listCategoriesCalls++
	names := make([]string, 0, len(f.categories))
	for name := range f.categories {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeSource) ListAreas(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.areas))
	for name := range f.areas {
		names = append(names, name)
	}
	return names, nil
}

type fakeStore struct {
	rows    map[string]recipe.Recipe
	nextID  int64
	upserts int
	clock   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:  make(map[string]recipe.Recipe),
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) UpsertRecipe(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error) {
	f.upserts++
	f.clock = f.clock.Add(time.Second)

	if existing, ok := f.rows[r.MealID]; ok {
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
		r.UpdatedAt = f.clock
		f.rows[r.MealID] = r
		return r, nil
	}

	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = f.clock
	r.UpdatedAt = f.clock
	f.rows[r.MealID] = r
	return r, nil
}

func (f *fakeStore) CountRecipes(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func meal(id, name string) *mealdb.Meal {
	return &mealdb.Meal{
		IDMeal:         id,
		StrMeal:        name,
		StrIngredient1: "salt",
		StrMeasure1:    "pinch",
	}
}

func TestQuickSync(t *testing.T) {
	src := &fakeSource{
		randomQueue: []*mealdb.Meal{meal("1", "A"), meal("2", "B"), meal("3", "C")},
	}
	store := newFakeStore()
	svc := New(src, store, log.NullLogger())

	stats, err := svc.Quick(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Added != 3 || stats.Updated != 0 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 3 added", stats)
	}
	if len(store.rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(store.rows))
	}
}

func TestQuickSyncContinuesPastFailures(t *testing.T) {
	src := &fakeSource{
		randomQueue: []*mealdb.Meal{meal("1", "A"), nil, meal("3", "C")},
		randomErrs:  []error{nil, errors.New("upstream 502"), nil},
	}
	store := newFakeStore()
	svc := New(src, store, log.NullLogger())

	stats, err := svc.Quick(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Added != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 2 added 1 failed", stats)
	}
	if len(store.rows) != 2 {
		t.Errorf("expected the failed record to write no row, got %d rows", len(store.rows))
	}
}

// Syncing the same meal twice must leave one row whose update timestamp
// strictly increases.
func TestResyncUpdatesInPlace(t *testing.T) {
	src := &fakeSource{
		randomQueue: []*mealdb.Meal{meal("52772", "Teriyaki Chicken Casserole"), meal("52772", "Teriyaki Chicken Casserole")},
	}
	store := newFakeStore()
	svc := New(src, store, log.NullLogger())

	stats, err := svc.Quick(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Added != 1 || stats.Updated != 1 {
		t.Errorf("stats = %+v, want 1 added 1 updated", stats)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(store.rows))
	}

	row := store.rows["52772"]
	if !row.UpdatedAt.After(row.CreatedAt) {
		t.Errorf("expected UpdatedAt (%v) after CreatedAt (%v)", row.UpdatedAt, row.CreatedAt)
	}
}

func TestCategorySync(t *testing.T) {
	src := &fakeSource{
		meals: map[string]*mealdb.Meal{
			"10": meal("10", "Gyoza"),
			"11": meal("11", "Katsu Curry"),
			"12": meal("12", "Ramen"),
		},
		categories: map[string][]mealdb.MealSummary{
			"Japanese": {{IDMeal: "10"}, {IDMeal: "11"}, {IDMeal: "12"}},
		},
	}
	store := newFakeStore()
	svc := New(src, store, log.NullLogger())

	stats, err := svc.Category(context.Background(), "Japanese", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Added != 2 {
		t.Errorf("expected limit to cap the batch at 2, got %+v", stats)
	}
}

func TestCategorySyncSkipsVanishedMeals(t *testing.T) {
	src := &fakeSource{
		meals: map[string]*mealdb.Meal{"10": meal("10", "Gyoza")},
		categories: map[string][]mealdb.MealSummary{
			"Japanese": {{IDMeal: "10"}, {IDMeal: "404"}},
		},
	}
	store := newFakeStore()
	svc := New(src, store, log.NullLogger())

	stats, err := svc.Category(context.Background(), "Japanese", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Added != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 1 added 1 failed", stats)
	}
}

func TestSmartSyncStrategySelection(t *testing.T) {
	tests := []struct {
		name            string
		seedRows        int
		wantRandomCalls int
		wantCategories  bool
	}{
		{name: "sparse uses bulk random", seedRows: 10, wantRandomCalls: smartSparseBatch},
		{name: "medium uses smaller random", seedRows: 200, wantRandomCalls: smartMediumBatch},
		{name: "full uses categories", seedRows: 600, wantCategories: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{
				categories: map[string][]mealdb.MealSummary{"Beef": nil},
			}
			store := newFakeStore()
			for i := range tt.seedRows {
				mealID := fmt.Sprintf("m%d", i)
				store.rows[mealID] = recipe.Recipe{MealID: mealID}
			}
			svc := New(src, store, log.NullLogger())

			if _, err := svc.Smart(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantCategories {
				if src.listCategoriesCalls == 0 {
					t.Error("expected category listing for a full database")
				}
				if src.randomCalls != 0 {
					t.Errorf("expected no random pulls, got %d", src.randomCalls)
				}
				return
			}
			if src.randomCalls != tt.wantRandomCalls {
				t.Errorf("random calls = %d, want %d", src.randomCalls, tt.wantRandomCalls)
			}
		})
	}
}

func TestDailyRejectsUnknownStrategy(t *testing.T) {
	svc := New(&fakeSource{}, newFakeStore(), log.NullLogger())
	if _, err := svc.Daily(context.Background(), 10, Strategy("bogus")); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
