package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mealdex/mealdex/internal/recipe"
)

// SearchMode selects which fields a search query is matched against.
type SearchMode string

const (
	SearchAll        SearchMode = "all"
	SearchName       SearchMode = "name"
	SearchIngredient SearchMode = "ingredient"
	SearchCategory   SearchMode = "category"
	SearchArea       SearchMode = "area"
	SearchLetter     SearchMode = "letter"
)

func (m SearchMode) Validate() error {
	switch m {
	case SearchAll, SearchName, SearchIngredient, SearchCategory, SearchArea, SearchLetter:
		return nil
	}
	return fmt.Errorf("unknown search mode: %q", m)
}

// SearchFilters describes one search. Matching is case-insensitive
// substring matching (ILIKE); SearchLetter anchors at the start of the
// name. Results are ordered by primary key for stability.
type SearchFilters struct {
	Query string
	Mode  SearchMode
	Limit int
}

const recipeColumns = `id, meal_id, name, category, area, instructions,
	image_url, youtube_url, ingredients, measures, tags, is_favorite,
	created_at, updated_at`

func scanRecipe(row pgx.Row) (recipe.Recipe, error) {
	var r recipe.Recipe
	err := row.Scan(&r.ID, &r.MealID, &r.Name, &r.Category, &r.Area,
		&r.Instructions, &r.ImageURL, &r.YoutubeURL,
		&r.Ingredients, &r.Measures, &r.Tags, &r.IsFavorite,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func collectRecipes(rows pgx.Rows) ([]recipe.Recipe, error) {
	defer rows.Close()
	var recipes []recipe.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// UpsertRecipe inserts the recipe or, when its meal_id is already stored,
// updates the mutable fields and refreshes updated_at. clock_timestamp()
// is used so updated_at strictly increases even within one transaction.
// The local is_favorite flag survives re-sync. Returns the stored row.
func (d *Database) UpsertRecipe(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error) {
	const q = `INSERT INTO recipes
		(meal_id, name, category, area, instructions, image_url, youtube_url,
		 ingredients, measures, tags)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (meal_id) DO UPDATE SET
		name = EXCLUDED.name,
		category = EXCLUDED.category,
		area = EXCLUDED.area,
		instructions = EXCLUDED.instructions,
		image_url = EXCLUDED.image_url,
		youtube_url = EXCLUDED.youtube_url,
		ingredients = EXCLUDED.ingredients,
		measures = EXCLUDED.measures,
		tags = EXCLUDED.tags,
		updated_at = clock_timestamp()
	RETURNING ` + recipeColumns

	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	measures := r.Measures
	if measures == nil {
		measures = []string{}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	stored, err := scanRecipe(d.db.QueryRow(ctx, q,
		r.MealID, r.Name, r.Category, r.Area, r.Instructions,
		r.ImageURL, r.YoutubeURL, ingredients, measures, tags))
	if err != nil {
		return recipe.Recipe{}, &StoreError{Op: "upsert recipe", Err: err}
	}
	return stored, nil
}

func (d *Database) GetRecipe(ctx context.Context, id int64) (recipe.Recipe, error) {
	q := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

	r, err := scanRecipe(d.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return recipe.Recipe{}, ErrRecipeNotFound
	} else if err != nil {
		return recipe.Recipe{}, &StoreError{Op: "get recipe", Err: err}
	}
	return r, nil
}

func (d *Database) GetRecipeByMealID(ctx context.Context, mealID string) (recipe.Recipe, error) {
	q := `SELECT ` + recipeColumns + ` FROM recipes WHERE meal_id = $1`

	r, err := scanRecipe(d.db.QueryRow(ctx, q, mealID))
	if errors.Is(err, pgx.ErrNoRows) {
		return recipe.Recipe{}, ErrRecipeNotFound
	} else if err != nil {
		return recipe.Recipe{}, &StoreError{Op: "get recipe by meal id", Err: err}
	}
	return r, nil
}

// SearchRecipes returns recipes matching the filters, ordered by id.
func (d *Database) SearchRecipes(ctx context.Context, f SearchFilters) ([]recipe.Recipe, error) {
	if err := f.Mode.Validate(); err != nil {
		return nil, err
	}

	var where string
	pattern := "%" + f.Query + "%"
	switch f.Mode {
	case SearchName:
		where = `name ILIKE $1`
	case SearchLetter:
		where = `name ILIKE $1`
		pattern = f.Query + "%"
	case SearchCategory:
		where = `category ILIKE $1`
	case SearchArea:
		where = `area ILIKE $1`
	case SearchIngredient:
		where = `array_to_string(ingredients, ',') ILIKE $1`
	default: // SearchAll
		where = `(name ILIKE $1 OR category ILIKE $1 OR area ILIKE $1
			OR array_to_string(ingredients, ',') ILIKE $1)`
	}

	q := `SELECT ` + recipeColumns + ` FROM recipes WHERE ` + where +
		` ORDER BY id LIMIT $2`

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.db.Query(ctx, q, pattern, limit)
	if err != nil {
		return nil, &StoreError{Op: "search recipes", Err: err}
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, &StoreError{Op: "search recipes", Err: err}
	}
	return recipes, nil
}

// RecentRecipes returns the n most recently created recipes.
func (d *Database) RecentRecipes(ctx context.Context, n int) ([]recipe.Recipe, error) {
	q := `SELECT ` + recipeColumns + ` FROM recipes
		ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := d.db.Query(ctx, q, n)
	if err != nil {
		return nil, &StoreError{Op: "recent recipes", Err: err}
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, &StoreError{Op: "recent recipes", Err: err}
	}
	return recipes, nil
}

// SimilarCandidates returns recipes sharing a category or area with the
// given recipe, excluding the recipe itself. Scoring happens in the
// recommendation engine.
func (d *Database) SimilarCandidates(ctx context.Context, r recipe.Recipe) ([]recipe.Recipe, error) {
	q := `SELECT ` + recipeColumns + ` FROM recipes
		WHERE (category ILIKE $1 OR area ILIKE $2) AND id <> $3
		ORDER BY id`

	rows, err := d.db.Query(ctx, q, r.Category, r.Area, r.ID)
	if err != nil {
		return nil, &StoreError{Op: "similar candidates", Err: err}
	}
	recipes, err := collectRecipes(rows)
	if err != nil {
		return nil, &StoreError{Op: "similar candidates", Err: err}
	}
	return recipes, nil
}

func (d *Database) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRow(ctx, `SELECT count(*) FROM recipes`).Scan(&count); err != nil {
		return 0, &StoreError{Op: "count recipes", Err: err}
	}
	return count, nil
}

func (d *Database) ListCategories(ctx context.Context) ([]string, error) {
	return d.listDistinct(ctx, `SELECT DISTINCT category FROM recipes
		WHERE category <> '' ORDER BY category`, "list categories")
}

func (d *Database) ListAreas(ctx context.Context) ([]string, error) {
	return d.listDistinct(ctx, `SELECT DISTINCT area FROM recipes
		WHERE area <> '' ORDER BY area`, "list areas")
}

func (d *Database) ListIngredients(ctx context.Context) ([]string, error) {
	return d.listDistinct(ctx, `SELECT DISTINCT unnest(ingredients) AS ingredient
		FROM recipes ORDER BY ingredient`, "list ingredients")
}

func (d *Database) listDistinct(ctx context.Context, q, op string) ([]string, error) {
	rows, err := d.db.Query(ctx, q)
	if err != nil {
		return nil, &StoreError{Op: op, Err: err}
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &StoreError{Op: op, Err: err}
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: op, Err: err}
	}
	return values, nil
}

// SetFavorite flips the local favorite flag on a recipe.
func (d *Database) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	tag, err := d.db.Exec(ctx,
		`UPDATE recipes SET is_favorite = $1 WHERE id = $2`, favorite, id)
	if err != nil {
		return &StoreError{Op: "set favorite", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// DeleteAllRecipes removes every stored recipe. Used by the admin clear
// command only.
func (d *Database) DeleteAllRecipes(ctx context.Context) (int64, error) {
	tag, err := d.db.Exec(ctx, `DELETE FROM recipes`)
	if err != nil {
		return 0, &StoreError{Op: "delete all recipes", Err: err}
	}
	return tag.RowsAffected(), nil
}
