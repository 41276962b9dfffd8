package recipes

import (
	"github.com/mealdex/mealdex/internal/recipe"
)

type SearchRecipesResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

type GetRecipeResponse struct {
	recipe.Recipe

	// Ingredients and measures zipped for display.
	IngredientLines []recipe.IngredientLine `json:"ingredient_lines"`
	Steps           []string                `json:"steps"`
}

type SimilarRecipesResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

type RecommendationsResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}
