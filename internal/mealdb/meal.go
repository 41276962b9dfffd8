package mealdb

import (
	"fmt"
	"strings"

	"github.com/mealdex/mealdex/internal/recipe"
)

// maxIngredientSlots is the number of strIngredientN/strMeasureN pairs the
// upstream wire format carries.
const maxIngredientSlots = 20

// Meal is the wire representation of a meal as returned by the upstream
// API. Ingredients and measures arrive as twenty numbered string fields;
// unused slots are empty, null, or the literal string "null".
type Meal struct {
	IDMeal       string `json:"idMeal"`
	StrMeal      string `json:"strMeal"`
	StrCategory  string `json:"strCategory"`
	StrArea      string `json:"strArea"`
	StrInstructs string `json:"strInstructions"`
	StrMealThumb string `json:"strMealThumb"`
	StrTags      string `json:"strTags"`
	StrYoutube   string `json:"strYoutube"`

	StrIngredient1  string `json:"strIngredient1"`
	StrIngredient2  string `json:"strIngredient2"`
	StrIngredient3  string `json:"strIngredient3"`
	StrIngredient4  string `json:"strIngredient4"`
	StrIngredient5  string `json:"strIngredient5"`
	StrIngredient6  string `json:"strIngredient6"`
	StrIngredient7  string `json:"strIngredient7"`
	StrIngredient8  string `json:"strIngredient8"`
	StrIngredient9  string `json:"strIngredient9"`
	StrIngredient10 string `json:"strIngredient10"`
	StrIngredient11 string `json:"strIngredient11"`
	StrIngredient12 string `json:"strIngredient12"`
	StrIngredient13 string `json:"strIngredient13"`
	StrIngredient14 string `json:"strIngredient14"`
	StrIngredient15 string `json:"strIngredient15"`
	StrIngredient16 string `json:"strIngredient16"`
	StrIngredient17 string `json:"strIngredient17"`
	StrIngredient18 string `json:"strIngredient18"`
	StrIngredient19 string `json:"strIngredient19"`
	StrIngredient20 string `json:"strIngredient20"`

	StrMeasure1  string `json:"strMeasure1"`
	StrMeasure2  string `json:"strMeasure2"`
	StrMeasure3  string `json:"strMeasure3"`
	StrMeasure4  string `json:"strMeasure4"`
	StrMeasure5  string `json:"strMeasure5"`
	StrMeasure6  string `json:"strMeasure6"`
	StrMeasure7  string `json:"strMeasure7"`
	StrMeasure8  string `json:"strMeasure8"`
	StrMeasure9  string `json:"strMeasure9"`
	StrMeasure10 string `json:"strMeasure10"`
	StrMeasure11 string `json:"strMeasure11"`
	StrMeasure12 string `json:"strMeasure12"`
	StrMeasure13 string `json:"strMeasure13"`
	StrMeasure14 string `json:"strMeasure14"`
	StrMeasure15 string `json:"strMeasure15"`
	StrMeasure16 string `json:"strMeasure16"`
	StrMeasure17 string `json:"strMeasure17"`
	StrMeasure18 string `json:"strMeasure18"`
	StrMeasure19 string `json:"strMeasure19"`
	StrMeasure20 string `json:"strMeasure20"`
}

func (m *Meal) ingredientSlot(i int) (string, string) {
	ingredients := [maxIngredientSlots]string{
		m.StrIngredient1, m.StrIngredient2, m.StrIngredient3, m.StrIngredient4,
		m.StrIngredient5, m.StrIngredient6, m.StrIngredient7, m.StrIngredient8,
		m.StrIngredient9, m.StrIngredient10, m.StrIngredient11, m.StrIngredient12,
		m.StrIngredient13, m.StrIngredient14, m.StrIngredient15, m.StrIngredient16,
		m.StrIngredient17, m.StrIngredient18, m.StrIngredient19, m.StrIngredient20,
	}
	measures := [maxIngredientSlots]string{
		m.StrMeasure1, m.StrMeasure2, m.StrMeasure3, m.StrMeasure4,
		m.StrMeasure5, m.StrMeasure6, m.StrMeasure7, m.StrMeasure8,
		m.StrMeasure9, m.StrMeasure10, m.StrMeasure11, m.StrMeasure12,
		m.StrMeasure13, m.StrMeasure14, m.StrMeasure15, m.StrMeasure16,
		m.StrMeasure17, m.StrMeasure18, m.StrMeasure19, m.StrMeasure20,
	}
	return ingredients[i], measures[i]
}

// isNullField reports whether a wire field should be treated as absent.
// The upstream data contains both empty strings and the literal "null".
func isNullField(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}

// ParseMeal flattens a wire meal into the domain recipe. Blank or "null"
// ingredient slots are dropped together with their measure, so the
// resulting Ingredients and Measures stay index-aligned and equal length.
// Tags are split on commas and trimmed.
func ParseMeal(m *Meal) (recipe.Recipe, error) {
	if m.IDMeal == "" {
		return recipe.Recipe{}, fmt.Errorf("meal has no idMeal")
	}

	ingredients := make([]string, 0, maxIngredientSlots)
	measures := make([]string, 0, maxIngredientSlots)
	for i := range maxIngredientSlots {
		ing, measure := m.ingredientSlot(i)
		ing = strings.TrimSpace(ing)
		measure = strings.TrimSpace(measure)
		if isNullField(ing) {
			continue
		}
		ingredients = append(ingredients, ing)
		if isNullField(measure) {
			measure = ""
		}
		measures = append(measures, measure)
	}

	var tags []string
	for _, tag := range strings.Split(m.StrTags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return recipe.Recipe{
		MealID:       m.IDMeal,
		Name:         m.StrMeal,
		Category:     m.StrCategory,
		Area:         m.StrArea,
		Instructions: m.StrInstructs,
		ImageURL:     m.StrMealThumb,
		YoutubeURL:   m.StrYoutube,
		Ingredients:  ingredients,
		Measures:     measures,
		Tags:         tags,
	}, nil
}
