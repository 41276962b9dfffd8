// Package recipe contains the recipe domain type and helpers.
package recipe

import (
	"strings"
	"time"
)

// Recipe is a stored recipe. MealID is the identifier assigned by the
// upstream data provider and is unique across stored recipes; ID is the
// local surrogate key.
//
// Ingredients and Measures are index-aligned: Ingredients[i] is measured
// by Measures[i]. Code constructing a Recipe must keep them equal length.
type Recipe struct {
	ID           int64     `json:"id"`
	MealID       string    `json:"meal_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Area         string    `json:"area"`
	Instructions string    `json:"instructions"`
	ImageURL     string    `json:"image_url"`
	YoutubeURL   string    `json:"youtube_url"`
	Ingredients  []string  `json:"ingredients"`
	Measures     []string  `json:"measures"`
	Tags         []string  `json:"tags"`
	IsFavorite   bool      `json:"is_favorite"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IngredientLine is one paired ingredient/measure entry for display.
type IngredientLine struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// PairedIngredients zips Ingredients with Measures. If the slices are
// uneven (which only happens with hand-written rows), the shorter length
// wins rather than panicking.
func (r Recipe) PairedIngredients() []IngredientLine {
	n := min(len(r.Ingredients), len(r.Measures))
	lines := make([]IngredientLine, 0, n)
	for i := range n {
		lines = append(lines, IngredientLine{
			Ingredient: r.Ingredients[i],
			Measure:    r.Measures[i],
		})
	}
	return lines
}

// InstructionSteps splits the instruction text into display steps on
// line breaks, dropping empty lines. The upstream provider uses \r\n.
func (r Recipe) InstructionSteps() []string {
	var steps []string
	for _, line := range strings.FieldsFunc(r.Instructions, func(c rune) bool {
		return c == '\r' || c == '\n'
	}) {
		if s := strings.TrimSpace(line); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// HasIngredient reports whether any ingredient contains the given name,
// case-insensitively.
func (r Recipe) HasIngredient(name string) bool {
	name = strings.ToLower(name)
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), name) {
			return true
		}
	}
	return false
}
