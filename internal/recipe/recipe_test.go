package recipe

import (
	"reflect"
	"testing"
)

func TestPairedIngredients(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		want   []IngredientLine
	}{
		{
			name: "aligned lists",
			recipe: Recipe{
				Ingredients: []string{"soy sauce", "water"},
				Measures:    []string{"3/4 cup", "1/2 cup"},
			},
			want: []IngredientLine{
				{Ingredient: "soy sauce", Measure: "3/4 cup"},
				{Ingredient: "water", Measure: "1/2 cup"},
			},
		},
		{
			name:   "empty",
			recipe: Recipe{},
			want:   []IngredientLine{},
		},
		{
			name: "uneven lists truncate to shorter",
			recipe: Recipe{
				Ingredients: []string{"rice", "sesame seed"},
				Measures:    []string{"2 cups"},
			},
			want: []IngredientLine{
				{Ingredient: "rice", Measure: "2 cups"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.recipe.PairedIngredients()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PairedIngredients() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstructionSteps(t *testing.T) {
	r := Recipe{Instructions: "Preheat oven to 350.\r\n\r\nCombine ingredients.\r\nBake 30 minutes."}
	got := r.InstructionSteps()
	want := []string{"Preheat oven to 350.", "Combine ingredients.", "Bake 30 minutes."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InstructionSteps() = %v, want %v", got, want)
	}

	if steps := (Recipe{}).InstructionSteps(); steps != nil {
		t.Errorf("expected nil steps for empty instructions, got %v", steps)
	}
}

func TestHasIngredient(t *testing.T) {
	r := Recipe{Ingredients: []string{"Chicken Breasts", "Soy Sauce"}}

	if !r.HasIngredient("chicken") {
		t.Error("expected match for lowercase substring")
	}
	if !r.HasIngredient("Soy Sauce") {
		t.Error("expected match for exact name")
	}
	if r.HasIngredient("beef") {
		t.Error("unexpected match for absent ingredient")
	}
}
