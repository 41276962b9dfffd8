package database

import (
	"errors"
	"testing"
)

func TestSearchModeValidate(t *testing.T) {
	valid := []SearchMode{SearchAll, SearchName, SearchIngredient, SearchCategory, SearchArea, SearchLetter}
	for _, m := range valid {
		if err := m.Validate(); err != nil {
			t.Errorf("expected %q to be valid, got %v", m, err)
		}
	}

	for _, m := range []SearchMode{"", "title", "first_letter"} {
		if err := SearchMode(m).Validate(); err == nil {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &StoreError{Op: "search recipes", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected StoreError to unwrap to inner error")
	}

	var storeErr *StoreError
	if !errors.As(error(err), &storeErr) {
		t.Error("expected errors.As to match StoreError")
	}
}
