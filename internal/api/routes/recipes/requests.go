package recipes

import (
	"errors"
	"strconv"

	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/recommend"
)

const (
	defaultLimit = 6
	maxLimit     = 50
)

type (
	recipeID string
	limit    string
)

func (r recipeID) Validate() error {
	v, err := strconv.ParseInt(string(r), 10, 64)
	if err != nil {
		return errors.New("expected an integer")
	}
	if v < 0 {
		return errors.New("recipe id should be non-negative")
	}
	return nil
}

// Value parses the limit, clamping to [1, maxLimit] and defaulting when
// absent.
func (l limit) Value() (int, error) {
	if l == "" {
		return defaultLimit, nil
	}
	v, err := strconv.Atoi(string(l))
	if err != nil {
		return 0, errors.New("expected an integer")
	}
	if v < 1 {
		return 0, errors.New("limit should be positive")
	}
	return min(v, maxLimit), nil
}

// searchMode maps the query parameter onto a store search mode,
// defaulting to an all-fields search.
func searchMode(raw string) (database.SearchMode, error) {
	if raw == "" {
		return database.SearchAll, nil
	}
	mode := database.SearchMode(raw)
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

type SetFavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

type RecommendationsRequest struct {
	Preferences recommend.Preferences `json:"preferences"`
	Limit       int                   `json:"limit" validate:"omitempty,min=1,max=50"`
}
