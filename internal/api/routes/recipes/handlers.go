// Package recipes contains handlers for the recipes endpoints.
package recipes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apiError "github.com/mealdex/mealdex/internal/api/error"
	"github.com/mealdex/mealdex/internal/api/requestid"
	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/env"
	jsonx "github.com/mealdex/mealdex/internal/json"
	"github.com/mealdex/mealdex/internal/metrics"
	"github.com/mealdex/mealdex/internal/recipe"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func encodeJSON(e *env.Env, w http.ResponseWriter, requestID string, payload any) {
	resp, err := json.Marshal(payload)
	if err != nil {
		e.Logger.Error("failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		e.Logger.Error("failed to write response", slog.Any("error", err))
	}
}

// HandleSearchRecipes godoc
//
//	@Summary		Search recipes.
//	@Description	Searches stored recipes by substring match and pads short
//	@Description	results with recently synced recipes.
//	@Tags			Recipes
//	@Produce		json
//
//	@Param			q		query		string	false	"Search text"
//	@Param			mode	query		string	false	"Search mode: all, name, ingredient, category, area, letter"
//	@Param			limit	query		int		false	"Maximum results (default 6, max 50)"
//
//	@Success		200		{object}	SearchRecipesResponse
//	@Failure		400		{object}	apiError.Error	"Bad request"
//	@Failure		503		{object}	apiError.Error	"Store unavailable"
//	@Router			/api/recipes [GET]
func HandleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Read request
	query := r.URL.Query().Get("q")
	mode, err := searchMode(r.URL.Query().Get("mode"))
	if err != nil {
		env.Logger.ErrorContext(ctx, "invalid search mode", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid search mode", requestID)
		return
	}
	n, err := limit(r.URL.Query().Get("limit")).Value()
	if err != nil {
		env.Logger.ErrorContext(ctx, "invalid limit", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid limit", requestID)
		return
	}
	metrics.Searches.WithLabelValues(string(mode)).Inc()

	// Search
	env.Logger.DebugContext(ctx, "searching recipes",
		slog.String("query", query), slog.String("mode", string(mode)))
	results, err := env.Recommend.SearchAndRecommend(ctx, query, mode, n)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to search recipes", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "search failed", requestID)
		return
	}
	if results == nil {
		results = []recipe.Recipe{} // keep the JSON array non-null
	}

	encodeJSON(env, w, requestID, SearchRecipesResponse{Recipes: results})
}

// HandleGetRecipe godoc
//
//	@Summary	Get one recipe with paired ingredients and steps.
//	@Tags		Recipes
//	@Produce	json
//
//	@Param		recipeID	path		string	true	"Recipe ID"
//
//	@Success	200			{object}	GetRecipeResponse
//	@Failure	400			{object}	apiError.Error	"Bad request"
//	@Failure	404			{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Read request
	id := recipeID(chi.URLParam(r, "recipeID"))
	if err := id.Validate(); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}
	recipeIDInt, _ := strconv.ParseInt(string(id), 10, 64)

	// Fetch recipe
	env.Logger.DebugContext(ctx, "fetching recipe", slog.Int64("recipe_id", recipeIDInt))
	stored, err := env.Database.GetRecipe(ctx, recipeIDInt)
	if errors.Is(err, database.ErrRecipeNotFound) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}

	encodeJSON(env, w, requestID, GetRecipeResponse{
		Recipe:          stored,
		IngredientLines: stored.PairedIngredients(),
		Steps:           stored.InstructionSteps(),
	})
}

// HandleSimilarRecipes godoc
//
//	@Summary	Recipes similar to the given one.
//	@Tags		Recipes
//	@Produce	json
//
//	@Param		recipeID	path		string	true	"Recipe ID"
//	@Param		limit		query		int		false	"Maximum results"
//
//	@Success	200			{object}	SimilarRecipesResponse
//	@Failure	404			{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID}/similar [GET]
func HandleSimilarRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Read request
	id := recipeID(chi.URLParam(r, "recipeID"))
	if err := id.Validate(); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}
	recipeIDInt, _ := strconv.ParseInt(string(id), 10, 64)
	n, err := limit(r.URL.Query().Get("limit")).Value()
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid limit", requestID)
		return
	}

	// Fetch base recipe
	base, err := env.Database.GetRecipe(ctx, recipeIDInt)
	if errors.Is(err, database.ErrRecipeNotFound) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}

	// Rank similar recipes
	env.Logger.DebugContext(ctx, "ranking similar recipes", slog.Int64("recipe_id", base.ID))
	similar, err := env.Recommend.Similar(ctx, base, n)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to rank similar recipes", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}

	encodeJSON(env, w, requestID, SimilarRecipesResponse{Recipes: similar})
}

// HandleTrendingRecipes godoc
//
//	@Summary	Recently added recipes.
//	@Tags		Recipes
//	@Produce	json
//
//	@Param		limit	query		int	false	"Maximum results"
//
//	@Success	200		{object}	SearchRecipesResponse
//	@Router		/api/recipes/trending [GET]
func HandleTrendingRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	n, err := limit(r.URL.Query().Get("limit")).Value()
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid limit", requestID)
		return
	}

	trending, err := env.Recommend.Trending(ctx, n)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch trending recipes", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}

	encodeJSON(env, w, requestID, SearchRecipesResponse{Recipes: trending})
}

// HandleSetFavorite godoc
//
//	@Summary	Set or clear the favorite flag on a recipe.
//	@Tags		Recipes
//	@Accept		json
//
//	@Param		recipeID	path	string				true	"Recipe ID"
//	@Param		request		body	SetFavoriteRequest	true	"Favorite flag"
//
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Bad request"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID}/favorite [POST]
func HandleSetFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Read request
	id := recipeID(chi.URLParam(r, "recipeID"))
	if err := id.Validate(); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}
	recipeIDInt, _ := strconv.ParseInt(string(id), 10, 64)

	var request SetFavoriteRequest
	if err := jsonx.DecodeJSON(&request, json.NewDecoder(r.Body)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}

	// Update flag
	env.Logger.DebugContext(ctx, "setting favorite flag",
		slog.Int64("recipe_id", recipeIDInt), slog.Bool("favorite", *request.Favorite))
	err := env.Database.SetFavorite(ctx, recipeIDInt, *request.Favorite)
	if errors.Is(err, database.ErrRecipeNotFound) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to set favorite", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRecommendations godoc
//
//	@Summary		Personalized recipe recommendations.
//	@Description	Mixes picks from preferred categories and ingredients,
//	@Description	padded with recently synced recipes.
//	@Tags			Recipes
//	@Accept			json
//	@Produce		json
//
//	@Param			request	body		RecommendationsRequest	true	"Preferences"
//
//	@Success		200		{object}	RecommendationsResponse
//	@Failure		400		{object}	apiError.Error	"Bad request"
//	@Router			/api/recommendations [POST]
func HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Read request
	var request RecommendationsRequest
	if err := jsonx.DecodeJSON(&request, json.NewDecoder(r.Body)); err != nil {
		env.Logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "failed to validate request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "bad request", requestID)
		return
	}

	// Rank recommendations
	env.Logger.DebugContext(ctx, "generating personalized recommendations")
	picks, err := env.Recommend.Personalized(ctx, request.Preferences, request.Limit)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to generate recommendations", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}

	encodeJSON(env, w, requestID, RecommendationsResponse{Recipes: picks})
}
