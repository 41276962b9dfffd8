// Package meta contains handlers for catalog metadata endpoints.
package meta

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	apiError "github.com/mealdex/mealdex/internal/api/error"
	"github.com/mealdex/mealdex/internal/api/requestid"
	"github.com/mealdex/mealdex/internal/env"
)

type ListResponse struct {
	Values []string `json:"values"`
}

type StatsResponse struct {
	Recipes    int64    `json:"recipes"`
	Categories []string `json:"categories"`
	Areas      []string `json:"areas"`
}

// HandleCategories godoc
//
//	@Summary	Distinct categories across stored recipes.
//	@Tags		Meta
//	@Produce	json
//
//	@Success	200	{object}	ListResponse
//	@Failure	503	{object}	apiError.Error	"Store unavailable"
//	@Router		/api/categories [GET]
func HandleCategories(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, func(e *env.Env, r *http.Request) ([]string, error) {
		return e.Database.ListCategories(r.Context())
	})
}

// HandleAreas godoc
//
//	@Summary	Distinct areas across stored recipes.
//	@Tags		Meta
//	@Produce	json
//
//	@Success	200	{object}	ListResponse
//	@Failure	503	{object}	apiError.Error	"Store unavailable"
//	@Router		/api/areas [GET]
func HandleAreas(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, func(e *env.Env, r *http.Request) ([]string, error) {
		return e.Database.ListAreas(r.Context())
	})
}

// HandleIngredients godoc
//
//	@Summary	Distinct ingredients across stored recipes.
//	@Tags		Meta
//	@Produce	json
//
//	@Success	200	{object}	ListResponse
//	@Failure	503	{object}	apiError.Error	"Store unavailable"
//	@Router		/api/ingredients [GET]
func HandleIngredients(w http.ResponseWriter, r *http.Request) {
	handleList(w, r, func(e *env.Env, r *http.Request) ([]string, error) {
		return e.Database.ListIngredients(r.Context())
	})
}

func handleList(w http.ResponseWriter, r *http.Request, list func(*env.Env, *http.Request) ([]string, error)) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	values, err := list(env, r)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list values", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}
	if values == nil {
		values = []string{}
	}

	resp, err := json.Marshal(ListResponse{Values: values})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// HandleStats godoc
//
//	@Summary	Catalog size and coverage.
//	@Tags		Meta
//	@Produce	json
//
//	@Success	200	{object}	StatsResponse
//	@Failure	503	{object}	apiError.Error	"Store unavailable"
//	@Router		/api/stats [GET]
func HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	count, err := env.Database.CountRecipes(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to count recipes", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}
	categories, err := env.Database.ListCategories(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list categories", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}
	areas, err := env.Database.ListAreas(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to list areas", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.StoreUnavailable, "store unavailable", requestID)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	if areas == nil {
		areas = []string{}
	}

	resp, err := json.Marshal(StatsResponse{Recipes: count, Categories: categories, Areas: areas})
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}
