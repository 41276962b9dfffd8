// Package syncjob contains the handler that triggers catalog syncs.
package syncjob

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	apiError "github.com/mealdex/mealdex/internal/api/error"
	"github.com/mealdex/mealdex/internal/api/requestid"
	"github.com/mealdex/mealdex/internal/env"
	jsonx "github.com/mealdex/mealdex/internal/json"
	"github.com/mealdex/mealdex/internal/metrics"
	"github.com/mealdex/mealdex/internal/sync"

	"github.com/go-playground/validator/v10"
)

type SyncRequest struct {
	// Mode selects the run: quick, daily, smart, category or area.
	Mode     string `json:"mode" validate:"required,oneof=quick daily smart category area"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=100"`
	Strategy string `json:"strategy" validate:"omitempty,oneof=random category area"`
	Category string `json:"category" validate:"required_if=Mode category"`
	Area     string `json:"area" validate:"required_if=Mode area"`
}

type SyncResponse struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

const defaultCount = 10

// HandleSync godoc
//
//	@Summary		Pull recipes from the upstream catalog into the store.
//	@Description	Runs one sync pass. Quick pulls random meals, daily follows
//	@Description	a strategy, smart sizes the run from the current row count,
//	@Description	and category/area pull one scope.
//	@Tags			Sync
//	@Accept			json
//	@Produce		json
//
//	@Param			request	body		SyncRequest	true	"Sync parameters"
//
//	@Success		200		{object}	SyncResponse
//	@Failure		400		{object}	apiError.Error	"Bad request"
//	@Failure		502		{object}	apiError.Error	"Upstream unavailable"
//	@Router			/api/sync [POST]
func HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Read request
	var request SyncRequest
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
	count := request.Count
	if count == 0 {
		count = defaultCount
	}

	// Run sync
	env.Logger.DebugContext(ctx, "starting sync run",
		slog.String("mode", request.Mode), slog.Int("count", count))
	service := sync.New(env.MealDB, env.Database, env.Logger)
	var (
		stats sync.Stats
		err   error
	)
	switch request.Mode {
	case "quick":
		stats, err = service.Quick(ctx, count)
	case "daily":
		strategy := sync.Strategy(request.Strategy)
		if strategy == "" {
			strategy = sync.StrategyRandom
		}
		stats, err = service.Daily(ctx, count, strategy)
	case "smart":
		stats, err = service.Smart(ctx)
	case "category":
		stats, err = service.Category(ctx, request.Category, count)
	case "area":
		stats, err = service.Area(ctx, request.Area, count)
	}
	if err != nil {
		env.Logger.ErrorContext(ctx, "sync run failed", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UpstreamUnavailable, "sync failed", requestID)
		return
	}
	metrics.ObserveSync(request.Mode, stats.Added, stats.Updated, stats.Failed)
	env.Logger.InfoContext(ctx, "sync run finished",
		slog.Int("added", stats.Added), slog.Int("updated", stats.Updated),
		slog.Int("failed", stats.Failed))

	resp, err := json.Marshal(SyncResponse(stats))
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
