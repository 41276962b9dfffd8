// Package web serves the browser UI on top of the same store and
// recommendation engine the JSON API uses.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/env"
	"github.com/mealdex/mealdex/internal/recipe"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	indexTmpl  = template.Must(template.ParseFS(templateFS, "templates/base.html.tmpl", "templates/index.html.tmpl"))
	recipeTmpl = template.Must(template.ParseFS(templateFS, "templates/base.html.tmpl", "templates/recipe.html.tmpl"))
)

const (
	searchPageSize  = 12
	similarPageSize = 4
)

// Routes returns the UI router. It expects the env-injection middleware
// to run before it.
func Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", handleIndex)
	r.Get("/recipes/{recipeID}", handleRecipe)
	return r
}

type indexData struct {
	Query   string
	Mode    string
	Modes   []string
	Recipes []recipe.Recipe
	Notice  string
}

type recipeData struct {
	Recipe          recipe.Recipe
	IngredientLines []recipe.IngredientLine
	Steps           []string
	Similar         []recipe.Recipe
}

// render buffers the template output so a template error never leaves a
// half-written page behind.
func render(w http.ResponseWriter, e *env.Env, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		e.Logger.Error("failed to render page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	data := indexData{
		Query: r.URL.Query().Get("q"),
		Mode:  r.URL.Query().Get("mode"),
		Modes: []string{
			string(database.SearchAll),
			string(database.SearchName),
			string(database.SearchIngredient),
			string(database.SearchCategory),
			string(database.SearchArea),
			string(database.SearchLetter),
		},
	}
	mode := database.SearchMode(data.Mode)
	if data.Mode == "" {
		mode = database.SearchAll
		data.Mode = string(mode)
	}
	if err := mode.Validate(); err != nil {
		data.Notice = "Unknown search mode."
		render(w, env, indexTmpl, data)
		return
	}

	results, err := env.Recommend.SearchAndRecommend(ctx, data.Query, mode, searchPageSize)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to search recipes", slog.Any("error", err))
		data.Notice = "The recipe store is unavailable right now. Try again in a moment."
	}
	data.Recipes = results

	render(w, env, indexTmpl, data)
}

func handleRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	stored, err := env.Database.GetRecipe(ctx, id)
	if errors.Is(err, database.ErrRecipeNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "failed to fetch recipe", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	// Similar picks are decoration, drop them on error.
	similar, err := env.Recommend.Similar(ctx, stored, similarPageSize)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to rank similar recipes", slog.Any("error", err))
		similar = nil
	}

	render(w, env, recipeTmpl, recipeData{
		Recipe:          stored,
		IngredientLines: stored.PairedIngredients(),
		Steps:           stored.InstructionSteps(),
		Similar:         similar,
	})
}
