// Package api sets up and starts the HTTP server with routing,
// middleware, and Swagger documentation.
package api

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/mealdex/mealdex/docs"
	"github.com/mealdex/mealdex/internal/api/middleware"
	"github.com/mealdex/mealdex/internal/api/routes/meta"
	"github.com/mealdex/mealdex/internal/api/routes/ping"
	"github.com/mealdex/mealdex/internal/api/routes/recipes"
	"github.com/mealdex/mealdex/internal/api/routes/syncjob"
	"github.com/mealdex/mealdex/internal/env"
	"github.com/mealdex/mealdex/internal/metrics"
	"github.com/mealdex/mealdex/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	apiRequestsPerMinute  = 120
	syncRequestsPerMinute = 6
)

func addDocs(r *chi.Mux, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router *chi.Mux) {
	router.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(apiRequestsPerMinute, time.Minute))

		r.Get("/ping", ping.HandlePing)

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleSearchRecipes)
			r.Get("/trending", recipes.HandleTrendingRecipes)
			r.Get("/{recipeID}", recipes.HandleGetRecipe)
			r.Get("/{recipeID}/similar", recipes.HandleSimilarRecipes)
			r.Post("/{recipeID}/favorite", recipes.HandleSetFavorite)
		})
		r.Post("/recommendations", recipes.HandleRecommendations)

		r.Get("/categories", meta.HandleCategories)
		r.Get("/areas", meta.HandleAreas)
		r.Get("/ingredients", meta.HandleIngredients)
		r.Get("/stats", meta.HandleStats)

		// Sync fans out to the upstream catalog, so keep the cap low.
		r.With(httprate.LimitByIP(syncRequestsPerMinute, time.Minute)).
			Post("/sync", syncjob.HandleSync)
	})

	router.Handle("/metrics", metrics.Handler())
	router.Mount("/", web.Routes())
}

// Start godoc
//
//	@title						Mealdex API
//	@version					1.0
//	@description				Recipe search and recommendation service backed by TheMealDB.
//
//	@host						localhost:8080
//	@BasePath					/api
func Start(environment *env.Env) error {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(environment.Logger))
	router.Use(middleware.InjectEnv(environment))
	router.Use(middleware.AddCors)

	addRoutes(router)
	serverAddr := fmt.Sprintf("0.0.0.0:%d", environment.Config.Server.Port)
	addDocs(router, serverAddr)

	environment.Logger.Info(fmt.Sprintf("Listening at %s", serverAddr))
	environment.Logger.Info(fmt.Sprintf("Swagger UI available at http://%s/api/swagger/index.html", serverAddr))
	return http.ListenAndServe(fmt.Sprintf(":%d", environment.Config.Server.Port), router)
}
