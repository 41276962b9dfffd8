// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecipesSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealdex_recipes_synced_total",
		Help: "Recipes written during sync runs, by outcome.",
	}, []string{"outcome"}) // added, updated, failed

	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealdex_sync_runs_total",
		Help: "Completed sync runs by strategy.",
	}, []string{"strategy"})

	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealdex_searches_total",
		Help: "Recipe searches by mode.",
	}, []string{"mode"})
)

// ObserveSync folds one sync run into the counters.
func ObserveSync(strategy string, added, updated, failed int) {
	SyncRuns.WithLabelValues(strategy).Inc()
	RecipesSynced.WithLabelValues("added").Add(float64(added))
	RecipesSynced.WithLabelValues("updated").Add(float64(updated))
	RecipesSynced.WithLabelValues("failed").Add(float64(failed))
}

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
