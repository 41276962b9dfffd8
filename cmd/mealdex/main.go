package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealdex/mealdex/internal/api"
	"github.com/mealdex/mealdex/internal/config"
	"github.com/mealdex/mealdex/internal/database"
	"github.com/mealdex/mealdex/internal/env"
	httpx "github.com/mealdex/mealdex/internal/http"
	"github.com/mealdex/mealdex/internal/log"
	"github.com/mealdex/mealdex/internal/mealdb"
	"github.com/mealdex/mealdex/internal/metrics"
	"github.com/mealdex/mealdex/internal/recommend"
	syncsvc "github.com/mealdex/mealdex/internal/sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

const setupTimeout = 30 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "mealdex",
		Short:         "Recipe search and recommendation service backed by TheMealDB",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(syncCmd())
	root.AddCommand(adminCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setupEnv wires the shared dependencies. The returned closer releases
// the database pool.
func setupEnv(ctx context.Context) (*env.Env, func(), error) {
	logger := log.New(nil)

	conf, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	httpConfig := httpx.DefaultConfig()
	httpConfig.Logger = logger
	source := mealdb.New(conf.MealDB.BaseURL, httpx.New(httpConfig))

	setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	pool, err := pgxpool.New(setupCtx, conf.Database.URL())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	db := database.NewDatabase(pool)

	logger.DebugContext(ctx, "ensuring schema")
	if err := db.EnsureSchema(setupCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	e := &env.Env{
		Logger:    logger,
		Database:  db,
		MealDB:    source,
		Recommend: recommend.New(db, logger),
		Config:    conf,
	}
	return e, pool.Close, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closer, err := setupEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer closer()

			if err := api.Start(e); err != nil {
				e.Logger.Error("API failed", slog.Any("error", err))
				return err
			}
			return nil
		},
	}
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull recipes from the upstream catalog into the store",
	}
	cmd.AddCommand(syncQuickCmd())
	cmd.AddCommand(syncDailyCmd())
	cmd.AddCommand(syncSmartCmd())
	cmd.AddCommand(syncScopeCmd("category"))
	cmd.AddCommand(syncScopeCmd("area"))
	return cmd
}

func runSync(cmd *cobra.Command, mode string, run func(ctx context.Context, s *syncsvc.Service) (syncsvc.Stats, error)) error {
	ctx := cmd.Context()
	e, closer, err := setupEnv(ctx)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := run(ctx, syncsvc.New(e.MealDB, e.Database, e.Logger))
	if err != nil {
		return err
	}
	metrics.ObserveSync(mode, stats.Added, stats.Updated, stats.Failed)

	fmt.Printf("Synced %d recipes (%d added, %d updated, %d failed)\n",
		stats.Total(), stats.Added, stats.Updated, stats.Failed)
	return nil
}

func syncQuickCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Pull a handful of random recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, "quick", func(ctx context.Context, s *syncsvc.Service) (syncsvc.Stats, error) {
				return s.Quick(ctx, count)
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of random recipes to pull")
	return cmd
}

func syncDailyCmd() *cobra.Command {
	var (
		count    int
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Run the scheduled sync with a strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, "daily", func(ctx context.Context, s *syncsvc.Service) (syncsvc.Stats, error) {
				return s.Daily(ctx, count, syncsvc.Strategy(strategy))
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 20, "number of recipes to pull")
	cmd.Flags().StringVar(&strategy, "strategy", string(syncsvc.StrategyRandom), "random, category or area")
	return cmd
}

func syncSmartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smart",
		Short: "Size the sync from the current catalog size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, "smart", func(ctx context.Context, s *syncsvc.Service) (syncsvc.Stats, error) {
				return s.Smart(ctx)
			})
		},
	}
}

func syncScopeCmd(scope string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   scope + " [name]",
		Short: "Pull recipes from one " + scope,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, scope, func(ctx context.Context, s *syncsvc.Service) (syncsvc.Stats, error) {
				if scope == "category" {
					return s.Category(ctx, args[0], limit)
				}
				return s.Area(ctx, args[0], limit)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum recipes to pull")
	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect and maintain the recipe store",
	}
	cmd.AddCommand(adminStatsCmd())
	cmd.AddCommand(adminClearCmd())
	cmd.AddCommand(adminProbeCmd())
	return cmd
}

func adminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print catalog size and coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, closer, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer closer()

			count, err := e.Database.CountRecipes(ctx)
			if err != nil {
				return err
			}
			categories, err := e.Database.ListCategories(ctx)
			if err != nil {
				return err
			}
			areas, err := e.Database.ListAreas(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Recipes:    %d\n", count)
			fmt.Printf("Categories: %d\n", len(categories))
			fmt.Printf("Areas:      %d\n", len(areas))
			return nil
		},
	}
}

func adminClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the store without --yes")
			}
			ctx := cmd.Context()
			e, closer, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer closer()

			deleted, err := e.Database.DeleteAllRecipes(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d recipes\n", deleted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func adminProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check database and upstream connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, closer, err := setupEnv(ctx)
			if err != nil {
				return err
			}
			defer closer()

			count, err := e.Database.CountRecipes(ctx)
			if err != nil {
				return fmt.Errorf("database probe: %w", err)
			}
			fmt.Printf("Database OK (%d recipes)\n", count)

			meal, err := e.MealDB.Random(ctx)
			if err != nil {
				return fmt.Errorf("upstream probe: %w", err)
			}
			if meal == nil {
				return fmt.Errorf("upstream probe: empty response")
			}
			fmt.Printf("Upstream OK (random meal: %s)\n", meal.StrMeal)
			return nil
		},
	}
}
