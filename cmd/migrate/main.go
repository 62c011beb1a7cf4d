package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumina/backend/internal/fallback"
	"github.com/lumina/backend/internal/logging"
	"github.com/lumina/backend/internal/repository"
)

const connectTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	logging.Setup(os.Getenv("LOG_LEVEL"))

	var dbURL string
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the bundled schema migrations",
		Long: `Apply the bundled schema migrations to DATABASE_URL.

Commands:
  (default)   apply pending migrations
  reset       drop every table, then apply all migrations
  seed        upsert the portfolio galleries bundled with the server`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnector(cmd.Context(), dbURL, runUp)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Drop every table and re-apply all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnector(cmd.Context(), dbURL, func(ctx context.Context, db *repository.Connector) error {
				slog.Info("dropping all tables")
				if err := repository.DropAll(ctx, db); err != nil {
					return fmt.Errorf("drop all: %w", err)
				}
				return runUp(ctx, db)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Upsert the bundled portfolio galleries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnector(cmd.Context(), dbURL, runSeed)
		},
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logging.Fatal("migrate failed", "error", err)
	}
}

func withConnector(ctx context.Context, dbURL string, fn func(context.Context, *repository.Connector) error) error {
	if dbURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	db := repository.NewConnector(dbURL, connectTimeout)
	defer db.Close()
	return fn(ctx, db)
}

func runUp(ctx context.Context, db *repository.Connector) error {
	applied, err := repository.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

func runSeed(ctx context.Context, db *repository.Connector) error {
	seed, err := fallback.LoadSeed(time.Now().UTC())
	if err != nil {
		return err
	}
	repo := repository.NewPgGalleryRepository(db)
	for _, g := range seed.Galleries {
		if err := repo.Upsert(ctx, g); err != nil {
			return fmt.Errorf("seed gallery %s: %w", g.Slug, err)
		}
		slog.Info("gallery seeded", "slug", g.Slug)
	}
	slog.Info("seed completed", "galleries", len(seed.Galleries))
	return nil
}
