package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"lightshop/pkg/catalog"
	"lightshop/pkg/catalog/file"
	"lightshop/pkg/catalog/postgres"
	"lightshop/pkg/config"
	"lightshop/pkg/logger"
)

func newCatalogCmd() *cobra.Command {
	var category string
	var seed bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the configured catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			sel, err := catalog.ParseSelection(category)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			if seed {
				if err := seedCatalog(cmd.Context(), cfg); err != nil {
					return err
				}
			}
			cat, closeCatalog, err := loadCatalog(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeCatalog()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cat.Filter(sel))
		},
	}
	cmd.Flags().StringVar(&category, "category", "all", "all, garland or decor")
	cmd.Flags().BoolVar(&seed, "seed", false, "insert the built-in products into the postgres catalog first")
	return cmd
}

// loadCatalog reads the configured feed. Any validation failure is returned
// and the caller must not start serving.
func loadCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) (*catalog.Catalog, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		c, err := catalog.Load(ctx, file.New(cfg.Catalog.File))
		return c, func() {}, err
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.Catalog.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		c, err := catalog.Load(ctx, postgres.New(db))
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return c, func() {
			if err := db.Close(); err != nil {
				log.Warn(ctx, "close catalog db", "error", err)
			}
		}, nil
	default:
		c, err := catalog.Load(ctx, catalog.Builtin{})
		return c, func() {}, err
	}
}

func seedCatalog(ctx context.Context, cfg *config.Config) error {
	if cfg.Catalog.Source != config.SourcePostgres {
		return fmt.Errorf("--seed needs the %q catalog source", config.SourcePostgres)
	}
	db, err := sql.Open("postgres", cfg.Catalog.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()
	products, err := catalog.Builtin{}.Load(ctx)
	if err != nil {
		return err
	}
	return postgres.Seed(ctx, db, products)
}
