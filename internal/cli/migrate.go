package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"survey-service/internal/config"
	"survey-service/internal/infra/files"
	pgstore "survey-service/internal/infra/postgres"
	pgmigrations "survey-service/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and optionally seeds surveys.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "upsert the surveys found in surveys.dir into postgres")
	return cmd
}

func runMigrations(ctx context.Context, configPath string, seed bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	if !seed {
		return nil
	}
	return seedSurveys(ctx, cfg)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		slog.Info("no new migrations")
		return nil
	}
	slog.Info("migrations applied", "group", group.String())
	return nil
}

func seedSurveys(ctx context.Context, cfg config.Config) error {
	dir, err := files.LoadDir(cfg.Surveys.Dir)
	if err != nil {
		return err
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	loader := pgstore.NewSurveyLoader(pool)
	surveys := dir.Surveys()
	for _, survey := range surveys {
		if err := loader.SaveSurvey(ctx, survey); err != nil {
			return err
		}
	}
	slog.Info("surveys seeded", "count", len(surveys), "dir", cfg.Surveys.Dir)
	return nil
}
