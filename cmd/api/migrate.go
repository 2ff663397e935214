package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/medidesk-api/internal/config"
	"github.com/jwalitptl/medidesk-api/internal/migrate"
	"github.com/jwalitptl/medidesk-api/internal/repository/postgres"
	"github.com/jwalitptl/medidesk-api/pkg/security"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations and seed the first admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, cfg *config.Config, db *sqlx.DB) error {
				n, err := migrate.NewMigrator(db, migrate.Embedded(), log.Logger).Up(ctx)
				if err != nil {
					return err
				}
				log.Info().Int("applied", n).Msg("migrations complete")

				users := postgres.NewUserRepository(db, nil)
				hasher := security.NewBcryptHasher(security.DefaultCost)
				return migrate.NewBootstrapper(users, hasher, log.Logger).
					Run(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), func(ctx context.Context, _ *config.Config, db *sqlx.DB) error {
				statuses, err := migrate.NewMigrator(db, migrate.Embedded(), log.Logger).Status(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED\tAPPLIED AT")
				for _, s := range statuses {
					at := "-"
					if s.AppliedAt != nil {
						at = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%03d\t%s\t%t\t%s\n", s.Version, s.Name, s.Applied, at)
				}
				return w.Flush()
			})
		},
	})

	return cmd
}

func withDB(ctx context.Context, fn func(context.Context, *config.Config, *sqlx.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(ctx, cfg, db)
}
