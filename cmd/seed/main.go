package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticketdesk/internal/config"
	"ticketdesk/internal/db"
	"ticketdesk/internal/logger"
	"ticketdesk/internal/repository"
	"ticketdesk/internal/seed"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		driver  string
		dsn     string
		reset   bool
		timeout time.Duration
	)

	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the ticket database with demo users and categories",
		Long: `Creates admin@example.com (admin123), user@example.com (user123) and the
default categories. Existing records are left untouched.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := logger.New(cfg.IsDev())

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			gormDB, err := db.Open(driver, dsn)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(gormDB) }()

			if reset {
				l.Warn().Msg("dropping all tables")
				if err := db.Reset(gormDB); err != nil {
					return err
				}
			}
			if err := db.Migrate(gormDB); err != nil {
				return err
			}

			seeder := seed.New(repository.NewUserRepository(gormDB), repository.NewCategoryRepository(gormDB), l)
			res, err := seeder.Run(ctx)
			if err != nil {
				return err
			}

			l.Info().
				Int("users_created", res.UsersCreated).
				Int("users_skipped", res.UsersSkipped).
				Int("categories_created", res.CategoriesCreated).
				Int("categories_skipped", res.CategoriesSkipped).
				Msg("seeding complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", cfg.DBDriver, "database driver (postgres or mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", cfg.DatabaseURL, "database connection string")
	cmd.Flags().BoolVar(&reset, "reset", cfg.ResetDB, "drop all tables before seeding")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall seeding timeout")

	return cmd
}
