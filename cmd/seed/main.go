package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"demo/minimart/internal/config"
	"demo/minimart/internal/gen"
	"demo/minimart/internal/logger"
	"demo/minimart/internal/store"
)

var (
	configFile string
	count      int
	fake       bool
)

var rootCmd = &cobra.Command{
	Use:           "minimart-seed",
	Short:         "Creates the users table and fills it with sample users",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "Configuration file.")
	rootCmd.Flags().IntVar(&count, "count", 25, "Number of users to insert.")
	rootCmd.Flags().BoolVar(&fake, "fake", false,
		`Use random usernames instead of "User 1", "User 2", ...`)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	if err := store.Migrate(cfg.DB.DSN); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	log.Info().Msg("'users' table ensured")

	pool, err := pgxpool.New(ctx, cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	names := gen.SequentialNames(count)
	if fake {
		gen.SeedOnce()
		names = gen.FakeNames(count)
	}

	n, err := store.New(pool).InsertUsers(ctx, names)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Info().Int64("inserted", n).Bool("fake", fake).Msg("seeding completed")
	return nil
}
