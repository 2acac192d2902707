package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"demo/minimart/internal/config"
	"demo/minimart/internal/httpapi"
	"demo/minimart/internal/logger"
	"demo/minimart/internal/metrics"
	"demo/minimart/internal/service"
	"demo/minimart/internal/store"
	"demo/minimart/internal/upstream"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "minimart-api",
	Short:         "Serves user lookups and relays order queries to the marketplace subgraph",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "",
		"Configuration file. Overridden by environment variables.")
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

	if cfg.DB.MigrateOnStart {
		if err := store.Migrate(cfg.DB.DSN); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
		log.Info().Msg("schema: up to date")
	}

	// DB pool
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("db config: %w", err)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	repo := store.New(pool)
	m := metrics.New()

	client, err := upstream.New(cfg.Upstream.URL,
		upstream.WithTimeout(cfg.Upstream.Timeout),
		upstream.WithMaxResponseBytes(cfg.Upstream.MaxResponseBytes),
		upstream.WithObserver(m),
	)
	if err != nil {
		return fmt.Errorf("upstream: %w", err)
	}

	handler := httpapi.NewRouter(httpapi.Deps{
		Service:     service.New(repo, client),
		Pinger:      repo,
		Metrics:     m,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("upstream", cfg.Upstream.URL).Msg("http: listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("http: shutdown")
	}
	log.Info().Msg("bye")
	return nil
}
