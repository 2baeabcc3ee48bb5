package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hancock/internal/authn"
	"github.com/dropDatabas3/hancock/internal/authn/google"
	"github.com/dropDatabas3/hancock/internal/authz"
	"github.com/dropDatabas3/hancock/internal/cache"
	memcache "github.com/dropDatabas3/hancock/internal/cache/memory"
	rediscache "github.com/dropDatabas3/hancock/internal/cache/redis"
	"github.com/dropDatabas3/hancock/internal/config"
	"github.com/dropDatabas3/hancock/internal/database"
	"github.com/dropDatabas3/hancock/internal/health"
	httpserver "github.com/dropDatabas3/hancock/internal/http"
	"github.com/dropDatabas3/hancock/internal/http/handlers"
	"github.com/dropDatabas3/hancock/internal/http/middlewares"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
	"github.com/dropDatabas3/hancock/internal/security/secretbox"
	"github.com/dropDatabas3/hancock/internal/users"
	"github.com/dropDatabas3/hancock/internal/users/pg"
	migrations "github.com/dropDatabas3/hancock/migrations/postgres"
)

func main() {
	_ = godotenv.Load(".env")

	var configPath string

	root := &cobra.Command{
		Use:           "hancock",
		Short:         "Federated authentication service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(encCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.L()

	pool, err := database.NewPool(ctx, database.Config{
		DSN:             cfg.Storage.DSN,
		MaxConns:        int32(cfg.Storage.MaxOpenConns),
		MinConns:        int32(cfg.Storage.MinConns),
		ConnMaxLifetime: config.Duration(cfg.Storage.ConnMaxLifetime),
	})
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	healthChecks := map[string]health.Checker{
		"database": database.NewHealthCheck(pool),
	}

	var store cache.Cache
	switch cfg.Cache.Kind {
	case "redis":
		redis := rediscache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
		defer func() { _ = redis.Close() }()
		healthChecks["cache"] = health.CheckerFunc(redis.Ping)
		store = redis
	default:
		store = memcache.New(config.Duration(cfg.Cache.Memory.DefaultTTL))
	}

	lookup := users.NewCachedLookup(pg.New(pool), store, config.Duration(cfg.Cache.UserTTL))

	providers := map[authn.ProviderID]authn.Provider{}
	if cfg.Providers.Google.Enabled {
		providers[google.ProviderName] = google.New(google.Config{
			ClientID:     cfg.Providers.Google.ClientID,
			ClientSecret: cfg.Providers.Google.ClientSecret,
			RedirectURL:  cfg.Providers.Google.RedirectURL,
			AuthURL:      cfg.Providers.Google.AuthURL,
			TokenURL:     cfg.Providers.Google.TokenURL,
		})
	}
	log.Info("providers registered", logger.Count(len(providers)))

	flow := authn.NewService(providers, lookup)
	contexts := authz.NewContextService(config.Duration(cfg.Authorization.Validity))
	tokens := authz.NewTokenService(cfg.Authorization.SigningSecret)

	metricsHandler, err := httpserver.RegisterMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Home: handlers.NewHome(),
		Authentication: handlers.NewAuthentication(
			flow, contexts, tokens,
			cfg.Authentication.NonceCookieName,
			config.Duration(cfg.Authentication.NonceCookieTTL),
		),
		Users:    handlers.NewUsers(lookup),
		Health:   handlers.NewHealth(health.NewService(healthChecks)),
		Metrics:  metricsHandler,
		UserAuth: middlewares.BearerAuth(tokens),
	})

	return httpserver.Start(ctx, cfg.Server.Addr, router)
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			defer func() { _ = logger.Sync() }()

			pool, err := database.NewPool(cmd.Context(), database.Config{DSN: cfg.Storage.DSN})
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer pool.Close()

			return database.Migrate(cmd.Context(), pool, migrations.FS)
		},
	}
}

func encCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enc [value]",
		Short: "Encrypt a config secret with SECRETBOX_MASTER_KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !secretbox.IsReady() {
				return fmt.Errorf("SECRETBOX_MASTER_KEY not set")
			}
			enc, err := secretbox.Encrypt(args[0])
			if err != nil {
				return fmt.Errorf("encrypt: %w", err)
			}
			// Paste this value as-is into the config file.
			fmt.Fprintln(cmd.OutOrStdout(), "enc:"+enc)
			return nil
		},
	}
}
