package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/eracalc/internal/api"
	"github.com/ougirez/eracalc/internal/pkg/config"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/store"
	"github.com/ougirez/eracalc/internal/pkg/store/xpgx"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/ougirez/eracalc/internal/service/gamebackend"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataDir != "" {
				viper.Set(constants.ViperCatalogDir, dataDir)
			}
			if err := config.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx)
		},
	}
}

func newBackendClient() *gamebackend.Client {
	return gamebackend.NewClient(gamebackend.Config{
		BaseURL:    viper.GetString(constants.ViperBackendURL),
		Timeout:    viper.GetDuration(constants.ViperBackendTimeout),
		RPS:        viper.GetFloat64(constants.ViperBackendRPS),
		CacheTTL:   viper.GetDuration(constants.ViperBackendCacheTTL),
		MaxRetries: viper.GetUint64(constants.ViperBackendMaxRetries),
	})
}

func serve(ctx context.Context) error {
	deps := api.Dependencies{}

	var backend *gamebackend.Client
	if viper.GetString(constants.ViperBackendURL) != "" {
		backend = newBackendClient()
		deps.Backend = backend
	}

	var db store.Store
	if dsn := viper.GetString(constants.ViperPostgresDSN); dsn != "" {
		pool, err := xpgx.NewPool(ctx, dsn)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()

		db = store.NewStore(pool)
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		deps.Journal = db
	}

	var source catalog.Source
	switch viper.GetString(constants.ViperCatalogSource) {
	case constants.CatalogSourceBackend:
		source = backend
	case constants.CatalogSourcePostgres:
		source = db
	default:
		source = catalog.NewFileSource(viper.GetString(constants.ViperCatalogDir))
	}

	deps.Registry = catalog.NewRegistry(source)
	if _, err := deps.Registry.Load(ctx); err != nil {
		logger.Warnf(ctx, "initial catalog load failed, serving 503 until the next refresh: %s", err.Error())
	}

	refresher := catalog.NewRefresher(
		deps.Registry,
		viper.GetDuration(constants.ViperCatalogRefreshInterval),
		viper.GetUint64(constants.ViperBackendMaxRetries),
	)
	go refresher.Run(ctx)

	svc, err := api.NewAPIService(deps)
	if err != nil {
		return err
	}

	addr := viper.GetString(constants.ViperHTTPAddr)
	go svc.Serve(addr)
	logger.Infof(ctx, "listening on %s", addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return svc.Shutdown(shutdownCtx)
}
