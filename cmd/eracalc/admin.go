package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/store"
	"github.com/ougirez/eracalc/internal/pkg/store/xpgx"
	"github.com/ougirez/eracalc/internal/service/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the YAML catalog into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := viper.GetString(constants.ViperPostgresDSN)
			if err := mustNotEmpty(constants.ViperPostgresDSN, dsn); err != nil {
				return err
			}

			ctx := cmd.Context()
			snap, err := loadSnapshot(ctx)
			if err != nil {
				return err
			}

			pool, err := xpgx.NewPool(ctx, dsn)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			defer pool.Close()

			db := store.NewStore(pool)
			if err := db.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if err := db.ImportCatalog(ctx, snap.Market(), snap.Countries(), snap.PlantLevels()); err != nil {
				return err
			}

			market := snap.Market()
			color.Green("Imported %d off-market and %d to-market listings, %d countries, %d plant levels",
				len(market.OffMarket), len(market.ToMarket), len(snap.Countries()), len(snap.PlantLevels()))
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var gameMaster string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token for a game master",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.NewAuthService(viper.GetString(constants.ViperSecretKey)).
				IssueGameMasterToken(cmd.Context(), gameMaster)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameMaster, "name", "", "Game master name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
