package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ougirez/eracalc/internal/pkg/config"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	dataDir    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eracalc",
		Short: "Era of Change game-master calculator",
		Long: `Settles caravans against country markets and converts resources
through plant formulas, either as an HTTP service for the console or
offline against a directory of YAML reference data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configFile); err != nil {
				return err
			}
			return logger.Init(viper.GetString(constants.ViperLogLevel), viper.GetBool(constants.ViperLogDevelopment))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Path to YAML reference data directory (overrides catalog.dir)")

	rootCmd.AddCommand(
		newServeCmd(),
		newSettleCmd(),
		newConvertCmd(),
		newPlantsCmd(),
		newImportCmd(),
		newTokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func catalogDir() string {
	if dataDir != "" {
		return dataDir
	}
	return viper.GetString(constants.ViperCatalogDir)
}

func mustNotEmpty(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
