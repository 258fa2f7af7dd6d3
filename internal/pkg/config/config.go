package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/spf13/viper"
)

const envPrefix = "ERACALC"

func setDefaults() {
	viper.SetDefault(constants.ViperHTTPAddr, ":8080")
	viper.SetDefault(constants.ViperHTTPCorsOrigins, []string{"http://localhost:3000"})
	viper.SetDefault(constants.ViperLogLevel, "info")
	viper.SetDefault(constants.ViperLogDevelopment, false)
	viper.SetDefault(constants.ViperPostgresDSN, "")
	viper.SetDefault(constants.ViperCatalogSource, constants.CatalogSourceBackend)
	viper.SetDefault(constants.ViperCatalogDir, "data")
	viper.SetDefault(constants.ViperCatalogRefreshInterval, 5*time.Minute)
	viper.SetDefault(constants.ViperBackendURL, "")
	viper.SetDefault(constants.ViperBackendTimeout, 10*time.Second)
	viper.SetDefault(constants.ViperBackendRPS, 5.0)
	viper.SetDefault(constants.ViperBackendCacheTTL, 30*time.Second)
	viper.SetDefault(constants.ViperBackendMaxRetries, 3)
	viper.SetDefault(constants.ViperSecretKey, "")
}

// Load fills the global viper instance: defaults, then the optional file at
// path, then ERACALC_* environment variables (dots become underscores).
// A missing file is not an error.
func Load(path string) error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return nil
}

// Validate checks that the selected catalog source has what it needs.
func Validate() error {
	switch source := viper.GetString(constants.ViperCatalogSource); source {
	case constants.CatalogSourceBackend:
		if viper.GetString(constants.ViperBackendURL) == "" {
			return fmt.Errorf("%s is required for catalog source %q", constants.ViperBackendURL, source)
		}
	case constants.CatalogSourcePostgres:
		if viper.GetString(constants.ViperPostgresDSN) == "" {
			return fmt.Errorf("%s is required for catalog source %q", constants.ViperPostgresDSN, source)
		}
	case constants.CatalogSourceFile:
	default:
		return fmt.Errorf("unknown catalog source %q", source)
	}

	return nil
}
