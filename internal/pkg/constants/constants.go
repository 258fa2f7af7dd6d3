package constants

const (
	CookieKeySecretToken = "secret_token"
	HeaderRequestID      = "X-Request-Id"

	CtxKeyRequestID = "request_id"

	GoldIdentificator = "gold"
	GoldDefaultName   = "Gold"
)

// Viper keys.
const (
	ViperHTTPAddr        = "http.addr"
	ViperHTTPCorsOrigins = "http.cors_origins"

	ViperLogLevel       = "log.level"
	ViperLogDevelopment = "log.development"

	ViperPostgresDSN = "postgres.dsn"

	ViperCatalogSource          = "catalog.source"
	ViperCatalogDir             = "catalog.dir"
	ViperCatalogRefreshInterval = "catalog.refresh_interval"

	ViperBackendURL        = "backend.url"
	ViperBackendTimeout    = "backend.timeout"
	ViperBackendRPS        = "backend.rps"
	ViperBackendCacheTTL   = "backend.cache_ttl"
	ViperBackendMaxRetries = "backend.max_retries"

	ViperSecretKey = "auth.secret"
)

const (
	CatalogSourceBackend  = "backend"
	CatalogSourcePostgres = "postgres"
	CatalogSourceFile     = "file"
)
