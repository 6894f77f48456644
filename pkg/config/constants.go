package config

const (
	// EnvPrefix is empty because every tag spells its full variable name.
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvRedisURL  = "LUMINA_REDIS_URL"
	EnvRedisAddr = "LUMINA_REDIS_ADDR"
	EnvUseSQLite = "LUMINA_USE_SQLITE"

	EnvCatalogBaseURL = "LUMINA_CATALOG_BASE_URL"
	EnvOrderBaseURL   = "LUMINA_ORDER_BASE_URL"
	EnvAdminBaseURL   = "LUMINA_ADMIN_BASE_URL"
)
