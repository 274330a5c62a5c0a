package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries — stored in GlobalRegistry, locked after boot
	KeyRegistryCmd     = "registry:cmd"
	KeyRegistryCron    = "registry:cron"
	KeyRegistryAPI     = "registry:api"
	KeyRegistryRoutes  = "registry:routes"
	KeyRegistryGraphQL = "registry:graphql"
	KeyRegistryLocales = "registry:locales"
)
