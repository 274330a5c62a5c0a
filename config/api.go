package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public storefront paths (catalog reads and the session cart need no auth)
	return []string{
		"/api/products", "/api/products/:id", "/api/products/:id/price",
		"/api/cart", "/api/cart/items", "/api/cart/items/*",
		"/api/cart/currency", "/api/cart/totals",
		"/api/search",
		"/graphql",
	}
}
