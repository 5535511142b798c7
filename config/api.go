package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths: menu browsing and GraphQL are read-only, no auth
	return []string{"/api/menu", "/api/menu/:sku", "/api/menu/:sku/options", "/menu/search", "/graphql"}
}
