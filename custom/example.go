// Package custom is the extension example: registering a CLI command, a
// cron job, a public route, a GraphQL extension and a locale bundle from
// init(), the way site-specific packages plug into the storefront.
package custom

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"storefront.GO/api"
	"storefront.GO/cmd"
	"storefront.GO/cron"
	gqlregistry "storefront.GO/graphql/registry"
	"storefront.GO/i18n"
)

func init() {
	// GraphQL extension
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println("Hello from custom command")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1m", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"pong": "ok"})
	})

	// Locale bundle: German storefront strings. Ids not translated here
	// fall back to the built-in English tables.
	i18n.Register("de", i18n.Bundle{
		i18n.ScopeCart: i18n.Table{
			"title": {Text: "Warenkorb"},
			"empty": {Text: "Ihr Warenkorb ist leer"},
			"items": {Text: "{count, plural, =0 {Keine Artikel} one {# Artikel} other {# Artikel}}"},
		},
		i18n.ScopeCheckoutButton: i18n.Table{
			"checkout": {Text: "Zur Kasse"},
		},
	})
}
