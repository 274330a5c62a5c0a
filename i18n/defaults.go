package i18n

// DefaultLocale is used when no locale is configured or requested.
const DefaultLocale = "en"

// Scope names used by the storefront widgets. The currency scope maps
// currency codes to display symbols.
const (
	ScopeProduct        = "product"
	ScopeCart           = "cart"
	ScopeCheckoutButton = "checkoutButton"
	ScopeCurrency       = "currency"
)

// defaultBundle holds the built-in English tables. They double as the
// fallback for every other locale, so a partial translation still renders.
var defaultBundle = Bundle{
	ScopeProduct: {
		"name":       {Text: "{localizedName}"},
		"price":      {Text: "{localizedCurrency}{price}"},
		"quantity":   {Text: "Quantity"},
		"addToCart":  {Text: "Add to cart"},
		"outOfStock": {Component: "strong", Text: "Out of stock", Props: map[string]interface{}{"class": "out-of-stock"}},
	},
	ScopeCart: {
		"title":     {Text: "Cart"},
		"empty":     {Text: "Your cart is empty"},
		"product":   {Text: "{localizedName}"},
		"quantity":  {Text: "Quantity: {quantity}"},
		"price":     {Text: "{localizedCurrency}{price}"},
		"lineTotal": {Text: "{currency}{total}"},
		"remove":    {Text: "Remove"},
		"items":     {Text: "{count, plural, =0 {No items} one {# item} other {# items}}"},
	},
	ScopeCheckoutButton: {
		"checkout":   {Text: "Checkout"},
		"totalValue": {Text: "{currency}{total, plural, =0 {0} other {#}}"},
	},
	ScopeCurrency: {
		"USD": {Text: "$"},
		"EUR": {Text: "€"},
		"GBP": {Text: "£"},
		"PLN": {Text: "zł"},
	},
}

// DefaultTable returns the built-in table for scope.
func DefaultTable(scope string) Table {
	return defaultBundle[scope]
}

// CurrencySymbol returns the display symbol for a currency code in locale.
// Unknown codes come back unchanged, which is the missing-template fallback.
func CurrencySymbol(locale, code string) string {
	return ResolverFor(locale, ScopeCurrency).Text(code, nil)
}
