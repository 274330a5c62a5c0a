package html

import (
	"html/template"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	cartApi "storefront.GO/api/cart"
	storecart "storefront.GO/cart"
	"storefront.GO/config"
	"storefront.GO/html/parts"
	"storefront.GO/i18n"
	cartRepo "storefront.GO/model/repository/cart"
	sessionService "storefront.GO/service/session"
	"storefront.GO/store"
)

func init() {
	api.RegisterHTMLModule(RegisterCartHTMLRoutes)
}

type propertyView struct {
	Name  string
	Value string
}

type lineView struct {
	Key          string
	Name         string
	Path         string
	ImagePath    string
	ImageURL     string
	Quantity     int
	QuantityText string
	Properties   []propertyView
	PriceText    string
	TotalText    string
	RemoveLabel  string
}

type currencyView struct {
	Code     string
	Symbol   string
	Selected bool
}

type cartPageView struct {
	Locale        string
	Title         string
	CriticalCSS   template.CSS
	Lines         []lineView
	CountText     string
	EmptyText     string
	Currencies    []currencyView
	TotalText     string
	CheckoutLabel string
	CheckoutHref  string
}

// shownProperties filters a line's properties down to the product's
// propertiesToShowInCart list, in that list's order. An empty list shows
// everything, sorted by name.
func shownProperties(li storecart.LineItem) []propertyView {
	show := li.ProductInfo.PropertiesToShowInCart
	if len(show) == 0 {
		show = make([]string, 0, len(li.Properties))
		for name := range li.Properties {
			show = append(show, name)
		}
		sort.Strings(show)
	}
	out := make([]propertyView, 0, len(show))
	for _, name := range show {
		if value, ok := li.Properties[name]; ok {
			out = append(out, propertyView{Name: name, Value: value})
		}
	}
	return out
}

func currencyChoices(locale, current string) []currencyView {
	table := i18n.DefaultTable(i18n.ScopeCurrency)
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]currencyView, 0, len(codes))
	for _, code := range codes {
		out = append(out, currencyView{
			Code:     code,
			Symbol:   i18n.CurrencySymbol(locale, code),
			Selected: code == current,
		})
	}
	return out
}

func buildCartPageView(st store.State, locale string) cartPageView {
	rc := i18n.ResolverFor(locale, i18n.ScopeCart)
	rb := i18n.ResolverFor(locale, i18n.ScopeCheckoutButton)
	rp := i18n.ResolverFor(locale, i18n.ScopeProduct)
	currency := st.Currency
	symbol := i18n.CurrencySymbol(locale, currency)

	lines := make([]lineView, 0, len(st.Cart))
	for _, key := range st.Cart.Keys() {
		li := st.Cart[key]
		name := rc.Text("product", i18n.Params{
			"localizedName": localizedName(rp, li.ID, li.ProductInfo.Name),
		})
		lines = append(lines, lineView{
			Key:          key,
			Name:         name,
			Path:         li.ProductInfo.Path,
			ImagePath:    li.ProductInfo.ImagePath,
			ImageURL:     mediaURL(li.ProductInfo.ImagePath),
			Quantity:     li.Quantity,
			QuantityText: rc.Text("quantity", i18n.Params{"quantity": li.Quantity}),
			Properties:   shownProperties(li),
			PriceText: rc.Text("price", i18n.Params{
				"price":             li.Price(currency),
				"localizedCurrency": lazyCurrencySymbol(locale, currency),
			}),
			TotalText: rc.Text("lineTotal", i18n.Params{
				"currency": symbol,
				"total":    li.Total(currency),
			}),
			RemoveLabel: rc.Text("remove", nil),
		})
	}

	css, err := parts.GetCriticalCSSCached()
	if err != nil {
		css = ""
	}
	return cartPageView{
		Locale:      locale,
		Title:       rc.Text("title", nil),
		CriticalCSS: template.CSS(css),
		Lines:       lines,
		CountText:   rc.Text("items", i18n.Params{"count": st.Cart.TotalQuantity()}),
		EmptyText:   rc.Text("empty", nil),
		Currencies:  currencyChoices(locale, currency),
		TotalText: rb.Text("totalValue", i18n.Params{
			"currency": symbol,
			"total":    st.Cart.Total(currency),
		}),
		CheckoutLabel: rb.Text("checkout", nil),
		CheckoutHref:  config.GetEnv("CHECKOUT_URL", "/checkout"),
	}
}

// RegisterCartHTMLRoutes serves the cart list and checkout button widgets:
// the line listing with per-line quantity and remove forms, the currency
// switch, and the checkout button carrying the grand total (absent while
// the cart is empty).
func RegisterCartHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	carts := cartRepo.NewCartRepository(db, config.RedisClient)

	withStore := func(c echo.Context) (*store.Store, error) {
		sid := cartApi.EnsureSession(c)
		s, err := sessionService.StoreFor(carts, sid)
		if err != nil {
			return nil, c.String(http.StatusInternalServerError, "Error loading cart")
		}
		return s, nil
	}

	e.GET("/cart", func(c echo.Context) error {
		s, err := withStore(c)
		if err != nil {
			return err
		}
		view := buildCartPageView(s.State(), requestLocale(c))
		return c.Render(http.StatusOK, "cart_page", view)
	})

	// Quantity update; invalid input leaves the line untouched. The key
	// travels as a form field because keys contain slashes.
	e.POST("/cart/update", func(c echo.Context) error {
		s, err := withStore(c)
		if err != nil {
			return err
		}
		if quantity, ok := storecart.ParseQuantity(c.FormValue("quantity")); ok {
			store.Bind(s).Update(c.FormValue("key"), storecart.Patch{Quantity: &quantity})
		}
		return c.Redirect(http.StatusSeeOther, "/cart")
	})

	// Removing an absent key is a no-op, the cart may race with the store.
	e.POST("/cart/remove", func(c echo.Context) error {
		s, err := withStore(c)
		if err != nil {
			return err
		}
		store.Bind(s).Remove(c.FormValue("key"))
		return c.Redirect(http.StatusSeeOther, "/cart")
	})

	e.POST("/cart/currency", func(c echo.Context) error {
		s, err := withStore(c)
		if err != nil {
			return err
		}
		if currency := c.FormValue("currency"); currency != "" {
			s.Dispatch(store.SetCurrency{Currency: currency})
		}
		return c.Redirect(http.StatusSeeOther, "/cart")
	})
}
