package html

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	cartApi "storefront.GO/api/cart"
	"storefront.GO/catalog"
	storecart "storefront.GO/cart"
	"storefront.GO/config"
	"storefront.GO/html/parts"
	"storefront.GO/i18n"
	cartRepo "storefront.GO/model/repository/cart"
	productRepo "storefront.GO/model/repository/product"
	sessionService "storefront.GO/service/session"
	"storefront.GO/store"
)

func init() {
	api.RegisterHTMLModule(RegisterProductHTMLRoutes)
}

type choiceView struct {
	Index    int
	Label    string
	Selected bool
}

type optionView struct {
	Name    string
	Field   string
	Choices []choiceView
}

type productFormView struct {
	Locale        string
	Title         string
	CriticalCSS   template.CSS
	ID            string
	Name          string
	ImagePath     string
	ImageURL      string
	PriceText     string
	AddAction     string
	Options       []optionView
	Quantity      int
	QuantityLabel string
	AddLabel      string
}

// requestLocale resolves the display locale: query parameter first, then
// the configured default.
func requestLocale(c echo.Context) string {
	if loc := c.QueryParam("locale"); loc != "" {
		return loc
	}
	if config.AppConfig != nil && config.AppConfig.DefaultLocale != "" {
		return config.AppConfig.DefaultLocale
	}
	return i18n.DefaultLocale
}

// localizedName resolves a product's display name. Locale bundles may carry
// a per-product template under the product scope keyed by product id; the
// catalog name is the fallback. Lazy so the lookup only runs when a
// template actually references {localizedName}.
func localizedName(r *i18n.Resolver, id, name string) i18n.Thunk {
	return i18n.Lazy(func() interface{} {
		if r.Has(id) {
			return r.Text(id, nil)
		}
		return name
	})
}

func lazyCurrencySymbol(locale, currency string) i18n.Thunk {
	return i18n.Lazy(func() interface{} {
		return i18n.CurrencySymbol(locale, currency)
	})
}

func mediaURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	base := "/media/"
	if config.AppConfig != nil && config.AppConfig.MediaUrl != "" {
		base = config.AppConfig.MediaUrl
	}
	return base + imagePath
}

func formatAmount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// selectionFromForm reads one selected index per option group from the
// submitted form. Missing or malformed values stay 0; out-of-range values
// are clamped by the pricing engine itself.
func selectionFromForm(c echo.Context, p catalog.Product) map[string]int {
	selection := make(map[string]int, len(p.OptionGroups))
	for _, g := range p.OptionGroups {
		if idx, err := strconv.Atoi(c.FormValue("opt_" + g.Name)); err == nil {
			selection[g.Name] = idx
		}
	}
	return selection
}

func buildProductFormView(p catalog.Product, locale, currency string, quantity int, selection map[string]int) productFormView {
	r := i18n.ResolverFor(locale, i18n.ScopeProduct)
	symbol := i18n.CurrencySymbol(locale, currency)

	name := r.Text("name", i18n.Params{
		"localizedName": localizedName(r, p.ID, p.Name),
	})
	priceText := r.Text("price", i18n.Params{
		"price":             p.Price(selection, currency),
		"localizedCurrency": lazyCurrencySymbol(locale, currency),
	})

	options := make([]optionView, 0, len(p.OptionGroups))
	for _, g := range p.OptionGroups {
		selected, _ := g.Selected(selection[g.Name])
		choices := make([]choiceView, 0, len(g.Variants))
		for i, v := range g.Variants {
			label := v.Value
			if cost, ok := v.AdditionalCost[currency]; ok && cost != 0 {
				label += " (+" + symbol + formatAmount(cost) + ")"
			}
			choices = append(choices, choiceView{
				Index:    i,
				Label:    label,
				Selected: v.Value == selected.Value,
			})
		}
		options = append(options, optionView{Name: g.Name, Field: "opt_" + g.Name, Choices: choices})
	}

	css, err := parts.GetCriticalCSSCached()
	if err != nil {
		css = ""
	}
	return productFormView{
		Locale:        locale,
		Title:         name,
		CriticalCSS:   template.CSS(css),
		ID:            p.ID,
		Name:          name,
		ImagePath:     p.ImagePath,
		ImageURL:      mediaURL(p.ImagePath),
		PriceText:     priceText,
		AddAction:     "/product/" + p.ID + "/add",
		Options:       options,
		Quantity:      quantity,
		QuantityLabel: r.Text("quantity", nil),
		AddLabel:      r.Text("addToCart", nil),
	}
}

// RegisterProductHTMLRoutes serves the product form widget: option selects,
// quantity field and the add-to-cart action.
func RegisterProductHTMLRoutes(e *echo.Echo, db *gorm.DB) {
	products := productRepo.NewProductRepository(db)
	carts := cartRepo.NewCartRepository(db, config.RedisClient)

	e.GET("/product/:id", func(c echo.Context) error {
		p, err := products.GetByProductID(c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.String(http.StatusNotFound, "Product not found")
			}
			log.Println("Repo error:", err)
			return c.String(http.StatusInternalServerError, "Error fetching product")
		}
		sid := cartApi.EnsureSession(c)
		s, err := sessionService.StoreFor(carts, sid)
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error loading cart")
		}
		view := buildProductFormView(p, requestLocale(c), s.State().Currency, 1, nil)
		return c.Render(http.StatusOK, "product_form", view)
	})

	e.POST("/product/:id/add", func(c echo.Context) error {
		p, err := products.GetByProductID(c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.String(http.StatusNotFound, "Product not found")
			}
			return c.String(http.StatusInternalServerError, "Error fetching product")
		}
		sid := cartApi.EnsureSession(c)
		s, err := sessionService.StoreFor(carts, sid)
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error loading cart")
		}
		currency := s.State().Currency
		selection := selectionFromForm(c, p)

		quantity, ok := storecart.ParseQuantity(c.FormValue("quantity"))
		if !ok {
			// Invalid input is silently ignored: re-render the form with the
			// last valid quantity and the chosen options intact.
			prior, valid := storecart.ParseQuantity(c.FormValue("lastQuantity"))
			if !valid {
				prior = 1
			}
			view := buildProductFormView(p, requestLocale(c), currency, prior, selection)
			return c.Render(http.StatusOK, "product_form", view)
		}

		item := storecart.BuildLineItem(p, quantity, selection)
		key := storecart.DefaultKey(item.ID, item.Properties)
		store.Bind(s).Add(key, item, currency)
		for _, v := range p.SelectedVariants(selection) {
			if v.OnSelect != nil {
				v.OnSelect()
			}
		}
		return c.Redirect(http.StatusSeeOther, "/cart")
	})
}
