package models

import (
	"sort"

	"storefront.GO/i18n"
	"storefront.GO/store"
)

// Cart is the GraphQL view of one session's store state.
type Cart struct {
	SessionID      string      `json:"sessionId"`
	Currency       string      `json:"currency"`
	Items          []*CartItem `json:"items"`
	TotalQuantity  int32       `json:"totalQuantity"`
	Total          float64     `json:"total"`
	FormattedTotal string      `json:"formattedTotal"`
}

type CartItem struct {
	Key        string      `json:"key"`
	ProductID  string      `json:"productId"`
	Name       string      `json:"name"`
	Quantity   int32       `json:"quantity"`
	Properties []*Property `json:"properties"`
	Price      float64     `json:"price"`
	LineTotal  float64     `json:"lineTotal"`
}

// NewCart builds the view from store state. Lines are ordered by key and
// the grand total is formatted through the locale's checkout template.
func NewCart(sid string, st store.State, locale string) *Cart {
	if locale == "" {
		locale = i18n.DefaultLocale
	}

	keys := make([]string, 0, len(st.Cart))
	for k := range st.Cart {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]*CartItem, 0, len(keys))
	for _, k := range keys {
		line := st.Cart[k]
		items = append(items, &CartItem{
			Key:        k,
			ProductID:  line.ID,
			Name:       line.ProductInfo.Name,
			Quantity:   int32(line.Quantity),
			Properties: PropertyList(line.Properties),
			Price:      line.Price(st.Currency),
			LineTotal:  line.Total(st.Currency),
		})
	}

	total := st.Cart.Total(st.Currency)
	return &Cart{
		SessionID:      sid,
		Currency:       st.Currency,
		Items:          items,
		TotalQuantity:  int32(st.Cart.TotalQuantity()),
		Total:          total,
		FormattedTotal: FormatTotal(locale, st.Currency, total),
	}
}

// FormatTotal renders a total through the checkout button template, e.g.
// "$73.5" or "$0" for an empty cart.
func FormatTotal(locale, currency string, total float64) string {
	return i18n.ResolverFor(locale, i18n.ScopeCheckoutButton).Text("totalValue", i18n.Params{
		"currency": i18n.CurrencySymbol(locale, currency),
		"total":    total,
	})
}

// NewCartTotal builds one per-currency total row.
func NewCartTotal(locale, currency string, total float64) *CartTotal {
	return &CartTotal{
		Currency:  currency,
		Total:     total,
		Formatted: FormatTotal(locale, currency, total),
	}
}
