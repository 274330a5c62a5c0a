package models

import (
	"context"

	"storefront.GO/catalog"
	"storefront.GO/graphql"
)

// Product is the GraphQL view of a catalog definition. The definition is
// kept so the price field can run the option pricing engine.
type Product struct {
	def catalog.Product

	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	Path                   *string        `json:"path,omitempty"`
	ImagePath              *string        `json:"imagePath,omitempty"`
	BasePrices             []*Money       `json:"basePrices"`
	OptionGroups           []*OptionGroup `json:"optionGroups"`
	PropertiesToShowInCart []string       `json:"propertiesToShowInCart"`
}

// NewProduct builds the view from a catalog definition.
func NewProduct(def catalog.Product) *Product {
	p := &Product{
		def:                    def,
		ID:                     def.ID,
		Name:                   def.Name,
		BasePrices:             MoneyList(def.BasePrices),
		PropertiesToShowInCart: def.PropertiesToShowInCart,
	}
	if p.PropertiesToShowInCart == nil {
		p.PropertiesToShowInCart = []string{}
	}
	if def.Path != "" {
		path := def.Path
		p.Path = &path
	}
	if def.ImagePath != "" {
		img := def.ImagePath
		p.ImagePath = &img
	}
	p.OptionGroups = make([]*OptionGroup, 0, len(def.OptionGroups))
	for _, g := range def.OptionGroups {
		variants := make([]*Variant, 0, len(g.Variants))
		for _, v := range g.Variants {
			variants = append(variants, &Variant{
				Value:          v.Value,
				AdditionalCost: MoneyList(v.AdditionalCost),
			})
		}
		p.OptionGroups = append(p.OptionGroups, &OptionGroup{Name: g.Name, Variants: variants})
	}
	return p
}

// Price resolves the price field: default-selection display price in the
// argument currency, falling back to the request currency.
func (p *Product) Price(ctx context.Context, args struct{ Currency *string }) float64 {
	currency := graphql.CurrencyFromContext(ctx)
	if args.Currency != nil && *args.Currency != "" {
		currency = *args.Currency
	}
	if currency == "" {
		currency = "USD"
	}
	return p.def.Price(nil, currency)
}
