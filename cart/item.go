// Package cart models cart line items, their deterministic keying and the
// pure operations over a keyed cart collection.
package cart

// ProductInfo is the product snapshot stored on a line item. Prices holds
// the per-currency display price with the chosen options' additional cost
// already folded in, so the line stays correct when the catalog changes.
type ProductInfo struct {
	Name                   string             `json:"name"`
	Prices                 map[string]float64 `json:"prices"`
	Path                   string             `json:"path,omitempty"`
	ImagePath              string             `json:"imagePath,omitempty"`
	PropertiesToShowInCart []string           `json:"propertiesToShowInCart,omitempty"`
}

// LineItem is one cart entry: a product configuration and its quantity.
type LineItem struct {
	ID          string            `json:"id"`
	Quantity    int               `json:"quantity"`
	Properties  map[string]string `json:"properties,omitempty"`
	ProductInfo ProductInfo       `json:"productInfo"`
}

// Price is the line's unit display price in currency.
func (li LineItem) Price(currency string) float64 {
	return li.ProductInfo.Prices[currency]
}

// Total is quantity times unit price in currency.
func (li LineItem) Total(currency string) float64 {
	return float64(li.Quantity) * li.Price(currency)
}
