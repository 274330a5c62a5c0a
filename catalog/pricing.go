package catalog

// AdditionalCost sums the selected variants' extra cost in currency across
// all option groups. selection maps group name to variant index; a missing
// or out-of-range index falls back to index 0. Bare scalar variants and
// variants without a cost for currency contribute 0.
func AdditionalCost(groups []OptionGroup, selection map[string]int, currency string) float64 {
	var total float64
	for _, g := range groups {
		v, ok := g.Selected(selection[g.Name])
		if !ok {
			continue
		}
		total += v.AdditionalCost[currency]
	}
	return total
}

// DisplayPrice is the base price plus the options' additional cost. No
// rounding is applied; currency precision is the caller's concern.
func DisplayPrice(basePrice, additionalCost float64) float64 {
	return basePrice + additionalCost
}

// PriceTable copies the product's base prices with the selection's
// additional cost folded into every currency. The result stands alone, so a
// stored cart line is unaffected by later catalog changes.
func (p Product) PriceTable(selection map[string]int) map[string]float64 {
	prices := make(map[string]float64, len(p.BasePrices))
	for currency, base := range p.BasePrices {
		prices[currency] = DisplayPrice(base, AdditionalCost(p.OptionGroups, selection, currency))
	}
	return prices
}

// Price is the display price for one currency and selection.
func (p Product) Price(selection map[string]int, currency string) float64 {
	return DisplayPrice(p.BasePrices[currency], AdditionalCost(p.OptionGroups, selection, currency))
}
