package cart

import "sort"

// Collection maps cart keys to line items. All operations are copy-on-write:
// the receiver is never mutated, so callers can rely on reference equality
// to detect change. Operations on absent keys return the receiver itself.
type Collection map[string]LineItem

// AddOrMerge inserts item at key. When the key already holds a line, the
// quantities add up and every other field is replaced by the incoming item.
func (c Collection) AddOrMerge(key string, item LineItem) Collection {
	if existing, ok := c[key]; ok {
		item.Quantity += existing.Quantity
	}
	next := c.clone(1)
	next[key] = item
	return next
}

// Patch is a partial line item update. Nil fields keep the current value.
type Patch struct {
	Quantity    *int              `json:"quantity,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
	ProductInfo *ProductInfo      `json:"productInfo,omitempty"`
}

// Update shallow-merges patch into the line at key. An absent key is a
// no-op returning the collection unchanged.
func (c Collection) Update(key string, patch Patch) Collection {
	line, ok := c[key]
	if !ok {
		return c
	}
	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
	if patch.Properties != nil {
		line.Properties = patch.Properties
	}
	if patch.ProductInfo != nil {
		line.ProductInfo = *patch.ProductInfo
	}
	next := c.clone(0)
	next[key] = line
	return next
}

// Remove drops the line at key. An absent key is a no-op returning the
// collection unchanged.
func (c Collection) Remove(key string) Collection {
	if _, ok := c[key]; !ok {
		return c
	}
	next := make(Collection, len(c)-1)
	for k, v := range c {
		if k != key {
			next[k] = v
		}
	}
	return next
}

// Keys returns the cart keys sorted, for stable rendering order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TotalQuantity sums the quantities across all lines.
func (c Collection) TotalQuantity() int {
	total := 0
	for _, li := range c {
		total += li.Quantity
	}
	return total
}

// Total sums the line totals in currency.
func (c Collection) Total(currency string) float64 {
	var total float64
	for _, li := range c {
		total += li.Total(currency)
	}
	return total
}

func (c Collection) clone(extra int) Collection {
	next := make(Collection, len(c)+extra)
	for k, v := range c {
		next[k] = v
	}
	return next
}
