package cart

// Callbacks is the outbound contract of the presentation layer: widgets
// compute payloads with the pure functions in this package and hand them to
// whoever owns the state. Unset callbacks are skipped.
type Callbacks struct {
	OnAddProduct    func(key string, item LineItem, currency string)
	OnUpdateProduct func(key string, patch Patch)
	OnRemoveProduct func(key string)
}

// Add invokes OnAddProduct when set.
func (cb Callbacks) Add(key string, item LineItem, currency string) {
	if cb.OnAddProduct != nil {
		cb.OnAddProduct(key, item, currency)
	}
}

// Update invokes OnUpdateProduct when set.
func (cb Callbacks) Update(key string, patch Patch) {
	if cb.OnUpdateProduct != nil {
		cb.OnUpdateProduct(key, patch)
	}
}

// Remove invokes OnRemoveProduct when set.
func (cb Callbacks) Remove(key string) {
	if cb.OnRemoveProduct != nil {
		cb.OnRemoveProduct(key)
	}
}
