package cart

import (
	"sort"
	"strings"
)

// KeyFunc derives the cart key for a product configuration. Two selections
// resolving to the same properties must produce the same key, so re-adding
// merges quantities instead of duplicating lines. Callers may supply their
// own; DefaultKey is used everywhere one is not given.
type KeyFunc func(id string, properties map[string]string) string

// DefaultKey joins sorted name=value pairs under the product id, e.g.
// "jacket/colour=yellow_size=M". Sorting makes the key invariant under
// property iteration order.
func DefaultKey(id string, properties map[string]string) string {
	pairs := make([]string, 0, len(properties))
	for name, value := range properties {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return id + "/" + strings.Join(pairs, "_")
}
