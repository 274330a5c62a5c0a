package i18n

import (
	"sort"
	"sync"

	"storefront.GO/core/registry"
)

var mu sync.Mutex

func registered() map[string]Bundle {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryLocales); ok && v != nil {
		return v.(map[string]Bundle)
	}
	return nil
}

// Register merges bundle into the tables for locale. Call from init() in
// custom packages or from the locale file loader. Later registrations win on
// template id collisions.
func Register(locale string, bundle Bundle) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryLocales) {
		panic("i18n/registry: locales locked (register only during startup)")
	}
	locales := registered()
	merged := make(map[string]Bundle, len(locales)+1)
	for loc, b := range locales {
		merged[loc] = b
	}
	target := make(Bundle, len(merged[locale])+len(bundle))
	for scope, table := range merged[locale] {
		target[scope] = table
	}
	for scope, table := range bundle {
		t := make(Table, len(target[scope])+len(table))
		for id, tpl := range target[scope] {
			t[id] = tpl
		}
		for id, tpl := range table {
			t[id] = tpl
		}
		target[scope] = t
	}
	merged[locale] = target
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryLocales, merged)
}

// Lock seals the locale registry once startup registration is done.
func Lock() {
	registry.GlobalRegistry.Lock(registry.KeyRegistryLocales)
}

// Locales lists known locale codes, always including DefaultLocale.
func Locales() []string {
	set := map[string]bool{DefaultLocale: true}
	for loc := range registered() {
		set[loc] = true
	}
	out := make([]string, 0, len(set))
	for loc := range set {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// ResolverFor returns a resolver for scope in locale. Ids the locale does
// not define fall back to the built-in tables; unknown locales resolve
// entirely from the built-ins.
func ResolverFor(locale, scope string) *Resolver {
	r := &Resolver{fallback: defaultBundle[scope]}
	if b, ok := registered()[locale]; ok {
		r.table = b[scope]
	}
	return r
}
