package parts

import (
	"log"
	"os"

	"storefront.GO/core/cache"
)

const (
	criticalCSSCacheKey = "html:critical_css"
	criticalCSSTTL      = 3600
)

// GetCriticalCSS reads the critical CSS file and returns it as a string.
func GetCriticalCSS() (string, error) {
	css, err := os.ReadFile("assets/storefront.min.css")
	if err != nil {
		log.Println("Critical CSS error:", err)
		return "", err
	}
	return string(css), nil
}

// GetCriticalCSSCached serves the critical CSS from the in-process cache,
// reading the file at most once per TTL. A missing file caches the empty
// string so the widgets render unstyled instead of hitting the disk on
// every request.
func GetCriticalCSSCached() (string, error) {
	if v, ok := cache.GetInstance().Get(criticalCSSCacheKey); ok {
		if css, isString := v.(string); isString {
			return css, nil
		}
	}
	css, err := GetCriticalCSS()
	cache.GetInstance().Set(criticalCSSCacheKey, css, criticalCSSTTL, []string{"html"})
	return css, err
}
