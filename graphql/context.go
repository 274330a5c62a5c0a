package graphql

import (
	"context"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const (
	CtxKeyCurrency contextKey = "currency"
	CtxKeyLocale   contextKey = "locale"
	CtxKeySession  contextKey = "session"
)

// Request field names accepted by the context middleware.
// Each value is resolved from: header, then POST JSON variables, then
// query parameter, with later sources overriding earlier ones.
const (
	HeaderCurrency = "Currency"
	HeaderLocale   = "Locale"
	HeaderSession  = "X-Session-ID"

	VarCurrency = "__Currency"
	VarLocale   = "__Locale"
	VarSession  = "__Session"
)

// WithCurrency attaches the display currency to the context.
func WithCurrency(ctx context.Context, currency string) context.Context {
	return context.WithValue(ctx, CtxKeyCurrency, currency)
}

// CurrencyFromContext returns the request currency, or "" when unset.
func CurrencyFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyCurrency).(string); ok {
		return v
	}
	return ""
}

// WithLocale attaches the locale to the context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, CtxKeyLocale, locale)
}

// LocaleFromContext returns the request locale, or "" when unset.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyLocale).(string); ok {
		return v
	}
	return ""
}

// WithSessionID attaches the cart session id to the context.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, CtxKeySession, sid)
}

// SessionIDFromContext returns the cart session id, or "" when the
// request carried none.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySession).(string); ok {
		return v
	}
	return ""
}
