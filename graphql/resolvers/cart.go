package resolvers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	storecart "storefront.GO/cart"
	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/i18n"
	sessionService "storefront.GO/service/session"
	"storefront.GO/store"
)

// sessionStore resolves the request's live store, minting a session when
// the request carried none.
func (r *Resolver) sessionStore(ctx context.Context) (string, *store.Store, error) {
	sid := graphql.SessionIDFromContext(ctx)
	if sid == "" {
		sid = uuid.NewString()
	}
	s, err := sessionService.StoreFor(r.carts, sid)
	return sid, s, err
}

func (r *Resolver) cartView(ctx context.Context, sid string, st store.State) *gqlmodels.Cart {
	return gqlmodels.NewCart(sid, st, graphql.LocaleFromContext(ctx))
}

// Cart returns the session's current state.
func (r *Resolver) Cart(ctx context.Context) (*gqlmodels.Cart, error) {
	sid, s, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	return r.cartView(ctx, sid, s.State()), nil
}

// CartTotals returns the grand total in each requested currency, or in
// every known currency when none are requested.
func (r *Resolver) CartTotals(ctx context.Context, currencies *[]string) ([]*gqlmodels.CartTotal, error) {
	_, s, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	st := s.State()

	var codes []string
	if currencies != nil && len(*currencies) > 0 {
		for _, code := range *currencies {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, strings.ToUpper(code))
			}
		}
	} else {
		for code := range i18n.DefaultTable(i18n.ScopeCurrency) {
			codes = append(codes, code)
		}
		sort.Strings(codes)
	}

	locale := graphql.LocaleFromContext(ctx)
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	out := make([]*gqlmodels.CartTotal, 0, len(codes))
	for _, code := range codes {
		out = append(out, gqlmodels.NewCartTotal(locale, code, st.Cart.Total(code)))
	}
	return out, nil
}

// AddToCart adds a configured product line; same-configuration lines merge.
func (r *Resolver) AddToCart(ctx context.Context, productID string, quantity int, selection map[string]int) (*gqlmodels.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer")
	}
	p, err := r.products.GetByProductID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %s", productID)
		}
		return nil, err
	}

	sid, s, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	item := storecart.BuildLineItem(p, quantity, selection)
	key := storecart.DefaultKey(p.ID, item.Properties)
	st := s.Dispatch(store.AddProduct{Key: key, Item: item, Currency: s.State().Currency})
	return r.cartView(ctx, sid, st), nil
}

// UpdateCartItem sets a line's quantity; absent keys are a no-op.
func (r *Resolver) UpdateCartItem(ctx context.Context, key string, quantity int) (*gqlmodels.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer")
	}
	sid, s, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	st := s.Dispatch(store.UpdateProduct{Key: key, Patch: storecart.Patch{Quantity: &quantity}})
	return r.cartView(ctx, sid, st), nil
}

// RemoveCartItem drops a line; absent keys are a no-op.
func (r *Resolver) RemoveCartItem(ctx context.Context, key string) (*gqlmodels.Cart, error) {
	sid, s, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	st := s.Dispatch(store.RemoveProduct{Key: key})
	return r.cartView(ctx, sid, st), nil
}

// SetCurrency switches the session's display currency.
func (r *Resolver) SetCurrency(ctx context.Context, currency string) (*gqlmodels.Cart, error) {
	if currency == "" {
		return nil, fmt.Errorf("currency required")
	}
	sid, s, err := r.sessionStore(ctx)
	if err != nil {
		return nil, err
	}
	st := s.Dispatch(store.SetCurrency{Currency: strings.ToUpper(currency)})
	return r.cartView(ctx, sid, st), nil
}
