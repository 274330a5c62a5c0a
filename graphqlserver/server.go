// Package graphqlserver wires the schema to the resolvers and exposes the
// relay HTTP handler.
package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"storefront.GO/graphql"
	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/graphql/registry"
	"storefront.GO/graphql/resolvers"
)

// RootResolver carries every query and mutation field, delegating to the
// resolvers package.
type RootResolver struct {
	res *resolvers.Resolver
}

func NewRootResolver(db *gorm.DB) *RootResolver {
	return &RootResolver{res: resolvers.NewResolver(db)}
}

// --- Query ---

type ProductsArgs struct {
	Search *string
}

func (r *RootResolver) Products(ctx context.Context, args ProductsArgs) ([]*gqlmodels.Product, error) {
	return r.res.Products(ctx, args.Search)
}

type ProductArgs struct {
	ID string
}

func (r *RootResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	return r.res.Product(ctx, args.ID)
}

func (r *RootResolver) Cart(ctx context.Context) (*gqlmodels.Cart, error) {
	return r.res.Cart(ctx)
}

type CartTotalsArgs struct {
	Currencies *[]string
}

func (r *RootResolver) CartTotals(ctx context.Context, args CartTotalsArgs) ([]*gqlmodels.CartTotal, error) {
	return r.res.CartTotals(ctx, args.Currencies)
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// --- Mutation ---

// SelectionInput matches the schema's option selection input.
type SelectionInput struct {
	Group string
	Index int32
}

func selectionMap(in *[]SelectionInput) map[string]int {
	sel := map[string]int{}
	if in == nil {
		return sel
	}
	for _, s := range *in {
		sel[s.Group] = int(s.Index)
	}
	return sel
}

// AddToCartArgs matches addToCart (default in schema: quantity=1).
type AddToCartArgs struct {
	ProductID string
	Quantity  int32
	Selection *[]SelectionInput
}

func (r *RootResolver) AddToCart(ctx context.Context, args AddToCartArgs) (*gqlmodels.Cart, error) {
	return r.res.AddToCart(ctx, args.ProductID, int(args.Quantity), selectionMap(args.Selection))
}

type UpdateCartItemArgs struct {
	Key      string
	Quantity int32
}

func (r *RootResolver) UpdateCartItem(ctx context.Context, args UpdateCartItemArgs) (*gqlmodels.Cart, error) {
	return r.res.UpdateCartItem(ctx, args.Key, int(args.Quantity))
}

type RemoveCartItemArgs struct {
	Key string
}

func (r *RootResolver) RemoveCartItem(ctx context.Context, args RemoveCartItemArgs) (*gqlmodels.Cart, error) {
	return r.res.RemoveCartItem(ctx, args.Key)
}

type SetCurrencyArgs struct {
	Currency string
}

func (r *RootResolver) SetCurrency(ctx context.Context, args SetCurrencyArgs) (*gqlmodels.Cart, error) {
	return r.res.SetCurrency(ctx, args.Currency)
}

// NewSchema parses the schema (base + extensions) against the root resolver.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), NewRootResolver(db), gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
