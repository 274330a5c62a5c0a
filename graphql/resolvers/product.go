package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront.GO/catalog"
	gqlmodels "storefront.GO/graphql/models"
	searchService "storefront.GO/service/search"
)

// Products lists the catalog, filtered by the optional search term.
func (r *Resolver) Products(ctx context.Context, search *string) ([]*gqlmodels.Product, error) {
	var (
		defs []catalog.Product
		err  error
	)
	if search != nil && *search != "" {
		defs, err = r.searchProducts(ctx, *search)
	} else {
		defs, err = r.products.ListAll()
	}
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Product, 0, len(defs))
	for _, def := range defs {
		out = append(out, gqlmodels.NewProduct(def))
	}
	return out, nil
}

func (r *Resolver) searchProducts(ctx context.Context, q string) ([]catalog.Product, error) {
	if ids, err := searchService.GetService().Search(ctx, q, 0); err == nil {
		return r.products.GetByProductIDs(ids)
	}
	return r.products.SearchByName(q, 0)
}

// Product fetches one definition; unknown ids resolve to null.
func (r *Resolver) Product(ctx context.Context, id string) (*gqlmodels.Product, error) {
	def, err := r.products.GetByProductID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return gqlmodels.NewProduct(def), nil
}
