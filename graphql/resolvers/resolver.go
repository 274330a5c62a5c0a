// Package resolvers implements the GraphQL query and mutation fields over
// the catalog repositories and per-session cart stores.
package resolvers

import (
	"gorm.io/gorm"

	"storefront.GO/config"
	cartRepo "storefront.GO/model/repository/cart"
	productRepo "storefront.GO/model/repository/product"
)

type Resolver struct {
	db       *gorm.DB
	products *productRepo.ProductRepository
	carts    *cartRepo.CartRepository
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{
		db:       db,
		products: productRepo.NewProductRepository(db),
		carts:    cartRepo.NewCartRepository(db, config.RedisClient),
	}
}
