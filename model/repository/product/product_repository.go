package product

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront.GO/catalog"
	productEntity "storefront.GO/model/entity/product"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByProductID loads one product definition with prices and option groups.
func (r *ProductRepository) GetByProductID(id string) (catalog.Product, error) {
	var row productEntity.Product
	if err := r.db.Where("product_id = ?", id).First(&row).Error; err != nil {
		return catalog.Product{}, err
	}
	products, err := r.assemble([]productEntity.Product{row})
	if err != nil {
		return catalog.Product{}, err
	}
	return products[0], nil
}

// ListAll returns every product definition ordered by product id.
func (r *ProductRepository) ListAll() ([]catalog.Product, error) {
	var rows []productEntity.Product
	if err := r.db.Order("product_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.assemble(rows)
}

// SearchByName matches product ids and names with LIKE. Fallback path when
// Elasticsearch is not configured.
func (r *ProductRepository) SearchByName(q string, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + q + "%"
	var rows []productEntity.Product
	err := r.db.Where("name LIKE ? OR product_id LIKE ?", pattern, pattern).
		Order("product_id").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.assemble(rows)
}

// GetByProductIDs loads definitions for the given ids, keeping the
// input order. Unknown ids are dropped silently.
func (r *ProductRepository) GetByProductIDs(ids []string) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []productEntity.Product
	if err := r.db.Where("product_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	products, err := r.assemble(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// assemble hydrates catalog definitions from entity rows with batched
// queries for prices and option groups.
func (r *ProductRepository) assemble(rows []productEntity.Product) ([]catalog.Product, error) {
	if len(rows) == 0 {
		return []catalog.Product{}, nil
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EntityID)
	}

	var prices []productEntity.Price
	if err := r.db.Where("entity_id IN ?", ids).Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	pricesByEntity := make(map[uint]map[string]float64, len(rows))
	for _, p := range prices {
		if pricesByEntity[p.EntityID] == nil {
			pricesByEntity[p.EntityID] = make(map[string]float64)
		}
		pricesByEntity[p.EntityID][p.Currency] = p.Value
	}

	var groups []productEntity.OptionGroup
	if err := r.db.Where("entity_id IN ?", ids).Order("position, group_id").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("load option groups: %w", err)
	}
	groupIDs := make([]uint, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.GroupID)
	}
	valuesByGroup := make(map[uint][]productEntity.OptionValue)
	if len(groupIDs) > 0 {
		var values []productEntity.OptionValue
		if err := r.db.Where("group_id IN ?", groupIDs).Order("position, value_id").Find(&values).Error; err != nil {
			return nil, fmt.Errorf("load option values: %w", err)
		}
		for _, v := range values {
			valuesByGroup[v.GroupID] = append(valuesByGroup[v.GroupID], v)
		}
	}
	groupsByEntity := make(map[uint][]catalog.OptionGroup)
	for _, g := range groups {
		variants := make([]catalog.Variant, 0, len(valuesByGroup[g.GroupID]))
		for _, v := range valuesByGroup[g.GroupID] {
			cost := v.AdditionalCost.Data()
			if len(cost) == 0 {
				variants = append(variants, catalog.Scalar(v.Value))
			} else {
				variants = append(variants, catalog.Option(v.Value, cost))
			}
		}
		groupsByEntity[g.EntityID] = append(groupsByEntity[g.EntityID], catalog.OptionGroup{
			Name:     g.Name,
			Variants: variants,
		})
	}

	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.Product{
			ID:                     row.ProductID,
			Name:                   row.Name,
			Path:                   row.Path,
			ImagePath:              row.ImagePath,
			BasePrices:             pricesByEntity[row.EntityID],
			OptionGroups:           groupsByEntity[row.EntityID],
			PropertiesToShowInCart: row.ShowInCart,
		})
	}
	return out, nil
}

// Save upserts a product definition: the product row on conflict by
// product_id, prices and option groups replaced wholesale.
func (r *ProductRepository) Save(p catalog.Product) error {
	if p.ID == "" {
		return fmt.Errorf("save product: missing id")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := productEntity.Product{
			ProductID:  p.ID,
			Name:       p.Name,
			Path:       p.Path,
			ImagePath:  p.ImagePath,
			ShowInCart: p.PropertiesToShowInCart,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "path", "image_path", "show_in_cart"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("upsert product: %w", err)
		}
		if row.EntityID == 0 {
			// On-conflict updates do not backfill the key on every driver.
			var existing productEntity.Product
			if err := tx.Where("product_id = ?", p.ID).First(&existing).Error; err != nil {
				return err
			}
			row.EntityID = existing.EntityID
		}

		if err := tx.Where("entity_id = ?", row.EntityID).Delete(&productEntity.Price{}).Error; err != nil {
			return err
		}
		for currency, value := range p.BasePrices {
			price := productEntity.Price{EntityID: row.EntityID, Currency: currency, Value: value}
			if err := tx.Create(&price).Error; err != nil {
				return fmt.Errorf("insert price %s: %w", currency, err)
			}
		}

		var oldGroups []productEntity.OptionGroup
		if err := tx.Where("entity_id = ?", row.EntityID).Find(&oldGroups).Error; err != nil {
			return err
		}
		for _, g := range oldGroups {
			if err := tx.Where("group_id = ?", g.GroupID).Delete(&productEntity.OptionValue{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("entity_id = ?", row.EntityID).Delete(&productEntity.OptionGroup{}).Error; err != nil {
			return err
		}
		for gi, g := range p.OptionGroups {
			group := productEntity.OptionGroup{EntityID: row.EntityID, Name: g.Name, Position: gi}
			if err := tx.Create(&group).Error; err != nil {
				return fmt.Errorf("insert option group %s: %w", g.Name, err)
			}
			for vi, v := range g.Variants {
				value := productEntity.OptionValue{
					GroupID:  group.GroupID,
					Value:    v.Value,
					Position: vi,
				}
				if len(v.AdditionalCost) > 0 {
					value.AdditionalCost = datatypes.NewJSONType(v.AdditionalCost)
				}
				if err := tx.Create(&value).Error; err != nil {
					return fmt.Errorf("insert option value %s: %w", v.Value, err)
				}
			}
		}
		return nil
	})
}

// DeleteByProductID removes the definition and its child rows.
func (r *ProductRepository) DeleteByProductID(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var row productEntity.Product
		if err := tx.Where("product_id = ?", id).First(&row).Error; err != nil {
			return err
		}
		var groups []productEntity.OptionGroup
		if err := tx.Where("entity_id = ?", row.EntityID).Find(&groups).Error; err != nil {
			return err
		}
		for _, g := range groups {
			if err := tx.Where("group_id = ?", g.GroupID).Delete(&productEntity.OptionValue{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("entity_id = ?", row.EntityID).Delete(&productEntity.OptionGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_id = ?", row.EntityID).Delete(&productEntity.Price{}).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
}
