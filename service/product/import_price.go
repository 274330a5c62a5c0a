package product

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	productEntity "storefront.GO/model/entity/product"
)

const priceColumnPrefix = "price:"

func isPriceColumn(h string) bool {
	return strings.HasPrefix(h, priceColumnPrefix) && len(h) > len(priceColumnPrefix)
}

// priceImportData holds collected price rows ready to flush.
type priceImportData struct {
	rows     []productEntity.Price
	warnings []string
}

// collectPrices parses price:<CURRENCY> columns and buffers price rows.
func collectPrices(rows [][]string, headers []string, colIndex map[string]int, idCol int, idToEntity map[string]uint) *priceImportData {
	d := &priceImportData{}

	// currency -> column, in header order
	type priceCol struct {
		currency string
		col      int
	}
	var priceCols []priceCol
	for _, h := range headers {
		if isPriceColumn(h) {
			currency := strings.ToUpper(strings.TrimPrefix(h, priceColumnPrefix))
			priceCols = append(priceCols, priceCol{currency, colIndex[h]})
		}
	}
	if len(priceCols) == 0 {
		return d
	}

	for _, row := range rows {
		id := cell(row, idCol)
		if id == "" {
			continue
		}
		entityID, ok := idToEntity[id]
		if !ok || entityID == 0 {
			continue
		}
		for _, pc := range priceCols {
			raw := cell(row, pc.col)
			if raw == "" {
				continue
			}
			fv, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				d.warnings = append(d.warnings, fmt.Sprintf("id=%s: invalid %s price %q", id, pc.currency, raw))
				continue
			}
			d.rows = append(d.rows, productEntity.Price{
				EntityID: entityID,
				Currency: pc.currency,
				Value:    fv,
			})
		}
	}
	return d
}

// flushPrices writes buffered price rows, updating on conflict.
func flushPrices(db *gorm.DB, d *priceImportData, opts ImportOptions) error {
	if len(d.rows) == 0 {
		return nil
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}, {Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}
	return db.Clauses(upsert).CreateInBatches(d.rows, opts.BatchSize).Error
}
