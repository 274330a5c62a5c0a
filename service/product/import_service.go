package product

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	productEntity "storefront.GO/model/entity/product"
)

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize int
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int
	Created     int
	Updated     int
	Skipped     int
	Warnings    []string
	Counts      map[string]int
	ProcessTime time.Duration
	DBTime      time.Duration
	TotalTime   time.Duration
}

var staticColumns = map[string]bool{
	"id": true, "name": true, "path": true, "image_path": true, "show_in_cart": true,
}

// knownColumns returns the header names some module handles.
func knownColumns(headers []string) map[string]bool {
	known := make(map[string]bool)
	for col := range staticColumns {
		known[col] = true
	}
	for _, h := range headers {
		if isPriceColumn(h) || isOptionColumn(h) {
			known[h] = true
		}
	}
	return known
}

// ImportCatalog reads CSV data from r and upserts products, per-currency
// prices and option groups. Price columns are named price:<CURRENCY>.
// Option columns option:<group> hold |-separated variants, each written
// as "value" or "value(+CUR:amount;CUR:amount)".
func ImportCatalog(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()

	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	// Parse CSV header
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	idCol := -1
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
		if h == "id" {
			idCol = i
		}
	}
	if idCol < 0 {
		return nil, fmt.Errorf("CSV must contain an 'id' column")
	}

	result := &ImportResult{Counts: make(map[string]int)}

	// Warn about unknown columns
	known := knownColumns(headers)
	for _, h := range headers {
		if !known[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	// Read all rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	// Batch lookup of existing product ids
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := cell(row, idCol); id != "" {
			ids = append(ids, id)
		}
	}
	idToEntity := lookupProductIDs(db, ids, opts.BatchSize)

	startProcess := time.Now()

	// Upsert product entities; idToEntity gains the new entity ids.
	result.Created, result.Skipped, err = upsertEntities(db, rows, idCol, colIndex, idToEntity, opts)
	if err != nil {
		return nil, err
	}

	// Collect module data
	prices := collectPrices(rows, headers, colIndex, idCol, idToEntity)
	options := collectOptions(rows, headers, colIndex, idCol, idToEntity)
	result.Warnings = append(result.Warnings, prices.warnings...)
	result.Warnings = append(result.Warnings, options.warnings...)

	// Flush modules in parallel; they touch disjoint tables.
	startDB := time.Now()
	var g errgroup.Group
	g.Go(func() error { return flushPrices(db, prices, opts) })
	g.Go(func() error { return flushOptions(db, options, opts) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.DBTime = time.Since(startDB)

	result.Counts["price"] = len(prices.rows)
	result.Counts["option_group"] = options.groupCount()
	result.Counts["option_value"] = options.valueCount()

	result.Updated = result.TotalRows - result.Skipped - result.Created
	result.ProcessTime = time.Since(startProcess)
	result.TotalTime = time.Since(startTotal)

	return result, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// lookupProductIDs batch-queries existing rows and maps product_id to entity_id.
func lookupProductIDs(db *gorm.DB, ids []string, batchSize int) map[string]uint {
	type productRow struct {
		EntityID  uint   `gorm:"column:entity_id"`
		ProductID string `gorm:"column:product_id"`
	}
	var existing []productRow
	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		var chunk []productRow
		db.Table("storefront_product").Select("entity_id, product_id").Where("product_id IN ?", ids[i:end]).Find(&chunk)
		existing = append(existing, chunk...)
	}
	m := make(map[string]uint, len(existing))
	for _, e := range existing {
		m[e.ProductID] = e.EntityID
	}
	return m
}

// upsertEntities creates rows for new product ids, refreshes the static
// columns of existing ones and fills idToEntity for the collect modules.
func upsertEntities(db *gorm.DB, rows [][]string, idCol int, colIndex map[string]int, idToEntity map[string]uint, opts ImportOptions) (created, skipped int, err error) {
	get := func(row []string, col string) string {
		i, ok := colIndex[col]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	newProducts := make([]productEntity.Product, 0, len(rows))
	newIDs := make([]string, 0, len(rows))

	for _, row := range rows {
		id := cell(row, idCol)
		if id == "" {
			skipped++
			continue
		}
		p := productEntity.Product{
			ProductID: id,
			Name:      get(row, "name"),
			Path:      get(row, "path"),
			ImagePath: get(row, "image_path"),
		}
		if p.Name == "" {
			p.Name = id
		}
		if sc := get(row, "show_in_cart"); sc != "" {
			p.ShowInCart = strings.Split(sc, "|")
		}

		if entityID, ok := idToEntity[id]; ok {
			if entityID == 0 {
				// Repeated id within this file: the first occurrence wins.
				continue
			}
			uerr := db.Model(&productEntity.Product{}).Where("entity_id = ?", entityID).Updates(map[string]interface{}{
				"name": p.Name, "path": p.Path, "image_path": p.ImagePath, "show_in_cart": p.ShowInCart,
			}).Error
			if uerr != nil {
				return created, skipped, fmt.Errorf("update product %s: %w", id, uerr)
			}
			continue
		}

		newProducts = append(newProducts, p)
		newIDs = append(newIDs, id)
		idToEntity[id] = 0
	}

	if len(newProducts) > 0 {
		if err := db.Session(&gorm.Session{SkipHooks: true, CreateBatchSize: opts.BatchSize}).Create(&newProducts).Error; err != nil {
			return 0, skipped, fmt.Errorf("insert products: %w", err)
		}
		for i, p := range newProducts {
			idToEntity[newIDs[i]] = p.EntityID
		}
	}
	return len(newProducts), skipped, nil
}
