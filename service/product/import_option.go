package product

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"storefront.GO/catalog"
	productEntity "storefront.GO/model/entity/product"
)

const optionColumnPrefix = "option:"

func isOptionColumn(h string) bool {
	return strings.HasPrefix(h, optionColumnPrefix) && len(h) > len(optionColumnPrefix)
}

// groupPlan is one option group of one product, in CSV column order.
type groupPlan struct {
	name     string
	variants []catalog.Variant
}

// optionImportData holds collected option groups keyed by entity id.
type optionImportData struct {
	groups   map[uint][]groupPlan
	order    []uint
	warnings []string
}

func (d *optionImportData) groupCount() int {
	n := 0
	for _, groups := range d.groups {
		n += len(groups)
	}
	return n
}

func (d *optionImportData) valueCount() int {
	n := 0
	for _, groups := range d.groups {
		for _, g := range groups {
			n += len(g.variants)
		}
	}
	return n
}

// parseVariant parses "value" or "value(+CUR:amount;CUR:amount)".
func parseVariant(raw string) (catalog.Variant, error) {
	open := strings.Index(raw, "(")
	if open < 0 {
		return catalog.Scalar(strings.TrimSpace(raw)), nil
	}
	if !strings.HasSuffix(raw, ")") {
		return catalog.Variant{}, fmt.Errorf("variant %q: unbalanced parentheses", raw)
	}
	value := strings.TrimSpace(raw[:open])
	spec := strings.TrimPrefix(raw[open+1:len(raw)-1], "+")

	cost := make(map[string]float64)
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cur, amount, found := strings.Cut(part, ":")
		if !found {
			return catalog.Variant{}, fmt.Errorf("variant %q: missing currency separator in %q", raw, part)
		}
		fv, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		if err != nil {
			return catalog.Variant{}, fmt.Errorf("variant %q: invalid amount %q", raw, amount)
		}
		cost[strings.ToUpper(strings.TrimSpace(cur))] = fv
	}
	if len(cost) == 0 {
		return catalog.Scalar(value), nil
	}
	return catalog.Option(value, cost), nil
}

// collectOptions parses option:<group> columns into per-product group plans.
func collectOptions(rows [][]string, headers []string, colIndex map[string]int, idCol int, idToEntity map[string]uint) *optionImportData {
	d := &optionImportData{groups: make(map[uint][]groupPlan)}

	type optionCol struct {
		name string
		col  int
	}
	var optionCols []optionCol
	for _, h := range headers {
		if isOptionColumn(h) {
			optionCols = append(optionCols, optionCol{strings.TrimPrefix(h, optionColumnPrefix), colIndex[h]})
		}
	}
	if len(optionCols) == 0 {
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

		var groups []groupPlan
		for _, oc := range optionCols {
			raw := cell(row, oc.col)
			if raw == "" {
				continue
			}
			plan := groupPlan{name: oc.name}
			for _, part := range strings.Split(raw, "|") {
				if strings.TrimSpace(part) == "" {
					continue
				}
				v, err := parseVariant(part)
				if err != nil {
					d.warnings = append(d.warnings, fmt.Sprintf("id=%s: %v", id, err))
					continue
				}
				plan.variants = append(plan.variants, v)
			}
			if len(plan.variants) > 0 {
				groups = append(groups, plan)
			}
		}
		if len(groups) == 0 {
			continue
		}
		if _, dup := d.groups[entityID]; !dup {
			d.order = append(d.order, entityID)
		}
		d.groups[entityID] = groups
	}
	return d
}

// flushOptions replaces each touched product's option groups wholesale so
// group and variant positions follow the file.
func flushOptions(db *gorm.DB, d *optionImportData, opts ImportOptions) error {
	for _, entityID := range d.order {
		var old []productEntity.OptionGroup
		if err := db.Where("entity_id = ?", entityID).Find(&old).Error; err != nil {
			return fmt.Errorf("load option groups: %w", err)
		}
		for _, g := range old {
			if err := db.Where("group_id = ?", g.GroupID).Delete(&productEntity.OptionValue{}).Error; err != nil {
				return fmt.Errorf("delete option values: %w", err)
			}
		}
		if len(old) > 0 {
			if err := db.Where("entity_id = ?", entityID).Delete(&productEntity.OptionGroup{}).Error; err != nil {
				return fmt.Errorf("delete option groups: %w", err)
			}
		}

		for gi, plan := range d.groups[entityID] {
			group := productEntity.OptionGroup{EntityID: entityID, Name: plan.name, Position: gi}
			if err := db.Create(&group).Error; err != nil {
				return fmt.Errorf("insert option group %q: %w", plan.name, err)
			}
			values := make([]productEntity.OptionValue, 0, len(plan.variants))
			for vi, v := range plan.variants {
				value := productEntity.OptionValue{GroupID: group.GroupID, Value: v.Value, Position: vi}
				if len(v.AdditionalCost) > 0 {
					value.AdditionalCost = datatypes.NewJSONType(v.AdditionalCost)
				}
				values = append(values, value)
			}
			if err := db.CreateInBatches(values, opts.BatchSize).Error; err != nil {
				return fmt.Errorf("insert option values: %w", err)
			}
		}
	}
	return nil
}
