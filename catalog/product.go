// Package catalog defines product definitions and the option pricing engine.
//
// A product carries per-currency base prices and an ordered list of option
// groups. Each group holds ordered variants the shopper picks by index; a
// variant is either a bare scalar value or a record with a per-currency
// additional cost and an optional on-select hook.
package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Product is one sellable catalog item. OptionGroups keeps the group order
// stable so selections stay index-addressable.
type Product struct {
	ID                     string             `json:"id" mapstructure:"id"`
	Name                   string             `json:"name" mapstructure:"name"`
	Path                   string             `json:"path,omitempty" mapstructure:"path"`
	ImagePath              string             `json:"imagePath,omitempty" mapstructure:"imagePath"`
	BasePrices             map[string]float64 `json:"prices" mapstructure:"prices"`
	OptionGroups           []OptionGroup      `json:"optionGroups,omitempty" mapstructure:"optionGroups"`
	PropertiesToShowInCart []string           `json:"propertiesToShowInCart,omitempty" mapstructure:"propertiesToShowInCart"`
}

// OptionGroup is a named, ordered set of selectable variants.
type OptionGroup struct {
	Name     string    `json:"name" mapstructure:"name"`
	Variants []Variant `json:"variants" mapstructure:"variants"`
}

// Variant is one selectable value. A bare scalar carries only Value;
// structured variants add a per-currency additional cost and may carry a
// hook fired when the variant is part of an added cart line.
type Variant struct {
	Value          string             `json:"value" mapstructure:"value"`
	AdditionalCost map[string]float64 `json:"additionalCost,omitempty" mapstructure:"additionalCost"`
	OnSelect       func()             `json:"-" mapstructure:"-"`
}

// Scalar builds a bare variant.
func Scalar(value string) Variant {
	return Variant{Value: value}
}

// Option builds a structured variant with a per-currency additional cost.
func Option(value string, additionalCost map[string]float64) Variant {
	return Variant{Value: value, AdditionalCost: additionalCost}
}

// MarshalJSON writes bare scalars as plain strings and structured variants
// as {value, additionalCost} records, the same shapes UnmarshalJSON reads.
func (v Variant) MarshalJSON() ([]byte, error) {
	if len(v.AdditionalCost) == 0 {
		return json.Marshal(v.Value)
	}
	return json.Marshal(struct {
		Value          string             `json:"value"`
		AdditionalCost map[string]float64 `json:"additionalCost"`
	}{v.Value, v.AdditionalCost})
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	var any interface{}
	if err := json.Unmarshal(data, &any); err != nil {
		return err
	}
	switch val := any.(type) {
	case string:
		*v = Scalar(val)
	case float64:
		*v = Scalar(scalarText(val))
	case map[string]interface{}:
		rec := struct {
			Value          interface{}        `json:"value"`
			AdditionalCost map[string]float64 `json:"additionalCost"`
		}{}
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		*v = Option(anyScalarText(rec.Value), rec.AdditionalCost)
	default:
		return fmt.Errorf("variant: unsupported value %T", any)
	}
	return nil
}

// Selected returns the variant at index. A missing or out-of-range index
// behaves as index 0 (no selection made yet); ok is false only when the
// group has no variants at all.
func (g OptionGroup) Selected(index int) (Variant, bool) {
	if len(g.Variants) == 0 {
		return Variant{}, false
	}
	if index < 0 || index >= len(g.Variants) {
		index = 0
	}
	return g.Variants[index], true
}

// ResolveProperties maps each option group to its selected variant's plain
// value, stripping the cost/hook wrapper.
func (p Product) ResolveProperties(selection map[string]int) map[string]string {
	props := make(map[string]string, len(p.OptionGroups))
	for _, g := range p.OptionGroups {
		if v, ok := g.Selected(selection[g.Name]); ok {
			props[g.Name] = v.Value
		}
	}
	return props
}

// SelectedVariants returns the selected variant per group, in group order.
// Callers use it to fire OnSelect hooks after an add.
func (p Product) SelectedVariants(selection map[string]int) []Variant {
	out := make([]Variant, 0, len(p.OptionGroups))
	for _, g := range p.OptionGroups {
		if v, ok := g.Selected(selection[g.Name]); ok {
			out = append(out, v)
		}
	}
	return out
}

func scalarText(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func anyScalarText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return scalarText(val)
	default:
		return fmt.Sprint(val)
	}
}
