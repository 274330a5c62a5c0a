// Package models holds the GraphQL view types and their constructors.
// Constructors sort map-backed fields so responses are deterministic.
package models

import "sort"

type Money struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// MoneyList renders a currency-to-amount map as a sorted list.
func MoneyList(amounts map[string]float64) []*Money {
	codes := make([]string, 0, len(amounts))
	for code := range amounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]*Money, 0, len(codes))
	for _, code := range codes {
		out = append(out, &Money{Currency: code, Amount: amounts[code]})
	}
	return out
}

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PropertyList renders a name-to-value map as a sorted list.
func PropertyList(props map[string]string) []*Property {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Property, 0, len(names))
	for _, name := range names {
		out = append(out, &Property{Name: name, Value: props[name]})
	}
	return out
}

type OptionGroup struct {
	Name     string     `json:"name"`
	Variants []*Variant `json:"variants"`
}

type Variant struct {
	Value          string   `json:"value"`
	AdditionalCost []*Money `json:"additionalCost"`
}

type CartTotal struct {
	Currency  string  `json:"currency"`
	Total     float64 `json:"total"`
	Formatted string  `json:"formatted"`
}
