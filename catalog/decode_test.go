package catalog

import (
	"encoding/json"
	"testing"
)

func TestDecodeProduct_MixedVariantForms(t *testing.T) {
	body := []byte(`{
		"id": "jacket",
		"name": "Jacket",
		"prices": {"USD": 70, "EUR": "60"},
		"optionGroups": [
			{"name": "colour", "variants": [
				"red",
				{"value": "yellow", "additionalCost": {"USD": 3.5}}
			]}
		],
		"propertiesToShowInCart": ["colour"]
	}`)
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatal(err)
	}
	p, err := DecodeProduct(raw)
	if err != nil {
		t.Fatalf("DecodeProduct: %v", err)
	}
	if p.ID != "jacket" || p.Name != "Jacket" {
		t.Errorf("product = %+v, want id/name decoded", p)
	}
	if p.BasePrices["USD"] != 70 {
		t.Errorf("USD = %v, want 70", p.BasePrices["USD"])
	}
	// Weakly typed input: "60" as a string still lands as a number.
	if p.BasePrices["EUR"] != 60 {
		t.Errorf("EUR = %v, want 60", p.BasePrices["EUR"])
	}
	if len(p.OptionGroups) != 1 || len(p.OptionGroups[0].Variants) != 2 {
		t.Fatalf("optionGroups = %+v, want one group with two variants", p.OptionGroups)
	}
	if v := p.OptionGroups[0].Variants[0]; v.Value != "red" || len(v.AdditionalCost) != 0 {
		t.Errorf("variant 0 = %+v, want bare red", v)
	}
	if v := p.OptionGroups[0].Variants[1]; v.Value != "yellow" || v.AdditionalCost["USD"] != 3.5 {
		t.Errorf("variant 1 = %+v, want yellow +3.5 USD", v)
	}
}

func TestDecodeProduct_MissingID(t *testing.T) {
	_, err := DecodeProduct(map[string]interface{}{"name": "nameless"})
	if err == nil {
		t.Error("DecodeProduct: want error for missing id")
	}
}
