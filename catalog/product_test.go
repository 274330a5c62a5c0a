package catalog

import (
	"encoding/json"
	"testing"
)

func TestSelected_ClampsToFirstVariant(t *testing.T) {
	g := OptionGroup{Name: "colour", Variants: []Variant{Scalar("red"), Scalar("blue")}}
	for _, idx := range []int{-5, 2, 100} {
		v, ok := g.Selected(idx)
		if !ok || v.Value != "red" {
			t.Errorf("Selected(%d) = %v, %v; want red, true", idx, v.Value, ok)
		}
	}
	v, ok := g.Selected(1)
	if !ok || v.Value != "blue" {
		t.Errorf("Selected(1) = %v, %v; want blue, true", v.Value, ok)
	}
}

func TestSelected_EmptyGroup(t *testing.T) {
	g := OptionGroup{Name: "empty"}
	if _, ok := g.Selected(0); ok {
		t.Error("Selected on empty group: want ok=false")
	}
}

func TestResolveProperties_StripsWrapper(t *testing.T) {
	p := Product{
		ID: "jacket",
		OptionGroups: []OptionGroup{
			{Name: "colour", Variants: []Variant{
				Scalar("red"),
				Option("yellow", map[string]float64{"USD": 3.5}),
			}},
			{Name: "size", Variants: []Variant{Scalar("S"), Scalar("M")}},
		},
	}
	props := p.ResolveProperties(map[string]int{"colour": 1})
	if props["colour"] != "yellow" {
		t.Errorf("colour = %q, want yellow", props["colour"])
	}
	if props["size"] != "S" {
		t.Errorf("size = %q, want default S", props["size"])
	}
}

func TestVariantJSON_ScalarForm(t *testing.T) {
	data, err := json.Marshal(Scalar("red"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"red"` {
		t.Errorf("Marshal = %s, want bare string", data)
	}
	var v Variant
	if err := json.Unmarshal([]byte(`"red"`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Value != "red" || len(v.AdditionalCost) != 0 {
		t.Errorf("Unmarshal = %+v, want bare scalar", v)
	}
}

func TestVariantJSON_RecordForm(t *testing.T) {
	in := Option("yellow", map[string]float64{"USD": 3.5})
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var v Variant
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatal(err)
	}
	if v.Value != "yellow" {
		t.Errorf("Value = %q, want yellow", v.Value)
	}
	if v.AdditionalCost["USD"] != 3.5 {
		t.Errorf("AdditionalCost = %v, want USD 3.5", v.AdditionalCost)
	}
}

func TestVariantJSON_NumericScalar(t *testing.T) {
	var v Variant
	if err := json.Unmarshal([]byte(`42`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Value != "42" {
		t.Errorf("Value = %q, want 42", v.Value)
	}
}
