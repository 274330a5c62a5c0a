package catalog

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// variantDecodeHook lets a loosely-typed document write a variant as a bare
// scalar or as a {value, additionalCost} record.
var variantDecodeHook = func() mapstructure.DecodeHookFunc {
	variantType := reflect.TypeOf(Variant{})
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != variantType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return Scalar(v), nil
		case float64:
			return Scalar(scalarText(v)), nil
		case int:
			return Scalar(anyScalarText(v)), nil
		case map[string]interface{}:
			rec := struct {
				Value          interface{}        `mapstructure:"value"`
				AdditionalCost map[string]float64 `mapstructure:"additionalCost"`
			}{}
			if err := mapstructure.WeakDecode(v, &rec); err != nil {
				return nil, err
			}
			return Option(anyScalarText(rec.Value), rec.AdditionalCost), nil
		}
		return data, nil
	}
}()

// DecodeProduct builds a Product from a loosely-typed document, typically a
// decoded JSON request body. Numbers arriving as strings are accepted.
func DecodeProduct(raw map[string]interface{}) (Product, error) {
	var p Product
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       variantDecodeHook,
		Result:           &p,
		TagName:          "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Product{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Product{}, fmt.Errorf("decode product: %w", err)
	}
	if p.ID == "" {
		return Product{}, fmt.Errorf("decode product: missing id")
	}
	return p, nil
}
