package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// templateDecodeHook lets a bundle file write either a plain string or a
// {component, text, props} object wherever a template is expected.
var templateDecodeHook = func() mapstructure.DecodeHookFunc {
	templateType := reflect.TypeOf(Template{})
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != templateType {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return Template{Text: s}, nil
		}
		return data, nil
	}
}()

// ParseBundle decodes a scope→id→template JSON document.
func ParseBundle(data []byte) (Bundle, error) {
	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	var bundle Bundle
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       templateDecodeHook,
		Result:           &bundle,
		TagName:          "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	return bundle, nil
}

// LoadFile parses one locale bundle file.
func LoadFile(path string) (Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBundle(data)
}

// LoadDir loads and registers locale bundles from dir. Each *.json file
// holds one locale named by the file, so locales/de.json registers "de".
// A missing dir is not an error; locale files are optional.
func LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		locale := strings.TrimSuffix(e.Name(), ".json")
		bundle, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("load locale %s: %w", locale, err)
		}
		Register(locale, bundle)
	}
	return nil
}
