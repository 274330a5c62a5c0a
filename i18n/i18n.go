// Package i18n resolves message templates against parameter bags.
//
// Templates live in per-locale bundles, one table per widget scope. A
// template is either a plain string or a structured record naming a wrapper
// component. Template text supports {name} placeholder substitution and
// plural selection:
//
//	{count, plural, =0 {none} one {one item} other {# items}}
//
// Inside a plural branch # stands for the formatted count. Tables are
// immutable once built; switching language means resolving against another
// bundle, never mutating one in place.
package i18n

import (
	"errors"
	"html/template"
	"sort"
	"strings"
)

// ErrMissingTemplate is returned when a template id is absent from both the
// active table and the fallback table.
var ErrMissingTemplate = errors.New("i18n: missing template")

// Template is one localizable message. Component is empty for plain string
// templates; when set, renderers wrap the formatted text in that element
// with Props as attributes.
type Template struct {
	Component string                 `mapstructure:"component" json:"component,omitempty"`
	Text      string                 `mapstructure:"text" json:"text"`
	Props     map[string]interface{} `mapstructure:"props" json:"props,omitempty"`
}

// Table maps template ids to templates for one scope.
type Table map[string]Template

// Bundle maps scope names to tables for one locale.
type Bundle map[string]Table

// Rendered is resolver output: the formatted text plus the wrapper component
// of structured templates.
type Rendered struct {
	Component string
	Text      string
	Props     map[string]interface{}
}

func (r Rendered) String() string { return r.Text }

// HTML renders the text, wrapped in the component element when one is set.
// Text and attribute values are escaped; props are emitted in sorted order.
func (r Rendered) HTML() template.HTML {
	if r.Component == "" {
		return template.HTML(template.HTMLEscapeString(r.Text))
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(r.Component)
	keys := make([]string, 0, len(r.Props))
	for k := range r.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(formatValue(r.Props[k])))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(template.HTMLEscapeString(r.Text))
	b.WriteString("</")
	b.WriteString(r.Component)
	b.WriteByte('>')
	return template.HTML(b.String())
}
