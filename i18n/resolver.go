package i18n

import "fmt"

// Resolver resolves template ids against one scope table. It holds no locale
// state of its own: switching language means building a resolver over
// another bundle's table.
type Resolver struct {
	table    Table
	fallback Table
}

// NewResolver returns a resolver over table.
func NewResolver(table Table) *Resolver {
	return &Resolver{table: table}
}

// WithFallback sets the table consulted when an id is absent from the active
// table. Returns the resolver for chaining.
func (r *Resolver) WithFallback(table Table) *Resolver {
	r.fallback = table
	return r
}

// Resolve formats the template registered under id with params. A missing id
// yields the id itself as visible fallback text together with
// ErrMissingTemplate; callers decide how loudly to surface that.
func (r *Resolver) Resolve(id string, params Params) (Rendered, error) {
	tpl, ok := r.lookup(id)
	if !ok {
		return Rendered{Text: id}, fmt.Errorf("%w: %q", ErrMissingTemplate, id)
	}
	return Rendered{
		Component: tpl.Component,
		Text:      formatWith(tpl.Text, newParamReader(params)),
		Props:     tpl.Props,
	}, nil
}

// Text resolves id and returns only the formatted text. Missing templates
// fall back to the id; use Resolve when the error matters.
func (r *Resolver) Text(id string, params Params) string {
	out, _ := r.Resolve(id, params)
	return out.Text
}

// Has reports whether id is present in the active or fallback table.
func (r *Resolver) Has(id string) bool {
	_, ok := r.lookup(id)
	return ok
}

func (r *Resolver) lookup(id string) (Template, bool) {
	if tpl, ok := r.table[id]; ok {
		return tpl, true
	}
	tpl, ok := r.fallback[id]
	return tpl, ok
}
