package html

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Template is the echo renderer for the storefront widget pages.
type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewRenderer parses the widget templates. Register the result as the echo
// renderer before applying the html routes.
func NewRenderer() *Template {
	return &Template{Templates: template.Must(template.New("widgets").Parse(widgetTemplates))}
}

// widgetTemplates holds the storefront widget markup. The pages carry no
// styling beyond the critical CSS block; themes override by shipping their
// own renderer.
const widgetTemplates = `
{{define "layout_head"}}<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{if .CriticalCSS}}<style>{{.CriticalCSS}}</style>{{end}}
</head>
<body>
{{end}}

{{define "layout_foot"}}</body>
</html>
{{end}}

{{define "product_form"}}{{template "layout_head" .}}
<section class="product-form" data-product-id="{{.ID}}">
  {{if .ImagePath}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
  <h1>{{.Name}}</h1>
  <p class="price">{{.PriceText}}</p>
  <form method="post" action="{{.AddAction}}">
    {{range .Options}}
    <label>{{.Name}}
      <select name="{{.Field}}">
        {{range .Choices}}<option value="{{.Index}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
        {{end}}
      </select>
    </label>
    {{end}}
    <label>{{.QuantityLabel}}
      <input type="text" name="quantity" value="{{.Quantity}}">
    </label>
    <input type="hidden" name="lastQuantity" value="{{.Quantity}}">
    <button type="submit">{{.AddLabel}}</button>
  </form>
</section>
{{template "layout_foot" .}}{{end}}

{{define "cart_page"}}{{template "layout_head" .}}
<section class="cart">
  <h1>{{.Title}}</h1>
  {{if .Lines}}
  <p class="cart-count">{{.CountText}}</p>
  <ul class="cart-lines">
    {{range .Lines}}
    <li data-key="{{.Key}}">
      {{if .ImagePath}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
      <a href="{{.Path}}">{{.Name}}</a>
      {{if .Properties}}<dl>{{range .Properties}}<dt>{{.Name}}</dt><dd>{{.Value}}</dd>{{end}}</dl>{{end}}
      <form method="post" action="/cart/update">
        <input type="hidden" name="key" value="{{.Key}}">
        <label>{{.QuantityText}}
          <input type="text" name="quantity" value="{{.Quantity}}">
        </label>
        <button type="submit">&#10003;</button>
      </form>
      <span class="line-price">{{.PriceText}}</span>
      <span class="line-total">{{.TotalText}}</span>
      <form method="post" action="/cart/remove">
        <input type="hidden" name="key" value="{{.Key}}">
        <button type="submit">{{.RemoveLabel}}</button>
      </form>
    </li>
    {{end}}
  </ul>
  {{else}}
  <p class="cart-empty">{{.EmptyText}}</p>
  {{end}}
  <form method="post" action="/cart/currency" class="currency-switch">
    <select name="currency">
      {{range .Currencies}}<option value="{{.Code}}"{{if .Selected}} selected{{end}}>{{.Code}} {{.Symbol}}</option>
      {{end}}
    </select>
    <button type="submit">&#8635;</button>
  </form>
  {{if .Lines}}
  <a class="checkout-button" href="{{.CheckoutHref}}">{{.CheckoutLabel}} &mdash; {{.TotalText}}</a>
  {{end}}
</section>
{{template "layout_foot" .}}{{end}}
`
