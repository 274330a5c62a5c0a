package graphql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront.GO/catalog"
	"storefront.GO/config"
	cartEntity "storefront.GO/model/entity/cart"
	productEntity "storefront.GO/model/entity/product"
	productRepo "storefront.GO/model/repository/product"
)

func gqlTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	config.LoadAppConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&cartEntity.CartRecord{},
		&productEntity.Product{},
		&productEntity.Price{},
		&productEntity.OptionGroup{},
		&productEntity.OptionValue{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := productRepo.NewProductRepository(db).Save(catalog.Product{
		ID:         "jacket",
		Name:       "Jacket",
		BasePrices: map[string]float64{"USD": 70, "EUR": 60},
		OptionGroups: []catalog.OptionGroup{
			{Name: "colour", Variants: []catalog.Variant{
				catalog.Scalar("red"),
				catalog.Option("yellow", map[string]float64{"USD": 3.5, "EUR": 3}),
			}},
		},
		PropertiesToShowInCart: []string{"colour"},
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	e := echo.New()
	RegisterGraphQLRoutes(e, db)
	return e
}

type gqlResult struct {
	Data   map[string]interface{}
	Errors []struct{ Message string }
}

func doGQL(t *testing.T, e *echo.Echo, query string, variables map[string]interface{}, headers map[string]string) (gqlResult, *httptest.ResponseRecorder) {
	t.Helper()
	body := map[string]interface{}{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("graphql status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp gqlResult
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, rec
}

func mustNoErrors(t *testing.T, resp gqlResult) {
	t.Helper()
	if len(resp.Errors) > 0 {
		t.Fatalf("graphql errors: %v", resp.Errors)
	}
}

// ---------- Catalog queries ----------

func TestGraphQL_Products(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `query { products { id name price } }`, nil, nil)
	mustNoErrors(t, resp)
	items := resp.Data["products"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("products len = %d, want 1", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["id"] != "jacket" {
		t.Errorf("id = %v, want jacket", item["id"])
	}
	if item["price"] != float64(70) {
		t.Errorf("price = %v, want 70 (default currency)", item["price"])
	}
}

func TestGraphQL_Product_ByID(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `query($id: String!) {
		product(id: $id) {
			id
			basePrices { currency amount }
			optionGroups { name variants { value additionalCost { currency amount } } }
			propertiesToShowInCart
		}
	}`, map[string]interface{}{"id": "jacket"}, nil)
	mustNoErrors(t, resp)

	product := resp.Data["product"].(map[string]interface{})
	prices := product["basePrices"].([]interface{})
	if len(prices) != 2 {
		t.Fatalf("basePrices len = %d, want 2", len(prices))
	}
	// Sorted by currency code.
	first := prices[0].(map[string]interface{})
	if first["currency"] != "EUR" || first["amount"] != float64(60) {
		t.Errorf("basePrices[0] = %v, want EUR 60", first)
	}

	groups := product["optionGroups"].([]interface{})
	if len(groups) != 1 {
		t.Fatalf("optionGroups len = %d, want 1", len(groups))
	}
	variants := groups[0].(map[string]interface{})["variants"].([]interface{})
	if len(variants) != 2 {
		t.Fatalf("variants len = %d, want 2", len(variants))
	}
	red := variants[0].(map[string]interface{})
	if red["value"] != "red" || len(red["additionalCost"].([]interface{})) != 0 {
		t.Errorf("variants[0] = %v, want bare red", red)
	}
	yellow := variants[1].(map[string]interface{})
	costs := yellow["additionalCost"].([]interface{})
	if len(costs) != 2 {
		t.Fatalf("yellow additionalCost len = %d, want 2", len(costs))
	}
}

func TestGraphQL_Product_Unknown_Null(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `query { product(id: "nope") { id } }`, nil, nil)
	mustNoErrors(t, resp)
	if resp.Data["product"] != nil {
		t.Errorf("product = %v, want null", resp.Data["product"])
	}
}

func TestGraphQL_Price_CurrencyArg(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `query { product(id: "jacket") { price(currency: "EUR") } }`, nil, nil)
	mustNoErrors(t, resp)
	product := resp.Data["product"].(map[string]interface{})
	if product["price"] != float64(60) {
		t.Errorf("price = %v, want 60", product["price"])
	}
}

func TestGraphQL_Price_CurrencyFromRequestContext(t *testing.T) {
	e := gqlTestServer(t)

	// Header sets the currency; the __Currency variable overrides it.
	resp, _ := doGQL(t, e, `query { product(id: "jacket") { price } }`,
		map[string]interface{}{"__Currency": "EUR"},
		map[string]string{"Currency": "USD"})
	mustNoErrors(t, resp)
	product := resp.Data["product"].(map[string]interface{})
	if product["price"] != float64(60) {
		t.Errorf("price = %v, want 60 via __Currency variable", product["price"])
	}
}

// ---------- Cart flow ----------

func TestGraphQL_CartFlow(t *testing.T) {
	e := gqlTestServer(t)
	session := map[string]string{"X-Session-ID": "gql-sess-flow"}

	resp, _ := doGQL(t, e, `mutation($sel: [SelectionInput!]) {
		addToCart(productId: "jacket", quantity: 2, selection: $sel) {
			sessionId currency totalQuantity total formattedTotal
			items { key productId name quantity price lineTotal properties { name value } }
		}
	}`, map[string]interface{}{
		"sel": []map[string]interface{}{{"group": "colour", "index": 1}},
	}, session)
	mustNoErrors(t, resp)

	cart := resp.Data["addToCart"].(map[string]interface{})
	if cart["sessionId"] != "gql-sess-flow" {
		t.Errorf("sessionId = %v", cart["sessionId"])
	}
	if cart["totalQuantity"] != float64(2) || cart["total"] != float64(147) {
		t.Errorf("totals = %v/%v, want 2/147", cart["totalQuantity"], cart["total"])
	}
	if cart["formattedTotal"] != "$147" {
		t.Errorf("formattedTotal = %v, want $147", cart["formattedTotal"])
	}
	items := cart["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items len = %d, want 1", len(items))
	}
	line := items[0].(map[string]interface{})
	if line["key"] != "jacket/colour=yellow" {
		t.Errorf("key = %v, want jacket/colour=yellow", line["key"])
	}
	if line["price"] != float64(73.5) || line["lineTotal"] != float64(147) {
		t.Errorf("line price/total = %v/%v, want 73.5/147", line["price"], line["lineTotal"])
	}

	// Update quantity on the same session.
	resp, _ = doGQL(t, e, `mutation {
		updateCartItem(key: "jacket/colour=yellow", quantity: 5) { totalQuantity total }
	}`, nil, session)
	mustNoErrors(t, resp)
	cart = resp.Data["updateCartItem"].(map[string]interface{})
	if cart["totalQuantity"] != float64(5) || cart["total"] != float64(367.5) {
		t.Errorf("after update = %v/%v, want 5/367.5", cart["totalQuantity"], cart["total"])
	}

	// Remove the line; the empty cart formats as $0.
	resp, _ = doGQL(t, e, `mutation {
		removeCartItem(key: "jacket/colour=yellow") { totalQuantity formattedTotal }
	}`, nil, session)
	mustNoErrors(t, resp)
	cart = resp.Data["removeCartItem"].(map[string]interface{})
	if cart["totalQuantity"] != float64(0) || cart["formattedTotal"] != "$0" {
		t.Errorf("after remove = %v/%v, want 0/$0", cart["totalQuantity"], cart["formattedTotal"])
	}
}

func TestGraphQL_CartQuery_ReadsSession(t *testing.T) {
	e := gqlTestServer(t)
	session := map[string]string{"X-Session-ID": "gql-sess-read"}

	resp, _ := doGQL(t, e, `mutation { addToCart(productId: "jacket") { totalQuantity } }`, nil, session)
	mustNoErrors(t, resp)

	resp, _ = doGQL(t, e, `query { cart { totalQuantity items { key quantity } } }`, nil, session)
	mustNoErrors(t, resp)
	cart := resp.Data["cart"].(map[string]interface{})
	if cart["totalQuantity"] != float64(1) {
		t.Errorf("totalQuantity = %v, want 1 (default quantity)", cart["totalQuantity"])
	}
}

func TestGraphQL_AddToCart_InvalidQuantity(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `mutation { addToCart(productId: "jacket", quantity: 0) { totalQuantity } }`,
		nil, map[string]string{"X-Session-ID": "gql-sess-badqty"})
	if len(resp.Errors) == 0 {
		t.Fatal("want error for zero quantity")
	}
}

func TestGraphQL_AddToCart_UnknownProduct(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `mutation { addToCart(productId: "nope") { totalQuantity } }`,
		nil, map[string]string{"X-Session-ID": "gql-sess-unknown"})
	if len(resp.Errors) == 0 {
		t.Fatal("want error for unknown product")
	}
}

func TestGraphQL_SetCurrency(t *testing.T) {
	e := gqlTestServer(t)
	session := map[string]string{"X-Session-ID": "gql-sess-currency"}

	resp, _ := doGQL(t, e, `mutation($sel: [SelectionInput!]) {
		addToCart(productId: "jacket", selection: $sel) { total }
	}`, map[string]interface{}{
		"sel": []map[string]interface{}{{"group": "colour", "index": 1}},
	}, session)
	mustNoErrors(t, resp)

	resp, _ = doGQL(t, e, `mutation { setCurrency(currency: "eur") { currency total } }`, nil, session)
	mustNoErrors(t, resp)
	cart := resp.Data["setCurrency"].(map[string]interface{})
	if cart["currency"] != "EUR" || cart["total"] != float64(63) {
		t.Errorf("after setCurrency = %v/%v, want EUR/63", cart["currency"], cart["total"])
	}
}

func TestGraphQL_CartTotals(t *testing.T) {
	e := gqlTestServer(t)
	session := map[string]string{"X-Session-ID": "gql-sess-totals"}

	resp, _ := doGQL(t, e, `mutation($sel: [SelectionInput!]) {
		addToCart(productId: "jacket", selection: $sel) { totalQuantity }
	}`, map[string]interface{}{
		"sel": []map[string]interface{}{{"group": "colour", "index": 1}},
	}, session)
	mustNoErrors(t, resp)

	resp, _ = doGQL(t, e, `query {
		cartTotals(currencies: ["USD", "EUR"]) { currency total formatted }
	}`, nil, session)
	mustNoErrors(t, resp)
	totals := resp.Data["cartTotals"].([]interface{})
	if len(totals) != 2 {
		t.Fatalf("cartTotals len = %d, want 2", len(totals))
	}
	usd := totals[0].(map[string]interface{})
	if usd["currency"] != "USD" || usd["total"] != float64(73.5) || usd["formatted"] != "$73.5" {
		t.Errorf("USD total = %v, want 73.5/$73.5", usd)
	}
	eur := totals[1].(map[string]interface{})
	if eur["currency"] != "EUR" || eur["total"] != float64(63) {
		t.Errorf("EUR total = %v, want 63", eur)
	}
}

// ---------- Context and extensions ----------

func TestGraphQL_SessionMinted(t *testing.T) {
	e := gqlTestServer(t)

	_, rec := doGQL(t, e, `query { cart { sessionId } }`, nil, nil)
	if rec.Header().Get("X-Session-ID") == "" {
		t.Error("minted session not echoed in response header")
	}
}

func TestGraphQL_Extension_Registry(t *testing.T) {
	e := gqlTestServer(t)

	resp, _ := doGQL(t, e, `query { _extension(name: "ping", args: "{}") }`, nil, nil)
	mustNoErrors(t, resp)
	s, ok := resp.Data["_extension"].(string)
	if !ok || s != `{"pong":"ok"}` {
		t.Errorf("_extension = %v, want %q", resp.Data["_extension"], `{"pong":"ok"}`)
	}
}

func TestGraphQL_Playground(t *testing.T) {
	e := gqlTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/playground", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("GraphQLPlayground")) {
		t.Error("playground HTML missing")
	}
}
