package cart

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"storefront.GO/api"
	storecart "storefront.GO/cart"
	"storefront.GO/config"
	"storefront.GO/i18n"
	cartRepo "storefront.GO/model/repository/cart"
	productRepo "storefront.GO/model/repository/product"
	sessionService "storefront.GO/service/session"
	"storefront.GO/store"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

const (
	// SessionHeader carries the cart session for API clients; the same id is
	// echoed back on every response.
	SessionHeader = "X-Session-ID"
	// SessionCookie carries the cart session for browser clients.
	SessionCookie = "storefront_session"
)

// sessionID resolves the cart session from header or cookie, minting a new
// one when the request carries neither.
func sessionID(c echo.Context) (string, bool) {
	if sid := c.Request().Header.Get(SessionHeader); sid != "" {
		return sid, false
	}
	if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
		return ck.Value, false
	}
	return uuid.NewString(), true
}

// EnsureSession returns the request's session id, setting the cookie and
// response header so clients keep it.
func EnsureSession(c echo.Context) string {
	sid, minted := sessionID(c)
	if minted {
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    sid,
			Path:     "/",
			MaxAge:   30 * 24 * 3600,
			HttpOnly: true,
		})
	}
	c.Response().Header().Set(SessionHeader, sid)
	return sid
}

// parseQuantityValue funnels JSON numbers and numeric strings through the
// same positive-integer gate.
func parseQuantityValue(v interface{}) (int, bool) {
	switch q := v.(type) {
	case float64:
		return storecart.QuantityFromNumber(q)
	case string:
		return storecart.ParseQuantity(q)
	default:
		return 0, false
	}
}

func stateResponse(sid string, st store.State) echo.Map {
	return echo.Map{
		"session_id":     sid,
		"currency":       st.Currency,
		"items":          st.Cart,
		"total_quantity": st.Cart.TotalQuantity(),
		"total":          st.Cart.Total(st.Currency),
	}
}

// RegisterCartRoutes sets up the cart API under /api/cart.
func RegisterCartRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := cartRepo.NewCartRepository(db, config.RedisClient)
	products := productRepo.NewProductRepository(db)
	g := apiGroup.Group("/cart")

	withStore := func(c echo.Context) (string, *store.Store, error) {
		sid := EnsureSession(c)
		s, err := sessionService.StoreFor(repo, sid)
		if err != nil {
			return sid, nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return sid, s, nil
	}

	// GET /api/cart – current session state
	g.GET("", func(c echo.Context) error {
		sid, s, err := withStore(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, stateResponse(sid, s.State()))
	})

	// POST /api/cart/items – add a product; same key lines merge quantities
	g.POST("/items", func(c echo.Context) error {
		var body struct {
			ProductID string         `json:"product_id"`
			Quantity  interface{}    `json:"quantity"`
			Selection map[string]int `json:"selection"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.ProductID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
		}
		qty := 1
		if body.Quantity != nil {
			n, ok := parseQuantityValue(body.Quantity)
			if !ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive integer"})
			}
			qty = n
		}

		p, err := products.GetByProductID(body.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		sid, s, herr := withStore(c)
		if herr != nil {
			return herr
		}

		item := storecart.BuildLineItem(p, qty, body.Selection)
		key := storecart.DefaultKey(p.ID, item.Properties)
		st := s.Dispatch(store.AddProduct{Key: key, Item: item, Currency: s.State().Currency})

		resp := stateResponse(sid, st)
		resp["key"] = key
		return c.JSON(http.StatusOK, resp)
	})

	// PATCH /api/cart/items/<key> – shallow-merge patch; absent keys no-op.
	// Keys contain slashes ("jacket/colour=yellow"), so the route is a wildcard.
	g.PATCH("/items/*", func(c echo.Context) error {
		var body struct {
			Quantity   interface{}            `json:"quantity"`
			Properties map[string]string      `json:"properties"`
			Product    *storecart.ProductInfo `json:"productInfo"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		patch := storecart.Patch{Properties: body.Properties, ProductInfo: body.Product}
		if body.Quantity != nil {
			n, ok := parseQuantityValue(body.Quantity)
			if !ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive integer"})
			}
			patch.Quantity = &n
		}

		sid, s, herr := withStore(c)
		if herr != nil {
			return herr
		}
		st := s.Dispatch(store.UpdateProduct{Key: c.Param("*"), Patch: patch})
		return c.JSON(http.StatusOK, stateResponse(sid, st))
	})

	// DELETE /api/cart/items/<key> – absent keys no-op
	g.DELETE("/items/*", func(c echo.Context) error {
		sid, s, herr := withStore(c)
		if herr != nil {
			return herr
		}
		st := s.Dispatch(store.RemoveProduct{Key: c.Param("*")})
		return c.JSON(http.StatusOK, stateResponse(sid, st))
	})

	// PUT /api/cart/currency – switch the session display currency
	g.PUT("/currency", func(c echo.Context) error {
		var body struct {
			Currency string `json:"currency"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Currency == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "currency required"})
		}

		sid, s, herr := withStore(c)
		if herr != nil {
			return herr
		}
		st := s.Dispatch(store.SetCurrency{Currency: strings.ToUpper(body.Currency)})
		return c.JSON(http.StatusOK, stateResponse(sid, st))
	})

	// GET /api/cart/totals?currencies=USD,EUR&locale=en – per-currency totals
	g.GET("/totals", func(c echo.Context) error {
		sid, s, herr := withStore(c)
		if herr != nil {
			return herr
		}
		st := s.State()

		var codes []string
		if q := c.QueryParam("currencies"); q != "" {
			for _, code := range strings.Split(q, ",") {
				if code = strings.TrimSpace(code); code != "" {
					codes = append(codes, strings.ToUpper(code))
				}
			}
		} else {
			for code := range i18n.DefaultTable(i18n.ScopeCurrency) {
				codes = append(codes, code)
			}
			sort.Strings(codes)
		}

		locale := c.QueryParam("locale")
		if locale == "" {
			locale = i18n.DefaultLocale
		}

		totals := make(map[string]float64, len(codes))
		formatted := make(map[string]string, len(codes))
		var mu sync.Mutex
		eg := new(errgroup.Group)
		for _, code := range codes {
			code := code
			eg.Go(func() error {
				total := st.Cart.Total(code)
				label := i18n.ResolverFor(locale, i18n.ScopeCheckoutButton).Text("totalValue", i18n.Params{
					"currency": i18n.CurrencySymbol(locale, code),
					"total":    total,
				})
				mu.Lock()
				totals[code] = total
				formatted[code] = label
				mu.Unlock()
				return nil
			})
		}
		_ = eg.Wait()

		return c.JSON(http.StatusOK, echo.Map{
			"session_id": sid,
			"currency":   st.Currency,
			"quantity":   st.Cart.TotalQuantity(),
			"totals":     totals,
			"formatted":  formatted,
		})
	})
}
