package product

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/catalog"
	"storefront.GO/core/cache"
	"storefront.GO/cron/jobs"
	productRepo "storefront.GO/model/repository/product"
	productService "storefront.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

// RegisterProductRoutes sets up the catalog API under /api/products.
func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := productRepo.NewProductRepository(db)
	g := apiGroup.Group("/products")

	// GET /api/products – full catalog; served from the warmed feed when present
	g.GET("", func(c echo.Context) error {
		start := time.Now()

		if feed, ok := cache.GetInstance().Get(jobs.FeedCacheKey); ok {
			if body, isString := feed.(string); isString {
				c.Response().Header().Set("X-Feed-Cache", "hit")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(body))
			}
		}

		products, err := repo.ListAll()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{"items": products, "total": len(products)})
	})

	// GET /api/products/:id
	g.GET("/:id", func(c echo.Context) error {
		p, err := repo.GetByProductID(c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, p)
	})

	// GET /api/products/:id/price?currency=USD&<group>=<index>...
	// Option indexes out of range fall back to each group's first variant.
	g.GET("/:id/price", func(c echo.Context) error {
		p, err := repo.GetByProductID(c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		currency := c.QueryParam("currency")
		if currency == "" {
			currency = "USD"
		}
		selection := map[string]int{}
		for name, values := range c.QueryParams() {
			if name == "currency" || len(values) == 0 {
				continue
			}
			if idx, err := strconv.Atoi(values[0]); err == nil {
				selection[name] = idx
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"id":        p.ID,
			"currency":  currency,
			"selection": selection,
			"price":     p.Price(selection, currency),
			"prices":    p.PriceTable(selection),
		})
	})

	// POST /api/products – create or replace one product from JSON
	g.POST("", func(c echo.Context) error {
		var body map[string]interface{}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p, err := catalog.DecodeProduct(body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := repo.Save(p); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		cache.GetInstance().Delete(jobs.FeedCacheKey)
		return c.JSON(http.StatusCreated, p)
	})

	// DELETE /api/products/:id
	g.DELETE("/:id", func(c echo.Context) error {
		if err := repo.DeleteByProductID(c.Param("id")); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		cache.GetInstance().Delete(jobs.FeedCacheKey)
		return c.NoContent(http.StatusNoContent)
	})

	// POST /api/products/import – bulk CSV upsert (auth required via /api middleware)
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		batchSize := 0
		if bs := c.QueryParam("batch_size"); bs != "" {
			if n, err := strconv.Atoi(bs); err == nil {
				batchSize = n
			}
		}

		res, err := productService.ImportCatalog(db, c.Request().Body, productService.ImportOptions{BatchSize: batchSize})
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		cache.GetInstance().Delete(jobs.FeedCacheKey)
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"total_rows":          res.TotalRows,
			"created":             res.Created,
			"updated":             res.Updated,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"counts":              res.Counts,
			"request_duration_ms": duration,
		})
	})
}
