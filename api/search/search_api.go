package search

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	productRepo "storefront.GO/model/repository/product"
	searchService "storefront.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterSearchRoutes)
}

// RegisterSearchRoutes sets up catalog search under /api/search.
// Elasticsearch answers when configured, otherwise the database does.
func RegisterSearchRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := productRepo.NewProductRepository(db)
	g := apiGroup.Group("/search")

	// GET /api/search?q=jacket&limit=20
	g.GET("", func(c echo.Context) error {
		start := time.Now()

		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing query parameter q"})
		}
		limit := 20
		if l := c.QueryParam("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 {
				limit = n
			}
		}

		source := "elasticsearch"
		var products interface{}

		svc := searchService.GetService()
		ids, err := svc.Search(c.Request().Context(), q, limit)
		if err == nil {
			products, err = repo.GetByProductIDs(ids)
		}
		if err != nil {
			// Not configured or unreachable. LIKE matching keeps the
			// endpoint working without the search backend.
			source = "database"
			products, err = repo.SearchByName(q, limit)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		c.Response().Header().Set("X-Search-Source", source)
		return c.JSON(http.StatusOK, echo.Map{
			"query":  q,
			"items":  products,
			"source": source,
		})
	})
}
