package graphql

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/config"
	_ "storefront.GO/custom"
	graphqlpkg "storefront.GO/graphql"
	"storefront.GO/graphqlserver"
)

// GraphQLRequest is the standard GraphQL request body
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLResponse is the standard GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	registerRoutes(e, schema)
}

// RegisterGraphQLRoutesWithSchema registers /graphql with a custom schema (for tests with mocks).
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, schema *graphql.Schema) {
	registerRoutes(e, schema)
}

func registerRoutes(e *echo.Echo, schema *graphql.Schema) {
	handler := graphqlserver.Handler(schema)
	h := requestContextMiddleware(handler)
	e.POST("/graphql", echo.WrapHandler(h))
	e.GET("/graphql", echo.WrapHandler(h))
	e.GET("/playground", echo.WrapHandler(playgroundHandler()))
}

// requestContextMiddleware resolves currency, locale and cart session for
// the request. Sources in override order: headers, POST JSON variables
// (__Currency/__Locale/__Session), query parameters. A missing session is
// minted and echoed back in the response header.
func requestContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		currency := r.Header.Get(graphqlpkg.HeaderCurrency)
		locale := r.Header.Get(graphqlpkg.HeaderLocale)
		session := r.Header.Get(graphqlpkg.HeaderSession)

		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
			var req struct {
				Variables map[string]interface{} `json:"variables"`
			}
			if json.Unmarshal(body, &req) == nil && req.Variables != nil {
				if v, ok := req.Variables[graphqlpkg.VarCurrency].(string); ok && v != "" {
					currency = v
				}
				if v, ok := req.Variables[graphqlpkg.VarLocale].(string); ok && v != "" {
					locale = v
				}
				if v, ok := req.Variables[graphqlpkg.VarSession].(string); ok && v != "" {
					session = v
				}
			}
		}
		q := r.URL.Query()
		if v := q.Get(graphqlpkg.VarCurrency); v != "" {
			currency = v
		}
		if v := q.Get(graphqlpkg.VarLocale); v != "" {
			locale = v
		}
		if v := q.Get(graphqlpkg.VarSession); v != "" {
			session = v
		}

		if currency == "" && config.AppConfig != nil {
			currency = config.AppConfig.DefaultCurrency
		}
		if locale == "" && config.AppConfig != nil {
			locale = config.AppConfig.DefaultLocale
		}
		if session == "" {
			session = uuid.NewString()
		}
		w.Header().Set(graphqlpkg.HeaderSession, session)

		ctx := graphqlpkg.WithCurrency(r.Context(), strings.ToUpper(currency))
		ctx = graphqlpkg.WithLocale(ctx, locale)
		ctx = graphqlpkg.WithSessionID(ctx, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>GraphQL Playground</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init({ endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
