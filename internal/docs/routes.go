package docs

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la documentación (Swagger UI + documento OpenAPI).
// El documento vive en /openapi.json porque swagger.html lo consume por
// esa URL absoluta.
func RegisterRoutes(r chi.Router) {
	r.Get("/docs", SwaggerUIHandler())
	r.Get("/openapi.json", OpenAPIHandler())
}
