package greeting

import "github.com/Lelo88/items-api-golang/internal/routing"

// RegisterRoutes registra la ruta raíz en la tabla.
func RegisterRoutes(table *routing.Table, handler *Handler) {
	table.Get("/", handler.Root)
}
