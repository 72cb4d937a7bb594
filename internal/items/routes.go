package items

import "github.com/Lelo88/items-api-golang/internal/routing"

// RegisterRoutes registra las rutas de items en la tabla.
// Mantener esto separado hace que main.go no crezca sin control.
func RegisterRoutes(table *routing.Table, handler *Handler) {
	table.Get("/items/{item_id}", handler.Read)
	table.Post("/items/", handler.Create)
	table.Put("/items/{item_id}", handler.Replace)
}
