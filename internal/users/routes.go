package users

import "github.com/Lelo88/items-api-golang/internal/routing"

// RegisterRoutes registra las rutas de users en la tabla.
// /users/me tiene que ir antes que /users/{user_id}: la tabla despacha
// al primer match y el orden de registro es el orden de evaluación.
func RegisterRoutes(table *routing.Table, handler *Handler) {
	table.Get("/users/me", handler.ReadMe)
	table.Get("/users/{user_id}", handler.Read)
}
