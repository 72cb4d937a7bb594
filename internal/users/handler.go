package users

import (
	"net/http"

	"github.com/Lelo88/items-api-golang/internal/httpx"
	"github.com/Lelo88/items-api-golang/internal/routing"
)

// Handler HTTP para users. No hay service detrás: los endpoints
// devuelven el identificador tal cual, sin reglas de negocio.
type Handler struct{}

// NewHandler crea un handler de users.
func NewHandler() *Handler {
	return &Handler{}
}

// ReadMe maneja GET /users/me: el usuario autenticado fijo.
func (handler *Handler) ReadMe(writer http.ResponseWriter, request *http.Request) {
	httpx.JSON(writer, http.StatusOK, map[string]any{"user_id": "the current user"})
}

// Read maneja GET /users/{user_id}: devuelve el id como texto.
// A diferencia de items, acá no hay coerción a entero.
func (handler *Handler) Read(writer http.ResponseWriter, request *http.Request) {
	userID := routing.URLParam(request, "user_id")
	httpx.JSON(writer, http.StatusOK, map[string]any{"user_id": userID})
}
