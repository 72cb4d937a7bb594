package greeting

import (
	"net/http"

	"github.com/Lelo88/items-api-golang/internal/httpx"
)

// Handler HTTP para la raíz del servicio.
type Handler struct{}

// NewHandler crea un handler de greeting.
func NewHandler() *Handler {
	return &Handler{}
}

// Root maneja GET /: el saludo fijo de bienvenida.
func (handler *Handler) Root(writer http.ResponseWriter, request *http.Request) {
	httpx.JSON(writer, http.StatusOK, map[string]any{"message": "Hello World"})
}
