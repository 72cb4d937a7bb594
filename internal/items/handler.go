package items

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Lelo88/items-api-golang/internal/httpx"
	"github.com/Lelo88/items-api-golang/internal/routing"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs.
type ServiceAPI interface {
	Create(ctx context.Context, item Item) map[string]any
	Replace(ctx context.Context, itemID int, item Item) map[string]any
}

// Handler HTTP para items.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// Read maneja GET /items/{item_id}: devuelve el id coercionado a entero.
func (handler *Handler) Read(writer http.ResponseWriter, request *http.Request) {
	itemID, fieldErrors := parseItemID(request)
	if len(fieldErrors) > 0 {
		httpx.FailValidation(writer, fieldErrors)
		return
	}

	httpx.JSON(writer, http.StatusOK, map[string]any{"item_id": itemID})
}

// Create maneja POST /items/.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	item, fieldErrors := DecodeItem(request.Body)
	if len(fieldErrors) > 0 {
		httpx.FailValidation(writer, fieldErrors)
		return
	}

	httpx.JSON(writer, http.StatusOK, handler.service.Create(request.Context(), item))
}

// Replace maneja PUT /items/{item_id}.
// El path y el body se validan juntos: una sola respuesta 422 enumera
// las violaciones de ambos, con el error del path primero.
func (handler *Handler) Replace(writer http.ResponseWriter, request *http.Request) {
	itemID, fieldErrors := parseItemID(request)

	item, bodyErrors := DecodeItem(request.Body)
	fieldErrors = append(fieldErrors, bodyErrors...)
	if len(fieldErrors) > 0 {
		httpx.FailValidation(writer, fieldErrors)
		return
	}

	httpx.JSON(writer, http.StatusOK, handler.service.Replace(request.Context(), itemID, item))
}

// parseItemID corta el path param a entero; el texto que no parsea es una
// violación con loc ["path","item_id"], no un 404. El id vive en un int de
// Go: lo que desborda se reporta igual que el texto no numérico.
func parseItemID(request *http.Request) (int, []httpx.FieldError) {
	itemID, err := strconv.Atoi(routing.URLParam(request, "item_id"))
	if err != nil {
		return 0, []httpx.FieldError{{
			Loc:  []string{"path", "item_id"},
			Msg:  msgInvalidInteger,
			Type: typeErrorInteger,
		}}
	}
	return itemID, nil
}
