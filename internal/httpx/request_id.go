package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader es el header de entrada/salida para trazabilidad.
const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID propaga el id de trazabilidad del request: respeta el que
// trae el cliente y genera un UUID cuando falta. El id viaja por contexto
// hacia los handlers y se devuelve siempre en el header de la respuesta;
// los cuerpos quedan intactos.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom lee el id de trazabilidad del request para logs.
// Prioriza el contexto (lo puso el middleware) y cae al header.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	if id, ok := request.Context().Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return request.Header.Get(requestIDHeader)
}
