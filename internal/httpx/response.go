package httpx

import (
	"encoding/json"
	"net/http"
)

// FieldError describe una violación puntual del request.
// Loc ubica el origen (ej: ["path","item_id"] o ["body","price"]),
// Msg es el mensaje para humanos y Type un código estable para clientes.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// detail es el cuerpo plano de error: {"detail": ...}.
// Las respuestas exitosas no llevan sobre; se escriben tal cual con JSON.
type detail struct {
	Detail any `json:"detail"`
}

// JSON escribe una respuesta JSON con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)

	if err := enc.Encode(payload); err != nil {
		// Último recurso: no se pudo serializar JSON.
		http.Error(w, `{"detail":"Internal Server Error"}`, http.StatusInternalServerError)
	}
}

// Fail devuelve un error plano: {"detail": message}.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, detail{Detail: message})
}

// FailValidation devuelve 422 con la lista completa de violaciones,
// para que el cliente pueda corregir todo en una sola pasada.
func FailValidation(w http.ResponseWriter, errs []FieldError) {
	JSON(w, http.StatusUnprocessableEntity, detail{Detail: errs})
}
