package routing

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// Context lleva el resultado del match para el request en curso.
// Es mutable a propósito: un middleware externo puede instalarlo antes del
// dispatch y leer RoutePattern después, porque la tabla escribe sobre el
// mismo puntero.
type Context struct {
	// RoutePattern es el patrón registrado que matcheó, ej "/items/{item_id}".
	// Queda vacío si ningún patrón matcheó.
	RoutePattern string

	paramKeys   []string
	paramValues []string
}

// NewRouteContext crea un Context vacío listo para un dispatch.
func NewRouteContext() *Context {
	return &Context{}
}

// RouteContextFrom devuelve el Context del request, o nil si no hay ninguno.
func RouteContextFrom(ctx context.Context) *Context {
	rctx, _ := ctx.Value(ctxKey{}).(*Context)
	return rctx
}

// WithRouteContext instala rctx en el contexto.
func WithRouteContext(ctx context.Context, rctx *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, rctx)
}

// Param devuelve el valor ligado a un placeholder, "" si no existe.
func (rctx *Context) Param(key string) string {
	for i, candidate := range rctx.paramKeys {
		if candidate == key {
			return rctx.paramValues[i]
		}
	}
	return ""
}

// AddParam liga un placeholder a su valor. Lo usa la tabla al despachar;
// en tests sirve para armar requests ya ruteados.
func (rctx *Context) AddParam(key, value string) {
	rctx.paramKeys = append(rctx.paramKeys, key)
	rctx.paramValues = append(rctx.paramValues, value)
}

// reset limpia el estado de un match previo para poder reusar el puntero.
func (rctx *Context) reset() {
	rctx.RoutePattern = ""
	rctx.paramKeys = rctx.paramKeys[:0]
	rctx.paramValues = rctx.paramValues[:0]
}

// URLParam devuelve el valor de un path param del request.
// Ej: para el patrón "/items/{item_id}" y el path "/items/5",
// URLParam(r, "item_id") == "5".
func URLParam(r *http.Request, key string) string {
	if rctx := RouteContextFrom(r.Context()); rctx != nil {
		return rctx.Param(key)
	}
	return ""
}

// RoutePattern devuelve el patrón que matcheó para el request, "" si ninguno.
func RoutePattern(r *http.Request) string {
	if rctx := RouteContextFrom(r.Context()); rctx != nil {
		return rctx.RoutePattern
	}
	return ""
}
