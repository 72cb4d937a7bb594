package routing

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Lelo88/items-api-golang/internal/httpx"
)

// segment es una pieza de un patrón entre barras: un literal exacto o un
// placeholder {nombre}. Un placeholder matchea exactamente un segmento
// no vacío del path y liga su texto crudo.
type segment struct {
	literal string
	param   string
}

type route struct {
	method     string
	pattern    string
	segments   []segment
	paramNames []string
	handler    http.Handler
}

// Shadow registra una ruta muerta: una registrada después de otra del
// mismo método que ya cubre todos sus paths.
type Shadow struct {
	Method     string
	Pattern    string
	ShadowedBy string
}

// Table es una tabla de rutas explícita con despacho determinístico:
// gana la primera ruta registrada cuyo método y segmentos matchean.
// La precedencia literal-antes-que-placeholder existe solamente por el
// orden de registro; registrar al revés deja la ruta específica muerta,
// y la tabla lo avisa (log + Shadowed) en el momento del registro.
type Table struct {
	routes           []route
	shadowed         []Shadow
	logger           *zap.Logger
	redirectSlashes  bool
	notFound         http.HandlerFunc
	methodNotAllowed http.HandlerFunc
}

// NewTable crea una tabla vacía. Por defecto loguea a ningún lado,
// redirige variantes de barra final y responde 404/405 con el cuerpo
// plano {"detail": ...}.
func NewTable(opts ...Option) *Table {
	table := &Table{
		logger:          zap.NewNop(),
		redirectSlashes: true,
		notFound: func(w http.ResponseWriter, _ *http.Request) {
			httpx.Fail(w, http.StatusNotFound, "Not Found")
		},
		methodNotAllowed: func(w http.ResponseWriter, _ *http.Request) {
			httpx.Fail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		},
	}

	for _, opt := range opts {
		opt(table)
	}
	return table
}

// Handle registra method+pattern al final de la tabla. El patrón tiene que
// empezar con "/"; los placeholders se escriben {nombre}. Registrar nunca
// falla: si una ruta anterior ya cubre a la nueva, queda el warning y el
// par en Shadowed.
func (t *Table) Handle(method, pattern string, handler http.Handler) {
	if handler == nil {
		panic(fmt.Sprintf("routing: nil handler for %s %s", method, pattern))
	}
	method = strings.ToUpper(method)

	newRoute := route{
		method:   method,
		pattern:  pattern,
		segments: parsePattern(pattern),
		handler:  handler,
	}
	for _, seg := range newRoute.segments {
		if seg.param != "" {
			newRoute.paramNames = append(newRoute.paramNames, seg.param)
		}
	}

	for i := range t.routes {
		earlier := &t.routes[i]
		if earlier.method != method {
			continue
		}
		if covers(earlier.segments, newRoute.segments) {
			t.shadowed = append(t.shadowed, Shadow{
				Method:     method,
				Pattern:    pattern,
				ShadowedBy: earlier.pattern,
			})
			t.logger.Warn("route is shadowed by an earlier registration",
				zap.String("method", method),
				zap.String("pattern", pattern),
				zap.String("shadowed_by", earlier.pattern),
			)
			break
		}
	}

	t.routes = append(t.routes, newRoute)
}

// Get registra un handler para GET (y para HEAD, vía fallback).
func (t *Table) Get(pattern string, handler http.HandlerFunc) {
	t.Handle(http.MethodGet, pattern, handler)
}

// Post registra un handler para POST.
func (t *Table) Post(pattern string, handler http.HandlerFunc) {
	t.Handle(http.MethodPost, pattern, handler)
}

// Put registra un handler para PUT.
func (t *Table) Put(pattern string, handler http.HandlerFunc) {
	t.Handle(http.MethodPut, pattern, handler)
}

// NotFound reemplaza la respuesta para paths que ninguna ruta matchea.
func (t *Table) NotFound(handler http.HandlerFunc) {
	if handler != nil {
		t.notFound = handler
	}
}

// MethodNotAllowed reemplaza la respuesta para método no soportado.
// El header Allow ya viene seteado cuando se invoca.
func (t *Table) MethodNotAllowed(handler http.HandlerFunc) {
	if handler != nil {
		t.methodNotAllowed = handler
	}
}

// Shadowed devuelve las rutas muertas detectadas durante el registro.
func (t *Table) Shadowed() []Shadow {
	out := make([]Shadow, len(t.shadowed))
	copy(out, t.shadowed)
	return out
}

// Match reporta el patrón de la primera ruta que resuelve method+path.
func (t *Table) Match(method, path string) (string, bool) {
	for i := range t.routes {
		rt := &t.routes[i]
		if !methodMatches(rt.method, method) {
			continue
		}
		if _, ok := matchSegments(rt.segments, path); ok {
			return rt.pattern, true
		}
	}
	return "", false
}

// ServeHTTP despacha en orden de registro. Si algún patrón matchea el path
// pero ningún método coincide responde 405 (antes que cualquier redirect);
// si nada matchea pero la variante con/sin barra final sí, responde 307;
// si no, 404.
func (t *Table) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	var allowed []string
	for i := range t.routes {
		rt := &t.routes[i]
		values, ok := matchSegments(rt.segments, path)
		if !ok {
			continue
		}
		if !methodMatches(rt.method, r.Method) {
			allowed = appendAllowed(allowed, rt.method)
			continue
		}
		t.dispatch(w, r, rt, values)
		return
	}

	if len(allowed) > 0 {
		sort.Strings(allowed)
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		t.methodNotAllowed(w, r)
		return
	}

	if t.redirectSlashes && path != "/" {
		if alternate, ok := t.slashAlternative(path); ok {
			if r.URL.RawQuery != "" {
				alternate += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, alternate, http.StatusTemporaryRedirect)
			return
		}
	}

	t.notFound(w, r)
}

func (t *Table) dispatch(w http.ResponseWriter, r *http.Request, rt *route, values []string) {
	rctx := RouteContextFrom(r.Context())
	if rctx == nil {
		rctx = NewRouteContext()
		r = r.WithContext(WithRouteContext(r.Context(), rctx))
	} else {
		// Contexto preinstalado por un middleware externo: se completa el
		// mismo puntero para que ese middleware vea el patrón matcheado.
		rctx.reset()
	}

	rctx.RoutePattern = rt.pattern
	for i, name := range rt.paramNames {
		rctx.AddParam(name, values[i])
	}

	rt.handler.ServeHTTP(w, r)
}

// slashAlternative busca si el path con la barra final invertida matchea
// algún patrón registrado, sin importar el método.
func (t *Table) slashAlternative(path string) (string, bool) {
	var alternate string
	if strings.HasSuffix(path, "/") {
		alternate = strings.TrimSuffix(path, "/")
	} else {
		alternate = path + "/"
	}
	if alternate == "" {
		return "", false
	}

	for i := range t.routes {
		if _, ok := matchSegments(t.routes[i].segments, alternate); ok {
			return alternate, true
		}
	}
	return "", false
}

// methodMatches acepta además HEAD sobre rutas GET, como hacen los
// frameworks HTTP al registrar GET.
func methodMatches(routeMethod, requestMethod string) bool {
	if routeMethod == requestMethod {
		return true
	}
	return requestMethod == http.MethodHead && routeMethod == http.MethodGet
}

func appendAllowed(allowed []string, method string) []string {
	allowed = appendUnique(allowed, method)
	if method == http.MethodGet {
		allowed = appendUnique(allowed, http.MethodHead)
	}
	return allowed
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

func parsePattern(pattern string) []segment {
	if !strings.HasPrefix(pattern, "/") {
		panic(fmt.Sprintf("routing: pattern must begin with '/': %q", pattern))
	}

	parts := strings.Split(pattern[1:], "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") && len(part) > 2 {
			segments = append(segments, segment{param: part[1 : len(part)-1]})
			continue
		}
		if part == "{}" {
			panic(fmt.Sprintf("routing: placeholder without name in %q", pattern))
		}
		segments = append(segments, segment{literal: part})
	}
	return segments
}

// matchSegments devuelve los valores ligados a los placeholders, en orden
// de aparición, cuando el path calza segmento a segmento.
func matchSegments(segments []segment, path string) ([]string, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	parts := strings.Split(path[1:], "/")
	if len(parts) != len(segments) {
		return nil, false
	}

	var values []string
	for i, seg := range segments {
		if seg.param != "" {
			if parts[i] == "" {
				return nil, false
			}
			values = append(values, parts[i])
			continue
		}
		if parts[i] != seg.literal {
			return nil, false
		}
	}
	return values, true
}

// covers reporta si la ruta anterior matchea todo path que la nueva
// matchearía: mismo largo, literales iguales, y un placeholder de la
// anterior cubre tanto placeholders como literales no vacíos de la nueva.
func covers(earlier, later []segment) bool {
	if len(earlier) != len(later) {
		return false
	}

	for i := range earlier {
		a, b := earlier[i], later[i]
		switch {
		case a.param != "" && b.param != "":
			// placeholder cubre placeholder
		case a.param != "":
			if b.literal == "" {
				return false
			}
		case b.param != "":
			return false
		default:
			if a.literal != b.literal {
				return false
			}
		}
	}
	return true
}
