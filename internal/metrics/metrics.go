package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lelo88/items-api-golang/internal/routing"
)

// Manager agrupa las métricas HTTP de la aplicación sobre un registry
// propio, para no arrastrar los collectors default de Go.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewManager crea el Manager y registra las métricas.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "itemsapi",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.requests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	m.duration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by method, route and status",
			Buckets:   m.buckets,
		},
		[]string{"method", "path", "status"},
	)

	return m
}

// Middleware observa cada request con el patrón de ruta como label, no el
// path crudo, para mantener la cardinalidad acotada. Preinstala el contexto
// de ruteo para leer el patrón que la tabla matchee aguas abajo.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := routing.NewRouteContext()
		r = r.WithContext(routing.WithRouteContext(r.Context(), rctx))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		pattern := rctx.RoutePattern
		if pattern == "" {
			pattern = chiRoutePattern(r)
		}
		if pattern == "" {
			pattern = "unmatched"
		}

		status := strconv.Itoa(ww.Status())
		m.requests.WithLabelValues(r.Method, pattern, status).Inc()
		m.duration.WithLabelValues(r.Method, pattern, status).Observe(time.Since(start).Seconds())
	})
}

// Handler expone el registry en formato Prometheus.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// chiRoutePattern devuelve el patrón resuelto por el router externo cuando
// una ruta estática atendió el request. Los paths que despacha la tabla no
// dejan patrón en el contexto de chi.
func chiRoutePattern(r *http.Request) string {
	chictx := chi.RouteContext(r.Context())
	if chictx == nil {
		return ""
	}
	return chictx.RoutePattern()
}
