package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Lelo88/items-api-golang/internal/config"
	"github.com/Lelo88/items-api-golang/internal/docs"
	"github.com/Lelo88/items-api-golang/internal/greeting"
	"github.com/Lelo88/items-api-golang/internal/health"
	"github.com/Lelo88/items-api-golang/internal/httpx"
	"github.com/Lelo88/items-api-golang/internal/items"
	"github.com/Lelo88/items-api-golang/internal/logging"
	"github.com/Lelo88/items-api-golang/internal/metrics"
	"github.com/Lelo88/items-api-golang/internal/routing"
	"github.com/Lelo88/items-api-golang/internal/users"
)

// Reemplazables en tests de main.
var (
	loadConfigFn     = config.Load
	newLoggerFn      = logging.New
	listenAndServeFn = func(server *http.Server) error { return server.ListenAndServe() }
	fatalf           = func(args ...any) { log.Fatal(args...) }
)

// appDeps agrupa lo que run necesita del exterior para poder
// arrancar la app en tests sin tocar red ni entorno.
type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(level string) (*zap.Logger, error)
	listenAndServe func(server *http.Server) error
}

func main() {
	deps := appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		listenAndServe: listenAndServeFn,
	}
	if err := run(context.Background(), deps); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           buildRouter(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := deps.listenAndServe(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildRouter arma el router completo: middlewares, endpoints ambientales
// como rutas estáticas de chi y la tabla ordenada como fallback para todo
// lo demás. La tabla resuelve matching, redirecciones y sus propios errores.
func buildRouter(cfg config.Config, logger *zap.Logger) http.Handler {
	router := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	router.Use(httpx.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpx.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(time.Duration(cfg.RequestTimeoutMS) * time.Millisecond))

	// HEAD se atiende con el handler de GET, igual que hace la tabla.
	router.Use(middleware.GetHead)

	var manager *metrics.Manager
	if cfg.MetricsEnabled {
		manager = metrics.NewManager()
		router.Use(manager.Middleware)
	}

	router.Get("/health", health.New().Health)
	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", manager.Handler())
	}
	if cfg.DocsEnabled {
		docs.RegisterRoutes(router)
	}

	table := routing.NewTable(routing.WithLogger(logger))
	greeting.RegisterRoutes(table, greeting.NewHandler())
	items.RegisterRoutes(table, items.NewHandler(items.NewService()))
	users.RegisterRoutes(table, users.NewHandler())

	// Todo path sin ruta estática cae a la tabla, que responde sus propios
	// 404 y 405. El método equivocado sobre una ruta estática responde acá,
	// con Allow y el mismo cuerpo plano que la tabla.
	router.NotFound(table.ServeHTTP)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}

// methodNotAllowed responde los 405 de las rutas estáticas. El Allow se
// arma consultando qué métodos sí resuelven el path; HEAD acompaña a GET
// porque el router lo atiende con el mismo handler.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	routes := chi.RouteContext(r.Context()).Routes

	var allowed []string
	for _, method := range []string{http.MethodDelete, http.MethodGet, http.MethodPatch, http.MethodPost, http.MethodPut} {
		if !routes.Match(chi.NewRouteContext(), method, r.URL.Path) {
			continue
		}
		allowed = append(allowed, method)
		if method == http.MethodGet {
			allowed = append(allowed, http.MethodHead)
		}
	}
	sort.Strings(allowed)

	w.Header().Set("Allow", strings.Join(allowed, ", "))
	httpx.Fail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
