package routing

import "go.uber.org/zap"

// Option configura una Table al construirla.
type Option func(*Table)

// WithLogger define el logger que usa la tabla para avisos de registro,
// en particular el warning de rutas sombreadas.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRedirectSlashes habilita o deshabilita el redirect 307 hacia la
// variante con/sin barra final cuando el path pedido no matchea pero la
// variante sí. Arranca habilitado.
func WithRedirectSlashes(enabled bool) Option {
	return func(t *Table) {
		t.redirectSlashes = enabled
	}
}
