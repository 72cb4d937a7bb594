package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option aplica una opción de configuración al Manager.
type Option func(*Manager)

// WithNamespace define el namespace de todas las métricas.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets define buckets propios para el histograma de latencia.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry define un registry propio, útil en tests.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
