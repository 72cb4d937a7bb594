package config

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	// Addr es la dirección de escucha HTTP, ej ":8000".
	Addr string `koanf:"addr"`

	// LogLevel controla la verbosidad: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RequestTimeoutMS corta los requests que exceden el presupuesto.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// DocsEnabled publica GET /docs y GET /openapi.json.
	DocsEnabled bool `koanf:"docs_enabled"`

	// MetricsEnabled publica GET /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// Default devuelve la configuración base que las capas posteriores pisan.
func Default() Config {
	return Config{
		Addr:             ":8000",
		LogLevel:         "info",
		RequestTimeoutMS: 10_000,
		DocsEnabled:      true,
		MetricsEnabled:   true,
	}
}
