package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load arma la Config en capas, de menor a mayor precedencia:
//  1. defaults (Default)
//  2. archivo YAML si ITEMSAPI_CONFIG apunta a uno
//  3. variables de entorno con prefijo ITEMSAPI_
//
// Valida lo mínimo indispensable antes de devolverla.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("ITEMSAPI_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// ITEMSAPI_LOG_LEVEL -> log_level: claves planas, guiones bajos intactos
	// para calzar con los tags koanf del struct.
	envProvider := env.Provider("ITEMSAPI_", ".", func(key string) string {
		key = strings.ToLower(key)
		return strings.TrimPrefix(key, "itemsapi_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Addr) == "" {
		return Config{}, errors.New("addr must not be empty")
	}
	if cfg.RequestTimeoutMS <= 0 {
		return Config{}, errors.New("request_timeout_ms must be positive")
	}
	return cfg, nil
}
