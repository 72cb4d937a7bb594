package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lelo88/items-api-golang/internal/config"
)

func TestMain_FatalOnError(t *testing.T) {
	originalLoad := loadConfigFn
	originalNewLogger := newLoggerFn
	originalListen := listenAndServeFn
	originalFatal := fatalf
	defer func() {
		loadConfigFn = originalLoad
		newLoggerFn = originalNewLogger
		listenAndServeFn = originalListen
		fatalf = originalFatal
	}()

	expectedErr := errors.New("config failed")
	loadConfigFn = func() (config.Config, error) {
		return config.Config{}, expectedErr
	}
	newLoggerFn = func(level string) (*zap.Logger, error) {
		return zap.NewNop(), nil
	}
	listenAndServeFn = func(server *http.Server) error {
		return nil
	}

	fatalCalled := false
	var fatalArg any
	fatalf = func(args ...any) {
		fatalCalled = true
		if len(args) > 0 {
			fatalArg = args[0]
		}
	}

	main()

	require.True(t, fatalCalled)
	require.Equal(t, expectedErr, fatalArg)
}

func TestRun_ConfigError(t *testing.T) {
	deps := appDeps{
		loadConfig: func() (config.Config, error) {
			return config.Config{}, errors.New("load failed")
		},
		newLogger: func(level string) (*zap.Logger, error) {
			return nil, errors.New("should not be called")
		},
		listenAndServe: func(server *http.Server) error {
			return nil
		},
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
}

func TestRun_LoggerError(t *testing.T) {
	deps := appDeps{
		loadConfig: func() (config.Config, error) {
			return config.Default(), nil
		},
		newLogger: func(level string) (*zap.Logger, error) {
			return nil, errors.New("logger failed")
		},
		listenAndServe: func(server *http.Server) error {
			return nil
		},
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
}

func TestRun_ListenError(t *testing.T) {
	var captured *http.Server
	deps := appDeps{
		loadConfig: func() (config.Config, error) {
			cfg := config.Default()
			cfg.Addr = ":9090"
			return cfg, nil
		},
		newLogger: func(level string) (*zap.Logger, error) {
			return zap.NewNop(), nil
		},
		listenAndServe: func(server *http.Server) error {
			captured = server
			return errors.New("listen failed")
		},
	}

	err := run(context.Background(), deps)

	require.Error(t, err)
	require.NotNil(t, captured)
	require.Equal(t, ":9090", captured.Addr)
	require.Equal(t, 5*time.Second, captured.ReadHeaderTimeout)
	require.NotNil(t, captured.Handler)
}

func TestRun_ServerClosedIsClean(t *testing.T) {
	deps := appDeps{
		loadConfig: func() (config.Config, error) {
			return config.Default(), nil
		},
		newLogger: func(level string) (*zap.Logger, error) {
			return zap.NewNop(), nil
		},
		listenAndServe: func(server *http.Server) error {
			return http.ErrServerClosed
		},
	}

	err := run(context.Background(), deps)

	require.NoError(t, err)
}

func TestBuildRouter_Endpoints(t *testing.T) {
	router := buildRouter(config.Default(), zap.NewNop())

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "root greeting",
			method:     http.MethodGet,
			path:       "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "head on root",
			method:     http.MethodHead,
			path:       "/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "read item",
			method:     http.MethodGet,
			path:       "/items/5",
			wantStatus: http.StatusOK,
		},
		{
			name:       "create item",
			method:     http.MethodPost,
			path:       "/items/",
			body:       `{"name":"Phone","price":45.2,"tax":3.5}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "replace item",
			method:     http.MethodPut,
			path:       "/items/5",
			body:       `{"name":"foo","price":2.0}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "current user",
			method:     http.MethodGet,
			path:       "/users/me",
			wantStatus: http.StatusOK,
		},
		{
			name:       "user by id",
			method:     http.MethodGet,
			path:       "/users/alice",
			wantStatus: http.StatusOK,
		},
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "metrics",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
		{
			name:       "swagger ui",
			method:     http.MethodGet,
			path:       "/docs",
			wantStatus: http.StatusOK,
		},
		{
			name:       "openapi document",
			method:     http.MethodGet,
			path:       "/openapi.json",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestBuildRouter_Semantics(t *testing.T) {
	router := buildRouter(config.Default(), zap.NewNop())

	t.Run("root body", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Equal(t, map[string]any{"message": "Hello World"}, decodeJSON(t, rec))
	})

	t.Run("me wins over the placeholder", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/users/me", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, map[string]any{"user_id": "the current user"}, decodeJSON(t, rec))
	})

	t.Run("create computes price_with_tax", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/items/", `{"name":"Phone","price":45.2,"tax":3.5}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSON(t, rec)
		require.Equal(t, json.Number("48.7"), body["price_with_tax"])
	})

	t.Run("replace merges the id", func(t *testing.T) {
		rec := serve(t, router, http.MethodPut, "/items/5", `{"name":"foo","price":2.0}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSON(t, rec)
		require.Equal(t, map[string]any{
			"item_id":     json.Number("5"),
			"name":        "foo",
			"description": nil,
			"price":       json.Number("2"),
			"tax":         nil,
		}, body)
	})

	t.Run("validation errors surface end to end", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/items/abc", "")

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeJSON(t, rec)
		require.Contains(t, body, "detail")
	})

	t.Run("unknown path", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/missing", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, map[string]any{"detail": "Not Found"}, decodeJSON(t, rec))
	})

	t.Run("method not allowed carries Allow", func(t *testing.T) {
		rec := serve(t, router, http.MethodDelete, "/items/5", "")

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		require.Equal(t, "GET, HEAD, PUT", rec.Header().Get("Allow"))
		require.Equal(t, map[string]any{"detail": "Method Not Allowed"}, decodeJSON(t, rec))
	})

	t.Run("trailing slash redirect", func(t *testing.T) {
		rec := serve(t, router, http.MethodPost, "/items", `{"name":"Phone","price":45.2}`)

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, "/items/", rec.Header().Get("Location"))
	})

	t.Run("request id is generated", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/", "")

		id := rec.Header().Get("X-Request-Id")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("inbound request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
	})

	t.Run("metrics expose the served routes", func(t *testing.T) {
		rec := serve(t, router, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "itemsapi_http_requests_total")
	})
}

func TestBuildRouter_AmbientMethods(t *testing.T) {
	router := buildRouter(config.Default(), zap.NewNop())

	t.Run("wrong method answers 405 with Allow", func(t *testing.T) {
		tests := []struct {
			method string
			path   string
		}{
			{http.MethodPost, "/health"},
			{http.MethodDelete, "/metrics"},
			{http.MethodPost, "/docs"},
			{http.MethodPut, "/openapi.json"},
		}

		for _, tt := range tests {
			rec := serve(t, router, tt.method, tt.path, "")

			require.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
			require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"), "%s %s", tt.method, tt.path)
			require.Equal(t, map[string]any{"detail": "Method Not Allowed"}, decodeJSON(t, rec))
		}
	})

	t.Run("head is served by the get handler", func(t *testing.T) {
		for _, path := range []string{"/health", "/docs", "/openapi.json"} {
			rec := serve(t, router, http.MethodHead, path, "")

			require.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		}
	})
}

func TestBuildRouter_Toggles(t *testing.T) {
	cfg := config.Default()
	cfg.DocsEnabled = false
	cfg.MetricsEnabled = false
	router := buildRouter(cfg, zap.NewNop())

	for _, path := range []string{"/docs", "/openapi.json", "/metrics"} {
		rec := serve(t, router, http.MethodGet, path, "")

		require.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
		require.Equal(t, map[string]any{"detail": "Not Found"}, decodeJSON(t, rec))
	}
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	decoder := json.NewDecoder(bytes.NewReader(recorder.Body.Bytes()))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&body))
	return body
}
