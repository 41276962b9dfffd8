package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mealdex/mealdex/internal/api/requestid"
	"github.com/mealdex/mealdex/internal/config"
	"github.com/mealdex/mealdex/internal/env"
	"github.com/mealdex/mealdex/internal/log"
)

func TestAddRequestID(t *testing.T) {
	var captured uint64
	handler := AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestid.ExtractRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured == 0 {
		t.Error("expected a non-zero request id in the context")
	}
}

func TestAddRequestIDUnique(t *testing.T) {
	seen := make(map[uint64]bool)
	handler := AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[requestid.ExtractRequestID(r.Context())] = true
	}))

	for range 5 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	// ULIDs made in the same millisecond share a timestamp; ulid.Now()
	// still moves forward every call often enough that five requests
	// should never all collide.
	if len(seen) < 2 {
		t.Errorf("expected distinct request ids, got %d unique of 5", len(seen))
	}
}

func TestInjectEnv(t *testing.T) {
	environment := &env.Env{Logger: log.NullLogger()}

	var got *env.Env
	handler := InjectEnv(environment)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = env.EnvFromCtx(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != environment {
		t.Error("expected the injected env to round-trip through the context")
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		envName    string
		origin     string
		wantOrigin string
	}{
		{
			name:       "dev echoes request origin",
			envName:    config.EnvDev,
			origin:     "http://localhost:3000",
			wantOrigin: "http://localhost:3000",
		},
		{
			name:       "prod pins configured origin",
			envName:    config.EnvProd,
			origin:     "http://evil.example",
			wantOrigin: "https://mealdex.example",
		},
		{
			name:       "no origin falls back to configured origin",
			envName:    config.EnvDev,
			origin:     "",
			wantOrigin: "https://mealdex.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environment := &env.Env{
				Logger: log.NullLogger(),
				Config: config.Config{
					Env:        tt.envName,
					HostOrigin: "https://mealdex.example",
				},
			}

			handler := InjectEnv(environment)(AddCors(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {})))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestAddCorsPreflight(t *testing.T) {
	environment := &env.Env{
		Logger: log.NullLogger(),
		Config: config.Config{Env: config.EnvDev, HostOrigin: "http://localhost:8080"},
	}

	called := false
	handler := InjectEnv(environment)(AddCors(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { called = true })))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if called {
		t.Error("preflight must not reach the next handler")
	}
}
