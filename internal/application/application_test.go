package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/envresolve/internal/config"
	"github.com/eugenenazirov/envresolve/internal/dotenv"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(t.TempDir(), ":8085")

	app := New(cfg, zaptest.NewLogger(t))

	if app.server == nil || app.router == nil || app.loader == nil || app.lookup == nil {
		t.Fatalf("expected server, router, loader and lookup to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if app.Handler() != app.router {
		t.Fatalf("Handler accessor did not return underlying router")
	}
}

func TestNewComponentsReadsFromConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env.production"), []byte("FROM=dir\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("APP_MODE", "production")

	cfg := baseTestConfig(dir, "0")
	cfg.ModeVar = "APP_MODE"

	c := NewComponents(cfg, zaptest.NewLogger(t))
	got := c.Loader.Load(context.Background())
	if got["FROM"] != "dir" {
		t.Fatalf("expected vars from configured dir, got %v", got)
	}
}

func TestAppServesEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv(dotenv.DefaultModeVar, "development")

	app := New(baseTestConfig(dir, "0"), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/env", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Vars map[string]string `json:"vars"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Vars["A"] != "1" {
		t.Fatalf("unexpected vars %v", body.Vars)
	}
}

func TestAppCORSFollowsConfig(t *testing.T) {
	t.Setenv("APP_CORS_TEST_SECRET", "s3cr3t")

	request := func(app *App, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/lookup/APP_CORS_TEST_SECRET", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		app.Handler().ServeHTTP(rec, req)
		return rec
	}

	closed := New(baseTestConfig(t.TempDir(), "0"), zaptest.NewLogger(t))
	if got := request(closed, "https://evil.example").Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header by default, got %q", got)
	}

	cfg := baseTestConfig(t.TempDir(), "0")
	cfg.CORSOrigins = []string{"http://localhost:3000"}
	open := New(cfg, zaptest.NewLogger(t))
	if got := request(open, "http://localhost:3000").Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected configured origin to be allowed, got %q", got)
	}
	if got := request(open, "https://evil.example").Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected unlisted origin to be refused, got %q", got)
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("", "9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != "127.0.0.1:9090" {
		t.Fatalf("expected address 127.0.0.1:9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}

	cfg.Port = ":9091"
	if got := NewServer(cfg, handler).Addr; got != ":9091" {
		t.Fatalf("expected explicit address to be kept, got %s", got)
	}
}

func baseTestConfig(dir, port string) config.Config {
	return config.Config{
		Dir:                  dir,
		ModeVar:              dotenv.DefaultModeVar,
		Format:               config.FormatJSON,
		Port:                 port,
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
