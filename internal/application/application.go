package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/envresolve/internal/api"
	"github.com/eugenenazirov/envresolve/internal/config"
	"github.com/eugenenazirov/envresolve/internal/dotenv"
	"github.com/eugenenazirov/envresolve/internal/environ"
	"github.com/eugenenazirov/envresolve/internal/filestore"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	loader *dotenv.Loader
	lookup *dotenv.Lookup
	router http.Handler
	logger *zap.Logger
	server *http.Server
}

// Components holds the env primitives built from a configuration.
type Components struct {
	Files  filestore.Store
	Env    environ.Store
	Loader *dotenv.Loader
	Lookup *dotenv.Lookup
}

// NewComponents wires the OS-backed stores into a loader and lookup.
func NewComponents(cfg config.Config, logger *zap.Logger) Components {
	files := filestore.OS{Root: cfg.Dir}
	env := environ.OS{}
	opts := append(cfg.DotenvOptions(), dotenv.WithLogger(logger))

	return Components{
		Files:  files,
		Env:    env,
		Loader: dotenv.NewLoader(files, env, opts...),
		Lookup: dotenv.NewLookup(env, logger),
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) *App {
	c := NewComponents(cfg, logger)

	handler := api.NewHandler(c.Loader, c.Loader.Resolver(), c.Lookup)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithCORSOrigins(cfg.CORSOrigins...),
	)

	return &App{
		loader: c.Loader,
		lookup: c.Lookup,
		router: router,
		logger: logger,
		server: NewServer(cfg, router),
	}
}

// NewServer creates and configures an HTTP server from the provided
// configuration. A bare port binds to loopback only.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = "127.0.0.1:" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}
