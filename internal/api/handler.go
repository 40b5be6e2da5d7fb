package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/envresolve/internal/dotenv"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Loader performs a full env file load.
type Loader interface {
	Inspect(ctx context.Context) dotenv.Result
}

// Resolver reports which env file applies without reading it.
type Resolver interface {
	Mode() dotenv.Mode
	Resolve(ctx context.Context) (string, bool)
}

// Lookup reads single variables with a default.
type Lookup interface {
	Get(key string, def ...string) (string, bool)
}

// Handler exposes env resolution, loading and lookups over HTTP.
type Handler struct {
	loader   Loader
	resolver Resolver
	lookup   Lookup

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(loader Loader, resolver Resolver, lookup Lookup, opts ...HandlerOption) *Handler {
	h := &Handler{
		loader:   loader,
		resolver: resolver,
		lookup:   lookup,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	res := h.loader.Inspect(r.Context())

	resp := loadResponse{
		Mode:       string(res.Mode),
		Candidates: nonNil(res.Candidates),
		Files:      nonNil(res.Files),
		Status:     string(res.Status),
		Vars:       res.Vars,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	mode := h.resolver.Mode()
	file, found := h.resolver.Resolve(r.Context())

	writeJSON(w, http.StatusOK, resolveResponse{
		Mode:       string(mode),
		Candidates: dotenv.Candidates(mode),
		File:       file,
		Found:      found,
	})
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "key must not be empty")
		return
	}

	var defaults []string
	if q := r.URL.Query(); q.Has("default") {
		defaults = append(defaults, q.Get("default"))
	}

	value, found := h.lookup.Get(key, defaults...)
	if !found {
		writeError(w, http.StatusNotFound, "Variable not defined", key)
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{
		Key:   key,
		Value: value,
		Found: found,
	})
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type loadResponse struct {
	Mode       string            `json:"mode"`
	Candidates []string          `json:"candidates"`
	Files      []string          `json:"files"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Vars       map[string]string `json:"vars"`
}

type resolveResponse struct {
	Mode       string   `json:"mode"`
	Candidates []string `json:"candidates"`
	File       string   `json:"file,omitempty"`
	Found      bool     `json:"found"`
}

type lookupResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
