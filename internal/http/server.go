// Package http exposes the collections and derived views as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bearpaw/internal/events"
	"bearpaw/internal/services"
	"bearpaw/internal/store"
)

type Server struct {
	http.Server

	store       store.Store
	projections *services.ProjectionService
	publisher   events.Publisher
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// Options tune the optional server collaborators.
type Options struct {
	// Publisher receives record change messages after successful writes.
	// Nil disables the change feed.
	Publisher events.Publisher

	// StaticDir is an SPA build to serve on non-API paths. Ignored when the
	// directory does not exist.
	StaticDir string
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, st store.Store, projections *services.ProjectionService, opts Options) *Server {
	router := mux.NewRouter()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: router,
		},
		store:       st,
		projections: projections,
		publisher:   opts.Publisher,
		rateLimiter: newRateLimiter(),
	}

	router.Use(s.withRequestContext)

	api := router.PathPrefix("/api").Subrouter()

	// Derived views are registered before the generic collection routes so
	// the {collection} pattern cannot shadow them.
	api.HandleFunc("/projected_items", s.handleProjectedItems).Methods(http.MethodGet)
	api.HandleFunc("/projected_summary/categories", s.handleProjectedCategories).Methods(http.MethodGet)
	api.HandleFunc("/budget_summary/monthly", s.handleBudgetMonthly).Methods(http.MethodGet)
	api.HandleFunc("/budget_summary/categories", s.handleBudgetCategories).Methods(http.MethodGet)

	api.HandleFunc("/{collection}", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{collection}", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/{collection}/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/{collection}/{id}", s.handleUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/{collection}/{id}", s.handleDelete).Methods(http.MethodDelete)

	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", handleReady).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Serve the SPA build when one is present; every non-API path falls back
	// to index.html so client-side routing works after a refresh.
	if opts.StaticDir != "" {
		if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
			router.PathPrefix("/").Handler(spaHandler{dir: opts.StaticDir})
		} else {
			slog.Warn("Static dir not found, skipping SPA routes", "dir", opts.StaticDir)
		}
	}

	return s
}

// Shutdown stops the rate limiter cleanup and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRequestContext adds a request id, security headers, rate limiting on
// writes, request logging, and metrics around every matched route.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		observeRequest(r, rw.statusCode, duration)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// spaHandler serves files from dir, falling back to index.html for paths
// that do not exist on disk.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	full := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}
	http.ServeFile(w, r, full)
}
