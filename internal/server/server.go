// Package server exposes the analyze and report operations over HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/episcope/internal/auth"
	"github.com/sells-group/episcope/internal/pipeline"
)

// Server is the HTTP front end.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	svc        *pipeline.Service
	verifier   *auth.Verifier
}

// New creates a Server listening on the given port.
func New(port int, svc *pipeline.Service, verifier *auth.Verifier) *Server {
	s := &Server{
		svc:      svc,
		verifier: verifier,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", s.handleHealth)
	router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/report", s.handleReport)
	})

	s.router = router
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Handler returns the routing handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on ln. Lets callers bind an ephemeral port.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// ShutdownGraceful stops accepting new connections and waits up to timeout
// for in-flight requests to drain. It does not inherit the caller's context,
// which at shutdown time is typically already canceled by the signal that
// initiated it.
func (s *Server) ShutdownGraceful(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
