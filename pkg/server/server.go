// Package server exposes the dashboard and command surface as an HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m-mizutani/recall/pkg/usecase/topic"
)

// Server is the recall HTTP API server.
type Server struct {
	uc     *topic.UseCase
	router chi.Router
}

// New creates a Server over the topic use case.
func New(uc *topic.UseCase) *Server {
	s := &Server{uc: uc}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/sessions", s.handleIngest)

		r.Get("/topics", s.handleListTopics)
		r.Delete("/topics", s.handleClear)
		r.Post("/topics/{topicID}/restore", s.handleRestore)
		r.Delete("/topics/{topicID}", s.handleDelete)

		r.Get("/stats", s.handleStats)
	})

	s.router = r
}
