// Package api exposes the pipeline over HTTP. This is the interface
// boundary for the excluded web UI; spreadsheet serialization happens on
// the other side of it.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"offerflow/pipeline"
)

type Server struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	port     int
}

func NewServer(p *pipeline.Pipeline, logger *zap.Logger, port int) *Server {
	return &Server{pipeline: p, logger: logger, port: port}
}

func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Post("/api/offers", s.handleOffers)

	s.logger.Info("starting api server", zap.Int("port", s.port))
	return http.ListenAndServe(":"+strconv.Itoa(s.port), r)
}
