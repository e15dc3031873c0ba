// Package server exposes the search engine and lifelog store over HTTP for
// non-MCP consumers. Like the MCP adapter it is plumbing around the engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/search"
)

// Config holds HTTP server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves the lifelog search HTTP API.
type Server struct {
	cfg        Config
	engine     *search.Engine
	store      *lifelog.Store
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server with all dependencies.
func New(cfg Config, engine *search.Engine, store *lifelog.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		engine: engine,
		store:  store,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOpts := cors.Options{
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	} else {
		corsOpts.AllowedOrigins = []string{"http://localhost:*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/lifelogs", s.handleListLifelogs)
		r.Get("/lifelogs/{id}", s.handleGetLifelog)
	})

	return r
}

// Start begins serving and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.Int("port", s.cfg.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Handler returns the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	resp, err := s.engine.Search(r.Context(), query)
	if err != nil {
		s.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListLifelogs(w http.ResponseWriter, r *http.Request) {
	var logs []*lifelog.Lifelog
	var err error

	if date := r.URL.Query().Get("date"); date != "" {
		day, parseErr := time.Parse("2006-01-02", date)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid date, use YYYY-MM-DD")
			return
		}
		logs, err = s.store.ListRange(r.Context(), day, day.AddDate(0, 0, 1))
	} else {
		logs, err = s.store.ListAll(r.Context())
	}
	if err != nil {
		s.logger.Warn("listing lifelogs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "listing lifelogs failed")
		return
	}

	// Trim transcript bodies from the listing.
	type summary struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		StartTime time.Time `json:"startTime"`
		EndTime   time.Time `json:"endTime"`
	}
	out := make([]summary, len(logs))
	for i, l := range logs {
		out[i] = summary{ID: l.ID, Title: l.Title, StartTime: l.StartTime, EndTime: l.EndTime}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lifelogs": out, "count": len(out)})
}

func (s *Server) handleGetLifelog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	l, err := s.store.GetByID(r.Context(), id)
	if errors.Is(err, lifelog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lifelog not found")
		return
	}
	if err != nil {
		s.logger.Warn("loading lifelog failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "loading lifelog failed")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
