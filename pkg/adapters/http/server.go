package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/api"
	"github.com/aretw0/lectern/internal/logging"
	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/observability"
	"github.com/aretw0/lectern/pkg/ports"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 10 << 20

// Service is the presentation service behind the handler.
type Service interface {
	Generate(ctx context.Context, raw any) (*domain.Artifact, error)
	GenerateElement(ctx context.Context, kind domain.Kind, raw any, opts lectern.RenderOptions) (*domain.Artifact, error)
	GenerateDeck(ctx context.Context, id string, opts lectern.RenderOptions) (*domain.Artifact, error)
	Decks() ports.DeckLibrary
}

// Server holds the handler dependencies.
type Server struct {
	Service     Service
	Logger      *slog.Logger
	Metrics     *observability.Metrics
	MaxBody     int64
	Development bool
	Validate    bool
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the base logger. Each request logs with a request_id on top of it.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics records request counts and exposes GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithMaxBodyBytes caps request bodies. Values below one use the default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBody = n
	}
}

// WithDevelopment copies internal error chains into error responses.
func WithDevelopment(dev bool) Option {
	return func(s *Server) {
		s.Development = dev
	}
}

// WithRequestValidation toggles OpenAPI request validation (on by default).
func WithRequestValidation(on bool) Option {
	return func(s *Server) {
		s.Validate = on
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc Service, opts ...Option) (http.Handler, error) {
	s := &Server{
		Service:  svc,
		MaxBody:  DefaultMaxBodyBytes,
		Validate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.MaxBody < 1 {
		s.MaxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(s.limitBody)
	if s.Validate {
		v, err := newValidator(api.Spec())
		if err != nil {
			return nil, err
		}
		r.Use(v.middleware(s))
	}

	r.Get("/", s.health)
	r.Get("/health", s.health)
	r.Get("/info", s.info)
	r.Get("/openapi.yaml", s.spec)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Post("/generate", s.generate)
	r.Route("/api/slide", func(r chi.Router) {
		r.Post("/add-text", s.addElement(domain.KindText))
		r.Post("/add-image", s.addElement(domain.KindImage))
		r.Post("/add-chart", s.addElement(domain.KindChart))
		r.Post("/add-table", s.addElement(domain.KindTable))
		r.Post("/add-shape", s.addElement(domain.KindShape))
	})
	r.Route("/decks", func(r chi.Router) {
		r.Get("/", s.listDecks)
		r.Get("/{id}", s.getDeck)
		r.Post("/{id}/generate", s.generateDeck)
	})

	return r, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"app":         "lectern-http",
		"version":     strings.TrimSpace(lectern.Version),
		"api_version": apiVersion(),
	})
}

func (s *Server) spec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(api.Spec())
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context(), slog.Default()).Error("Response encode failed", "err", err)
	}
}
