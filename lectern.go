package lectern

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lectern/internal/logging"
	loamAdapter "github.com/aretw0/lectern/pkg/adapters/loam"
	"github.com/aretw0/lectern/pkg/builder"
	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/normalize"
	"github.com/aretw0/lectern/pkg/observability"
	"github.com/aretw0/lectern/pkg/ports"
)

// DefaultMaxConcurrentBuilds bounds simultaneous builds when no limit is configured.
const DefaultMaxConcurrentBuilds = 8

// Service is the entry point shared by the HTTP, MCP and CLI front ends.
type Service struct {
	builder  *builder.Builder
	images   ports.ImageSource
	decks    ports.DeckLibrary
	decksDir string
	metrics  *observability.Metrics
	logger   *slog.Logger
	slots    chan struct{}
	maxBuild int
}

// Option configures a Service.
type Option func(*Service)

// WithImageSource sets the resolver for image, background and poster references.
func WithImageSource(src ports.ImageSource) Option {
	return func(s *Service) {
		s.images = src
	}
}

// WithDeckLibrary injects a deck library, bypassing WithDecksDir.
func WithDeckLibrary(lib ports.DeckLibrary) Option {
	return func(s *Service) {
		s.decks = lib
	}
}

// WithDecksDir serves stored decks from a Loam repository at dir.
func WithDecksDir(dir string) Option {
	return func(s *Service) {
		s.decksDir = dir
	}
}

// WithMetrics records build durations and element outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMaxConcurrentBuilds bounds simultaneous builds. Values below one use the default.
func WithMaxConcurrentBuilds(n int) Option {
	return func(s *Service) {
		s.maxBuild = n
	}
}

// New creates a Service.
func New(opts ...Option) (*Service, error) {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.maxBuild < 1 {
		s.maxBuild = DefaultMaxConcurrentBuilds
	}
	s.slots = make(chan struct{}, s.maxBuild)

	if s.decks == nil && s.decksDir != "" {
		lib, err := loamAdapter.Open(s.decksDir)
		if err != nil {
			return nil, err
		}
		s.decks = lib
	}

	bopts := []builder.Option{
		builder.WithImageSource(s.images),
		builder.WithLogger(s.logger),
	}
	if s.metrics != nil {
		bopts = append(bopts, builder.WithRecorder(s.metrics))
	}
	s.builder = builder.New(bopts...)
	return s, nil
}

// Decks returns the configured deck library, or nil.
func (s *Service) Decks() ports.DeckLibrary {
	return s.decks
}

// Generate normalizes a decoded JSON document and renders it.
func (s *Service) Generate(ctx context.Context, raw any) (*domain.Artifact, error) {
	req, err := normalize.Request(raw)
	if err != nil {
		return nil, err
	}
	return s.Render(ctx, req)
}

// GenerateJSON decodes r as a request document and renders it.
// Numbers are kept as json.Number until normalization.
func (s *Service) GenerateJSON(ctx context.Context, r io.Reader) (*domain.Artifact, error) {
	raw, err := DecodeJSON(r)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, raw)
}

// DecodeJSON reads exactly one JSON value from r.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, domain.Invalid("malformed JSON: %v", err)
	}
	if dec.More() {
		return nil, domain.Invalid("malformed JSON: trailing data after document")
	}
	return raw, nil
}

// Render builds an already normalized request. It waits for a build slot and
// gives up with ErrBusy once ctx ends.
func (s *Service) Render(ctx context.Context, req *domain.PresentationRequest) (*domain.Artifact, error) {
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, domain.BuildFailure(fmt.Errorf("%w: %w", domain.ErrBusy, ctx.Err()))
	}
	defer func() { <-s.slots }()

	start := time.Now()
	art, err := s.builder.Build(ctx, req)
	if s.metrics != nil {
		s.metrics.BuildObserved(time.Since(start))
	}
	if err != nil {
		logging.FromContext(ctx, s.logger).Error("Build failed", "err", err)
		return nil, err
	}

	logging.FromContext(ctx, s.logger).Info("Deck built",
		"slides", art.Slides,
		"skipped", art.Skipped,
		"bytes", len(art.Data),
		"duration", time.Since(start),
	)
	return art, nil
}

// RenderOptions overrides deck metadata for single-element and stored-deck builds.
type RenderOptions struct {
	Title  string
	Layout string
}

// GenerateElement renders one element on a single slide. raw may be a full
// element object or the bare options of kind. An element that normalizes to
// another kind is rejected.
func (s *Service) GenerateElement(ctx context.Context, kind domain.Kind, raw any, opts RenderOptions) (*domain.Artifact, error) {
	el, err := ElementOf(kind, raw)
	if err != nil {
		return nil, err
	}
	req := &domain.PresentationRequest{
		Title:  opts.Title,
		Layout: opts.Layout,
		Slides: []domain.SlideSpec{{Elements: []domain.Element{el}}},
	}
	return s.Render(ctx, req)
}

// ElementOf normalizes raw and checks that it yields an element of kind.
func ElementOf(kind domain.Kind, raw any) (domain.Element, error) {
	if el := normalize.Element(raw); matches(kind, el.Kind()) {
		return el, nil
	}
	if m, ok := raw.(map[string]any); ok {
		if el := normalize.Element(map[string]any{string(kind): m}); matches(kind, el.Kind()) {
			return el, nil
		}
	}
	el := normalize.Element(raw)
	if u, ok := el.(domain.Unrecognized); ok {
		return nil, domain.Invalid("expected a %s element: %s", kind, u.Reason)
	}
	return nil, domain.Invalid("expected a %s element, got %s", kind, el.Kind())
}

func matches(want, got domain.Kind) bool {
	switch want {
	case domain.KindText:
		return got == domain.KindText || got == domain.KindRichText
	case domain.KindShape:
		return got == domain.KindShape || got == domain.KindRect
	}
	return want == got
}

// GenerateDeck renders a stored deck.
func (s *Service) GenerateDeck(ctx context.Context, id string, opts RenderOptions) (*domain.Artifact, error) {
	if s.decks == nil {
		return nil, &domain.Error{Kind: domain.KindNotFound, Err: fmt.Errorf("%w: no deck library configured", domain.ErrDeckNotFound)}
	}
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req, err := normalize.Request(deck.Request)
	if err != nil {
		return nil, err
	}
	if opts.Title != "" {
		req.Title = opts.Title
	}
	if opts.Layout != "" {
		req.Layout = opts.Layout
	}
	return s.Render(ctx, req)
}
