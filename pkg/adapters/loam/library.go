// Package loam serves stored decks from a Loam document repository.
package loam

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

// Library adapts a Loam repository to ports.DeckLibrary.
type Library struct {
	Repo *loam.TypedRepository[DeckMetadata]
}

// New creates a Library over an existing typed repository.
func New(repo *loam.TypedRepository[DeckMetadata]) *Library {
	return &Library{Repo: repo}
}

// Open initializes a read-only, strict Loam repository at dir.
// Strict mode keeps numbers as json.Number across JSON, YAML and front matter.
func Open(dir string) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid decks path: %w", err)
	}
	repo, err := loam.Init(abs,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DeckMetadata](repo)), nil
}

// List returns every deck sorted by ID. Two documents resolving to the same
// ID are reported as an error.
func (l *Library) List(ctx context.Context) ([]ports.DeckSummary, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	out := make([]ports.DeckSummary, 0, len(docs))
	for _, doc := range docs {
		id := deckID(doc.Data.ID, doc.ID)
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: deck '%s' is defined in both '%s' and '%s'", id, prev, doc.ID)
		}
		seen[id] = doc.ID

		// Listing carries metadata only; decks without explicit slides need the body.
		body := doc.Content
		if len(doc.Data.Slides) == 0 {
			full, err := l.Repo.Get(ctx, doc.ID)
			if err != nil {
				return nil, fmt.Errorf("loam get %s failed: %w", doc.ID, err)
			}
			body = full.Content
		}
		req := document(doc.Data, body)
		out = append(out, summary(id, doc.Data, req))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get loads one deck.
func (l *Library) Get(ctx context.Context, id string) (*ports.Deck, error) {
	if id == "" || strings.Contains(id, "..") {
		return nil, notFound(id)
	}
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDeckNotFound) {
			return nil, err
		}
		return nil, notFound(id)
	}

	req := document(doc.Data, doc.Content)
	return &ports.Deck{
		DeckSummary: summary(deckID(doc.Data.ID, doc.ID), doc.Data, req),
		Request:     req,
	}, nil
}

func notFound(id string) error {
	return &domain.Error{Kind: domain.KindNotFound, Err: fmt.Errorf("%w: %s", domain.ErrDeckNotFound, id)}
}

func summary(id string, meta DeckMetadata, req map[string]any) ports.DeckSummary {
	s := ports.DeckSummary{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
	}
	if slides, ok := req["slides"].([]any); ok {
		s.Slides = len(slides)
	}
	return s
}

// document builds the request document of a deck.
func document(meta DeckMetadata, body string) map[string]any {
	req := map[string]any{}
	for k, v := range map[string]string{
		"title":   meta.Title,
		"author":  meta.Author,
		"company": meta.Company,
		"subject": meta.Subject,
		"layout":  meta.Layout,
	} {
		if v != "" {
			req[k] = v
		}
	}

	if len(meta.Slides) > 0 {
		slides := make([]any, 0, len(meta.Slides))
		for _, s := range meta.Slides {
			slides = append(slides, stringKeys(s))
		}
		req["slides"] = slides
	} else {
		req["slides"] = slidesFromMarkdown(body)
	}
	return req
}

// stringKeys converts map[any]any produced by some YAML decoders into the
// map[string]any shape the normalizer expects.
func stringKeys(v any) any {
	switch m := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, sub := range m {
			out[fmt.Sprintf("%v", k)] = stringKeys(sub)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, sub := range m {
			out[k] = stringKeys(sub)
		}
		return out
	case []any:
		out := make([]any, len(m))
		for i, sub := range m {
			out[i] = stringKeys(sub)
		}
		return out
	}
	return v
}

func deckID(metaID, docID string) string {
	id := metaID
	if id == "" {
		id = docID
	}
	if ext := filepath.Ext(id); ext != "" {
		id = strings.TrimSuffix(id, ext)
	}
	return filepath.ToSlash(id)
}
