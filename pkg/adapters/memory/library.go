package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

// Library implements ports.DeckLibrary over a fixed set of request documents.
type Library struct {
	decks map[string]map[string]any
}

// NewLibrary creates a Library from raw JSON request documents keyed by deck ID.
func NewLibrary(data map[string]string) (*Library, error) {
	decks := make(map[string]map[string]any, len(data))
	for id, raw := range data {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		var doc map[string]any
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("deck %s: %w", id, err)
		}
		decks[id] = doc
	}
	return &Library{decks: decks}, nil
}

// NewFromDocuments creates a Library from already decoded documents.
func NewFromDocuments(docs map[string]map[string]any) *Library {
	decks := make(map[string]map[string]any, len(docs))
	for id, d := range docs {
		decks[id] = d
	}
	return &Library{decks: decks}
}

// List returns every deck, sorted by ID.
func (l *Library) List(ctx context.Context) ([]ports.DeckSummary, error) {
	ids := make([]string, 0, len(l.decks))
	for id := range l.decks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]ports.DeckSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, summarize(id, l.decks[id]))
	}
	return out, nil
}

// Get returns the deck with the given ID.
func (l *Library) Get(ctx context.Context, id string) (*ports.Deck, error) {
	doc, ok := l.decks[id]
	if !ok {
		return nil, &domain.Error{Kind: domain.KindNotFound, Err: fmt.Errorf("%w: %s", domain.ErrDeckNotFound, id)}
	}
	return &ports.Deck{DeckSummary: summarize(id, doc), Request: doc}, nil
}

func summarize(id string, doc map[string]any) ports.DeckSummary {
	s := ports.DeckSummary{ID: id}
	s.Title, _ = doc["title"].(string)
	s.Description, _ = doc["description"].(string)
	if slides, ok := doc["slides"].([]any); ok {
		s.Slides = len(slides)
	}
	return s
}
