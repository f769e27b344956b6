package ports

import "context"

// DeckSummary describes a stored deck without its slides.
type DeckSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Slides      int    `json:"slides"`
}

// Deck is a stored deck: its summary and the raw request document.
type Deck struct {
	DeckSummary
	// Request is the decoded JSON-compatible document, ready for normalize.Request.
	Request map[string]any `json:"request"`
}

// DeckLibrary lists and loads stored decks.
type DeckLibrary interface {
	List(ctx context.Context) ([]DeckSummary, error)

	// Get returns domain.ErrDeckNotFound when id is unknown.
	Get(ctx context.Context, id string) (*Deck, error)
}
