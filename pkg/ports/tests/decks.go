package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

// DeckLibraryContractTest verifies an adapter against ports.DeckLibrary.
// want maps every expected deck ID to its slide count.
func DeckLibraryContractTest(t *testing.T, lib ports.DeckLibrary, want map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		decks, err := lib.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing decks: %v", err)
		}
		if len(decks) != len(want) {
			t.Fatalf("expected %d decks, got %d", len(want), len(decks))
		}
		for i, d := range decks {
			n, ok := want[d.ID]
			if !ok {
				t.Errorf("unexpected deck %q", d.ID)
				continue
			}
			if d.Slides != n {
				t.Errorf("deck %q: expected %d slides, got %d", d.ID, n, d.Slides)
			}
			if i > 0 && decks[i-1].ID > d.ID {
				t.Errorf("decks not sorted: %q before %q", decks[i-1].ID, d.ID)
			}
		}
	})

	t.Run("Get", func(t *testing.T) {
		for id := range want {
			deck, err := lib.Get(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting %q: %v", id, err)
			}
			if deck.ID != id {
				t.Errorf("expected ID %q, got %q", id, deck.ID)
			}
			if deck.Request == nil {
				t.Errorf("deck %q has no request document", id)
			}
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := lib.Get(ctx, "does-not-exist")
		if !errors.Is(err, domain.ErrDeckNotFound) {
			t.Errorf("expected ErrDeckNotFound, got %v", err)
		}
	})
}
