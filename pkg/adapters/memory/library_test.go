package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/adapters/memory"
	contract "github.com/aretw0/lectern/pkg/ports/tests"
)

func TestMemoryLibrary_Contract(t *testing.T) {
	lib, err := memory.NewLibrary(map[string]string{
		"intro":  `{"title": "Intro", "slides": [{"objects": ["Hello"]}]}`,
		"review": `{"title": "Review", "slides": [{}, {}]}`,
	})
	require.NoError(t, err)

	contract.DeckLibraryContractTest(t, lib, map[string]int{"intro": 1, "review": 2})
}

func TestMemoryLibrary_RejectsBadJSON(t *testing.T) {
	_, err := memory.NewLibrary(map[string]string{"bad": `{`})
	require.Error(t, err)
}
