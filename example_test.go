package lectern_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/pkg/adapters/memory"
)

// ExampleService_GenerateJSON builds a deck from a raw JSON request.
func ExampleService_GenerateJSON() {
	svc, err := lectern.New()
	if err != nil {
		log.Fatal(err)
	}

	art, err := svc.GenerateJSON(context.Background(), strings.NewReader(`{
		"title": "Quarterly Review",
		"slides": [
			{"title": "Intro", "objects": [{"text": "Welcome"}]},
			{"objects": [{"table": {"rows": [["Q1", "Q2"], ["10", "12"]]}}]}
		]
	}`))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(art.Filename, art.Slides, art.Skipped)
	// Output: Quarterly_Review.pptx 2 0
}

// ExampleService_GenerateDeck renders a stored deck with a title override.
func ExampleService_GenerateDeck() {
	lib, err := memory.NewLibrary(map[string]string{
		"welcome": `{"title": "Welcome", "slides": [{"objects": [{"text": "Hi"}]}]}`,
	})
	if err != nil {
		log.Fatal(err)
	}

	svc, err := lectern.New(lectern.WithDeckLibrary(lib))
	if err != nil {
		log.Fatal(err)
	}

	art, err := svc.GenerateDeck(context.Background(), "welcome", lectern.RenderOptions{Title: "Onboarding"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(art.Filename, art.Slides)
	// Output: Onboarding.pptx 1
}
