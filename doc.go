/*
Package lectern turns JSON slide descriptions into PowerPoint (.pptx) decks.

A request is a loosely typed document: slides hold objects, and each object is
normalized onto a closed set of element kinds (text, rich text, table, image,
shape, rect, chart and media) with defaults applied. Elements that cannot be
understood or drawn are logged and skipped; the rest of the deck still renders.

# Usage

	svc, err := lectern.New()
	if err != nil {
		log.Fatal(err)
	}

	art, err := svc.GenerateJSON(ctx, strings.NewReader(`{
		"title": "Hello",
		"slides": [{"objects": [{"text": "Hello"}]}]
	}`))
	if err != nil {
		log.Fatal(err)
	}
	os.WriteFile(art.Filename, art.Data, 0o644)

The HTTP, MCP and CLI front ends in this module are thin adapters over Service.
*/
package lectern
