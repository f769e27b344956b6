package loam

// DeckMetadata is the front matter (or whole document, for JSON and YAML
// files) of a stored deck. Field names follow the presentation request.
type DeckMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Author      string `json:"author" mapstructure:"author"`
	Company     string `json:"company" mapstructure:"company"`
	Subject     string `json:"subject" mapstructure:"subject"`
	Layout      string `json:"layout" mapstructure:"layout"`

	// Slides holds explicit slide specs. When empty, slides are derived from
	// the Markdown body.
	Slides []any `json:"slides" mapstructure:"slides"`
}
