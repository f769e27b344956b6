package domain

// Layout names accepted in PresentationRequest.Layout.
const (
	Layout16x9   = "LAYOUT_16x9"
	Layout16x10  = "LAYOUT_16x10"
	Layout4x3    = "LAYOUT_4x3"
	LayoutWide   = "LAYOUT_WIDE"
	LayoutA4     = "LAYOUT_A4"
	LayoutLetter = "LAYOUT_LETTER"
)

// PresentationRequest describes one deck.
type PresentationRequest struct {
	Title   string      `json:"title,omitempty"`
	Author  string      `json:"author,omitempty"`
	Company string      `json:"company,omitempty"`
	Subject string      `json:"subject,omitempty"`
	Layout  string      `json:"layout,omitempty"`
	Slides  []SlideSpec `json:"slides"`

	// Warnings collects non-fatal problems found while normalizing the payload.
	Warnings []string `json:"-"`
}

// SlideSpec describes one output slide. Element order is draw order.
type SlideSpec struct {
	Title      string      `json:"title,omitempty"`
	Background *Background `json:"background,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Elements   []Element   `json:"-"`
}

// Background is either a flat colour or an image drawn under every element.
type Background struct {
	Color string    `json:"color,omitempty"`
	Image *ImageRef `json:"image,omitempty"`
}

// ImageRef points at image bytes: a data URI, an http(s) URL or a local path.
type ImageRef struct {
	Path string `json:"path,omitempty"`
	Data string `json:"data,omitempty"`
}

// Source returns the reference to resolve, preferring inline data.
func (r ImageRef) Source() string {
	if r.Data != "" {
		return r.Data
	}
	return r.Path
}

// IsZero reports whether the reference points at nothing.
func (r ImageRef) IsZero() bool { return r.Source() == "" }

// CountElements returns the number of elements over all slides.
func (r *PresentationRequest) CountElements() int {
	n := 0
	for _, s := range r.Slides {
		n += len(s.Elements)
	}
	return n
}
