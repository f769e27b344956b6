package domain

// PPTXMIMEType is the content type of an encoded deck.
const PPTXMIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Artifact is an encoded deck. It is created once per request and never persisted.
type Artifact struct {
	Data     []byte
	MIMEType string
	Filename string

	// Slides is the number of slides in the encoded deck.
	Slides int
	// Skipped counts elements that were logged and dropped during the build.
	Skipped int
}
