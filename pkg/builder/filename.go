package builder

import (
	"regexp"
	"strings"
)

// DefaultFilename is used when a request has no usable title.
const DefaultFilename = "presentation.pptx"

const maxFilenameBase = 100

var unsafeFilenameRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename derives a header-safe attachment name from a deck title.
func Filename(title string) string {
	base := unsafeFilenameRun.ReplaceAllString(strings.TrimSpace(title), "_")
	base = strings.TrimSuffix(base, ".pptx")
	base = strings.Trim(base, "._-")
	if len(base) > maxFilenameBase {
		base = strings.Trim(base[:maxFilenameBase], "._-")
	}
	if base == "" {
		return DefaultFilename
	}
	return base + ".pptx"
}
