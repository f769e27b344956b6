package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"", DefaultFilename},
		{"   ", DefaultFilename},
		{"Q3 Review", "Q3_Review.pptx"},
		{`evil"; filename=x.exe`, "evil_filename_x.exe.pptx"},
		{"../../etc/passwd", "etc_passwd.pptx"},
		{"Relatório Anual", "Relat_rio_Anual.pptx"},
		{"deck.pptx", "deck.pptx"},
		{"***", DefaultFilename},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.title))
		})
	}
}

func TestFilename_Truncates(t *testing.T) {
	got := Filename(strings.Repeat("a", 300))

	assert.Equal(t, maxFilenameBase+len(".pptx"), len(got))
	assert.True(t, strings.HasSuffix(got, ".pptx"))
}
