package outline_test

import (
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/lectern/internal/presentation/outline"
)

func TestGenerate(t *testing.T) {
	p := ppt.New()
	p.GetDocumentProperties().Title = "Roadmap"
	p.GetDocumentProperties().Creator = "Ana"
	p.GetLayout().SetLayout(ppt.LayoutScreen4x3)

	s := p.GetActiveSlide()
	s.SetName("Intro")
	s.SetNotes("first line\nsecond line")
	rt := s.CreateRichTextShape()
	rt.SetPosition(ppt.Inch(1), ppt.Inch(0.5))
	rt.SetSize(ppt.Inch(8), ppt.Inch(1))
	rt.CreateTextRun("Hello   outline")

	s2 := p.CreateSlide()
	tbl := s2.CreateTableShape(2, 3)
	tbl.SetSize(ppt.Inch(4), ppt.Inch(2))
	as := s2.CreateAutoShape()
	as.SetAutoShapeType(ppt.AutoShapeEllipse)
	as.SetText("Dot")

	md := outline.Generate(p)

	for _, want := range []string{
		"# Roadmap",
		"- Slides: 2",
		"- Size: 10 x 7.5 in",
		"- Author: Ana",
		"## 1. Intro",
		`- Text: "Hello outline" at 1,0.5 (8 x 1 in)`,
		"> first line",
		"> second line",
		"## 2.",
		"- Table 2x3 at 0,0 (4 x 2 in)",
		`- Shape (ellipse): "Dot"`,
	} {
		assert.Contains(t, md, want)
	}
}

func TestGenerate_EmptySlide(t *testing.T) {
	md := outline.Generate(ppt.New())
	assert.True(t, strings.HasPrefix(md, "# Untitled deck"))
	assert.Contains(t, md, "_No shapes._")
}
