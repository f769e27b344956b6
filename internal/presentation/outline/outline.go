// Package outline describes a decoded deck as Markdown.
package outline

import (
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

const emuPerInch = 914400

// Generate produces a Markdown outline: one section per slide listing every
// shape in draw order, followed by the speaker notes.
func Generate(p *ppt.Presentation) string {
	var sb strings.Builder

	props := p.GetDocumentProperties()
	title := props.Title
	if title == "" {
		title = "Untitled deck"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	layout := p.GetLayout()
	fmt.Fprintf(&sb, "- Slides: %d\n", p.GetSlideCount())
	fmt.Fprintf(&sb, "- Size: %s x %s in\n", inches(layout.CX), inches(layout.CY))
	if props.Creator != "" {
		fmt.Fprintf(&sb, "- Author: %s\n", props.Creator)
	}
	if props.Company != "" {
		fmt.Fprintf(&sb, "- Company: %s\n", props.Company)
	}
	if props.Subject != "" {
		fmt.Fprintf(&sb, "- Subject: %s\n", props.Subject)
	}

	for i, s := range p.GetAllSlides() {
		sb.WriteString("\n")
		if name := s.GetName(); name != "" {
			fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, name)
		} else {
			fmt.Fprintf(&sb, "## %d.\n\n", i+1)
		}

		shapes := s.GetShapes()
		if len(shapes) == 0 {
			sb.WriteString("_No shapes._\n")
		}
		for _, sh := range shapes {
			fmt.Fprintf(&sb, "- %s\n", Describe(sh))
		}

		if notes := strings.TrimSpace(s.GetNotes()); notes != "" {
			sb.WriteString("\n")
			for _, line := range strings.Split(notes, "\n") {
				fmt.Fprintf(&sb, "> %s\n", line)
			}
		}
	}
	return sb.String()
}

// Describe summarizes one shape on a single line.
func Describe(sh ppt.Shape) string {
	var what string
	switch v := sh.(type) {
	case *ppt.RichTextShape:
		what = "Text: " + quote(richText(v))
	case *ppt.AutoShape:
		what = fmt.Sprintf("Shape (%s)", v.GetAutoShapeType())
		if t := v.GetText(); t != "" {
			what += ": " + quote(t)
		}
	case *ppt.DrawingShape:
		what = "Picture"
	case *ppt.TableShape:
		what = fmt.Sprintf("Table %dx%d", v.GetNumRows(), v.GetNumCols())
	case *ppt.ChartShape:
		what = "Chart"
	case *ppt.LineShape:
		what = "Line"
	default:
		what = fmt.Sprintf("%T", sh)
	}
	if name := sh.GetName(); name != "" && !strings.HasPrefix(what, "Text") {
		what += fmt.Sprintf(" [%s]", name)
	}
	return fmt.Sprintf("%s at %s,%s (%s x %s in)", what,
		inches(sh.GetOffsetX()), inches(sh.GetOffsetY()),
		inches(sh.GetWidth()), inches(sh.GetHeight()))
}

func richText(rt *ppt.RichTextShape) string {
	var lines []string
	for _, para := range rt.GetParagraphs() {
		var sb strings.Builder
		for _, el := range para.GetElements() {
			if tr, ok := el.(*ppt.TextRun); ok {
				sb.WriteString(tr.GetText())
			}
		}
		if sb.Len() > 0 {
			lines = append(lines, sb.String())
		}
	}
	return strings.Join(lines, " / ")
}

func quote(s string) string {
	const max = 60
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		s = string(r[:max-1]) + "…"
	}
	return fmt.Sprintf("%q", s)
}

func inches(emu int64) string {
	v := fmt.Sprintf("%.2f", float64(emu)/emuPerInch)
	v = strings.TrimRight(strings.TrimRight(v, "0"), ".")
	if v == "" || v == "-" {
		return "0"
	}
	return v
}
