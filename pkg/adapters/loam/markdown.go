package loam

import (
	"bufio"
	"strings"
)

// slidesFromMarkdown derives slide specs from a Markdown body. Slides are
// separated by lines holding only "---". In each slide the first "#" heading
// becomes the slide title and a title text box, remaining lines become a
// bulleted paragraph list, and a "Note:" line starts the speaker notes.
func slidesFromMarkdown(body string) []any {
	var slides []any
	for _, chunk := range splitSlides(body) {
		if s := markdownSlide(chunk); s != nil {
			slides = append(slides, s)
		}
	}
	if slides == nil {
		slides = []any{}
	}
	return slides
}

func splitSlides(body string) []string {
	var (
		chunks []string
		cur    strings.Builder
	)
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "---" {
			chunks = append(chunks, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	return append(chunks, cur.String())
}

func markdownSlide(chunk string) map[string]any {
	var (
		title string
		items []any
		notes []string
		inNote bool
	)
	for _, raw := range strings.Split(chunk, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case inNote:
			notes = append(notes, line)
		case strings.HasPrefix(strings.ToLower(line), "note:"):
			inNote = true
			if rest := strings.TrimSpace(line[len("note:"):]); rest != "" {
				notes = append(notes, rest)
			}
		case title == "" && strings.HasPrefix(line, "#"):
			title = strings.TrimSpace(strings.TrimLeft(line, "#"))
		default:
			items = append(items, line)
		}
	}
	if title == "" && len(items) == 0 && len(notes) == 0 {
		return nil
	}

	var objects []any
	slide := map[string]any{}
	if title != "" {
		slide["title"] = title
		objects = append(objects, map[string]any{
			"text": title,
			"options": map[string]any{
				"x": 0.5, "y": 0.3, "w": 9.0, "h": 1.0,
				"fontSize": 32.0, "bold": true,
			},
		})
	}
	if len(items) > 0 {
		objects = append(objects, map[string]any{
			"text": items,
			"options": map[string]any{
				"x": 0.5, "y": 1.5, "w": 9.0, "h": 4.0,
				"fontSize": 20.0, "bullet": true,
			},
		})
	}
	if len(notes) > 0 {
		slide["notes"] = strings.Join(notes, "\n")
	}
	slide["objects"] = objects
	return slide
}
