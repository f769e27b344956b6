package normalize

import (
	"strconv"

	"github.com/aretw0/lectern/pkg/domain"
)

// Canonical encodes an element back into the field form accepted by Element.
// Element(Canonical(e)) reproduces e for every recognized element.
func Canonical(el domain.Element) any {
	switch e := el.(type) {
	case domain.Text:
		opts := merge(boxMap(e.Box), styleMap(e.Style), fillMap(e.Fill, false))
		if e.Hyperlink != "" {
			opts["hyperlink"] = map[string]any{"url": e.Hyperlink}
		}
		return map[string]any{"text": e.Text, "options": opts}

	case domain.RichText:
		frags := make([]any, 0, len(e.Paragraphs))
		for _, p := range e.Paragraphs {
			fo := styleMap(p.Style)
			switch {
			case p.Numbered:
				fo["bullet"] = map[string]any{"type": "number"}
			case p.Bullet:
				fo["bullet"] = true
			}
			if p.Indent > 0 {
				fo["indentLevel"] = float64(p.Indent)
			}
			text := p.Text
			if p.Bullet {
				// Bullet text loses one leading glyph on every pass.
				text = bulletGlyphs[0] + " " + text
			}
			frags = append(frags, map[string]any{"text": text, "options": fo})
		}
		opts := merge(boxMap(e.Box), styleMap(e.Style), fillMap(e.Fill, false))
		if e.Hyperlink != "" {
			opts["hyperlink"] = map[string]any{"url": e.Hyperlink}
		}
		return map[string]any{"text": frags, "options": opts}

	case domain.Table:
		rows := make([]any, 0, len(e.Rows))
		for _, r := range e.Rows {
			cells := make([]any, 0, len(r))
			for _, c := range r {
				co := map[string]any{"bold": c.Bold}
				if c.Color != "" {
					co["color"] = c.Color
				}
				if c.Fill != "" {
					co["fill"] = map[string]any{"color": c.Fill}
				}
				if c.Align != "" {
					co["align"] = c.Align
				}
				cells = append(cells, map[string]any{"text": c.Text, "options": co})
			}
			rows = append(rows, cells)
		}
		t := merge(boxMap(e.Box), fillMap(e.Style.Fill, true), map[string]any{
			"rows":     rows,
			"fontSize": e.Style.FontSize,
			"fontFace": e.Style.FontFace,
			"color":    e.Style.Color,
			"border":   map[string]any{"type": e.Style.BorderType, "color": e.Style.BorderColor, "pt": e.Style.BorderPt},
		})
		return map[string]any{"table": t}

	case domain.Image:
		img := merge(boxMap(e.Box), refMap(e.Source))
		if e.AltText != "" {
			img["altText"] = e.AltText
		}
		if e.Hyperlink != "" {
			img["hyperlink"] = map[string]any{"url": e.Hyperlink}
		}
		return map[string]any{"image": img}

	case domain.Shape:
		s := merge(boxMap(e.Box), styleMap(e.Style), fillMap(e.Fill, true), map[string]any{
			"type":   e.Geometry,
			"line":   map[string]any{"color": e.Line.Color, "width": e.Line.Width},
			"rotate": float64(e.Rotate),
		})
		if e.Text != "" {
			s["text"] = e.Text
		}
		if e.Hyperlink != "" {
			s["hyperlink"] = map[string]any{"url": e.Hyperlink}
		}
		return map[string]any{"shape": s}

	case domain.Rect:
		r := merge(boxMap(e.Box), fillMap(e.Fill, true), map[string]any{
			"line": map[string]any{"color": e.Line.Color, "width": e.Line.Width},
		})
		return map[string]any{"rect": r}

	case domain.Chart:
		data := make([]any, 0, len(e.Series))
		for _, s := range e.Series {
			labels := make([]any, 0, len(s.Labels))
			for _, l := range s.Labels {
				labels = append(labels, l)
			}
			values := make([]any, 0, len(s.Values))
			for _, v := range s.Values {
				values = append(values, v)
			}
			data = append(data, map[string]any{"name": s.Name, "labels": labels, "values": values})
		}
		c := merge(boxMap(e.Box), map[string]any{
			"type":       e.ChartType,
			"data":       data,
			"showLegend": e.ShowLegend,
			"legendPos":  e.LegendPos,
		})
		if e.Title != "" {
			c["title"] = e.Title
		}
		if len(e.Colors) > 0 {
			colors := make([]any, 0, len(e.Colors))
			for _, col := range e.Colors {
				colors = append(colors, col)
			}
			c["chartColors"] = colors
		}
		return map[string]any{"chart": c}

	case domain.Media:
		m := merge(boxMap(e.Box), map[string]any{"type": e.MediaType, "link": e.Link})
		if !e.Poster.IsZero() {
			m["cover"] = refMap(e.Poster)
		}
		return map[string]any{"media": m}

	case domain.Unrecognized:
		return e.Raw
	}
	return nil
}

func dimension(d domain.Dimension) any {
	if d.Percent {
		return strconv.FormatFloat(d.Value, 'f', -1, 64) + "%"
	}
	return d.Value
}

func boxMap(b domain.Box) map[string]any {
	return map[string]any{"x": dimension(b.X), "y": dimension(b.Y), "w": dimension(b.W), "h": dimension(b.H)}
}

func styleMap(s domain.TextStyle) map[string]any {
	return map[string]any{
		"fontSize":  s.FontSize,
		"fontFace":  s.FontFace,
		"color":     s.Color,
		"bold":      s.Bold,
		"italic":    s.Italic,
		"underline": s.Underline,
		"strike":    s.Strike,
		"align":     s.Align,
		"valign":    s.Valign,
	}
}

// fillMap encodes a fill colour. An empty colour is written as "none" when the
// kind defaults to a visible fill, and omitted otherwise.
func fillMap(color string, explicitNone bool) map[string]any {
	if color == "" {
		if explicitNone {
			return map[string]any{"fill": "none"}
		}
		return nil
	}
	return map[string]any{"fill": map[string]any{"color": color}}
}

func refMap(r domain.ImageRef) map[string]any {
	m := map[string]any{}
	if r.Data != "" {
		m["data"] = r.Data
	}
	if r.Path != "" {
		m["path"] = r.Path
	}
	return m
}
