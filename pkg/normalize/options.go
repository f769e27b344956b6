package normalize

import (
	"strings"

	"github.com/aretw0/lectern/pkg/domain"
)

type geometryOptions struct {
	X any `mapstructure:"x"`
	Y any `mapstructure:"y"`
	W any `mapstructure:"w"`
	H any `mapstructure:"h"`
}

type textOptions struct {
	FontSize  any    `mapstructure:"fontSize"`
	FontFace  string `mapstructure:"fontFace"`
	Color     any    `mapstructure:"color"`
	Bold      any    `mapstructure:"bold"`
	Italic    any    `mapstructure:"italic"`
	Underline any    `mapstructure:"underline"`
	Strike    any    `mapstructure:"strike"`
	Align     string `mapstructure:"align"`
	Valign    string `mapstructure:"valign"`
}

type lineOptions struct {
	Color any `mapstructure:"color"`
	Width any `mapstructure:"width"`
}

// box reads x, y, w and h, falling back per field to the kind's default box.
// Negative sizes are treated as malformed.
func box(opts map[string]any, kind domain.Kind) domain.Box {
	def := DefaultBoxes[kind]
	var g geometryOptions
	decode(opts, &g)

	b := domain.Box{
		X: toDimension(g.X, def.X),
		Y: toDimension(g.Y, def.Y),
		W: toDimension(g.W, def.W),
		H: toDimension(g.H, def.H),
	}
	if b.W.Value < 0 {
		b.W = def.W
	}
	if b.H.Value < 0 {
		b.H = def.H
	}
	return b
}

// textStyle overlays the formatting keys of opts on base.
func textStyle(opts map[string]any, base domain.TextStyle) domain.TextStyle {
	var o textOptions
	decode(opts, &o)

	s := base
	if f, ok := toFloat(o.FontSize); ok && f > 0 {
		s.FontSize = f
	}
	if face := strings.TrimSpace(o.FontFace); face != "" {
		s.FontFace = face
	}
	s.Color = toColor(o.Color, s.Color)
	if o.Bold != nil {
		s.Bold = toBool(o.Bold)
	}
	if o.Italic != nil {
		s.Italic = toBool(o.Italic)
	}
	if o.Underline != nil {
		s.Underline = toBool(o.Underline)
	}
	if o.Strike != nil {
		s.Strike = toBool(o.Strike)
	}
	if a := alignment(o.Align); a != "" {
		s.Align = a
	}
	if v := verticalAlignment(o.Valign); v != "" {
		s.Valign = v
	}
	return s
}

func alignment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return "left"
	case "center", "centre", "ctr", "c":
		return "center"
	case "right", "r":
		return "right"
	case "justify", "just":
		return "justify"
	}
	return ""
}

func verticalAlignment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "t":
		return "top"
	case "middle", "center", "ctr", "m":
		return "middle"
	case "bottom", "b":
		return "bottom"
	}
	return ""
}

// line reads {color, width} or the legacy lineColor / lineSize keys.
func line(opts map[string]any) domain.Line {
	l := domain.Line{Color: DefaultLineColor, Width: DefaultLineWidth}

	var o lineOptions
	switch v := opts["line"].(type) {
	case map[string]any:
		decode(v, &o)
	case nil:
	default:
		o.Color = v
	}
	if o.Color == nil {
		o.Color = opts["lineColor"]
	}
	if o.Width == nil {
		o.Width = opts["lineSize"]
	}

	l.Color = toColor(o.Color, l.Color)
	if w, ok := toFloat(o.Width); ok && w >= 0 {
		l.Width = w
	}
	return l
}

type bulletSpec struct {
	on       bool
	numbered bool
}

// bullet reads true, "number" or {type: "number"}.
func bullet(v any) bulletSpec {
	switch b := v.(type) {
	case map[string]any:
		return bulletSpec{on: true, numbered: strings.EqualFold(toString(b["type"]), "number")}
	case string:
		if strings.EqualFold(b, "number") {
			return bulletSpec{on: true, numbered: true}
		}
	}
	return bulletSpec{on: toBool(v)}
}

var bulletGlyphs = []string{"•", "◦", "▪", "▫", "‣", "●", "○", "■", "□", "►", "–", "- ", "* "}

// stripBullet removes one leading bullet glyph and the whitespace after it.
func stripBullet(s string) string {
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(s, g) {
			return strings.TrimLeft(s[len(g):], " \t")
		}
	}
	return s
}
