package normalize

import (
	"fmt"
	"strings"

	"github.com/aretw0/lectern/pkg/domain"
)

// contentFields are keys that carry element content rather than options.
var contentFields = []string{"text", "options", "type", "table", "image", "rect", "shape", "chart", "media"}

// geometricKinds is the order in which the geometric and media fields are checked.
var geometricKinds = []string{"image", "rect", "shape", "chart", "media"}

// Element normalizes one raw slide object. It never fails: payloads that match
// no case, or whose data is unusable, come back as domain.Unrecognized.
//
// Cases are evaluated in order and the first match wins:
//  1. text is a string
//  2. text is an object holding a string text
//  3. text is an array of paragraph fragments
//  4. table holds a rows array
//  5. image, rect, shape, chart or media is present
//  6. anything else is unrecognized
func Element(raw any) domain.Element {
	switch v := raw.(type) {
	case string:
		return text(v, nil)
	case map[string]any:
		return dispatch(untag(v))
	}
	return domain.Unrecognized{Reason: fmt.Sprintf("element is a %s, not an object", jsonType(raw)), Raw: raw}
}

func dispatch(m map[string]any) domain.Element {
	opts := optionsOf(m)

	switch t := m["text"].(type) {
	case string:
		return text(t, opts)
	case map[string]any:
		if s, ok := t["text"].(string); ok {
			return text(s, merge(opts, optionsOf(t)))
		}
	case []any:
		return richText(t, opts)
	}

	if rows, tableOpts, ok := tableRows(m["table"]); ok {
		return table(rows, merge(opts, tableOpts), m)
	}

	for _, kind := range geometricKinds {
		v, ok := m[kind]
		if !ok || v == nil {
			continue
		}
		switch kind {
		case "image":
			return image(v, opts)
		case "rect":
			return rect(v, opts)
		case "shape":
			return shape(v, opts)
		case "chart":
			return chart(v, opts)
		case "media":
			return media(v, opts)
		}
	}

	return domain.Unrecognized{Reason: "no recognized content field", Raw: m}
}

// untag rewrites the {type: kind, options: {...}} form into the field form,
// unless the element already carries a field for that kind.
func untag(m map[string]any) map[string]any {
	kind := strings.ToLower(strings.TrimSpace(toString(m["type"])))
	if kind == "" {
		return m
	}
	switch kind {
	case "richtext", "paragraphs", "bullets":
		kind = "text"
	case "picture", "img":
		kind = "image"
	case "video", "audio", "online":
		kind = "media"
	case "rectangle":
		kind = "rect"
	}
	if _, exists := m[kind]; exists {
		return m
	}

	opts := merge(withoutContent(m), asMap(m["options"]))
	out := make(map[string]any, 2)
	switch kind {
	case "text":
		t, ok := opts["text"]
		if !ok {
			return m
		}
		delete(opts, "text")
		out["text"] = t
		out["options"] = opts
	case "table", "image", "rect", "shape", "chart":
		out[kind] = opts
	case "media":
		if _, ok := opts["type"]; !ok {
			opts["type"] = toString(m["type"])
		}
		out[kind] = opts
	default:
		return m
	}
	return out
}

// optionsOf merges the element's top-level non-content keys with its options map.
func optionsOf(m map[string]any) map[string]any {
	return merge(withoutContent(m), asMap(m["options"]))
}

func withoutContent(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range contentFields {
		delete(out, k)
	}
	return out
}

func text(s string, opts map[string]any) domain.Element {
	return domain.Text{
		Box:       box(opts, domain.KindText),
		Text:      s,
		Style:     textStyle(opts, DefaultTextStyle),
		Fill:      fillColor(opts["fill"], ""),
		Hyperlink: hyperlink(opts["hyperlink"]),
	}
}

func richText(items []any, opts map[string]any) domain.Element {
	style := textStyle(opts, DefaultTextStyle)
	container := bullet(opts["bullet"])

	paras := make([]domain.Paragraph, 0, len(items))
	for _, item := range items {
		var s string
		var fragOpts map[string]any
		switch f := item.(type) {
		case nil:
			continue
		case map[string]any:
			s = toString(f["text"])
			fragOpts = optionsOf(f)
		default:
			s = toString(f)
		}

		frag := bullet(fragOpts["bullet"])
		p := domain.Paragraph{
			Text:     strings.TrimSpace(s),
			Style:    textStyle(fragOpts, style),
			Bullet:   container.on || frag.on,
			Numbered: container.numbered || frag.numbered,
		}
		if lvl, ok := toInt(fragOpts["indentLevel"]); ok && lvl > 0 {
			p.Indent = lvl
		}
		if p.Bullet {
			p.Text = stripBullet(p.Text)
		}
		paras = append(paras, p)
	}
	if len(paras) == 0 {
		return domain.Unrecognized{Reason: "paragraph list is empty", Raw: items}
	}

	return domain.RichText{
		Box:        box(opts, domain.KindRichText),
		Paragraphs: paras,
		Style:      style,
		Fill:       fillColor(opts["fill"], ""),
		Hyperlink:  hyperlink(opts["hyperlink"]),
	}
}

// tableRows accepts {rows: [...], ...options} or a bare array of rows.
func tableRows(v any) ([]any, map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		rows, ok := t["rows"].([]any)
		if !ok {
			return nil, nil, false
		}
		opts := merge(t, asMap(t["options"]))
		delete(opts, "rows")
		delete(opts, "options")
		return rows, opts, true
	case []any:
		return t, nil, true
	}
	return nil, nil, false
}

func table(rows []any, opts map[string]any, raw map[string]any) domain.Element {
	style := DefaultTableStyle
	ts := textStyle(opts, domain.TextStyle{FontSize: style.FontSize, FontFace: style.FontFace, Color: style.Color})
	style.FontSize = ts.FontSize
	style.FontFace = ts.FontFace
	style.Color = ts.Color
	style.Fill = fillColor(opts["fill"], style.Fill)

	border := opts["border"]
	if list, ok := border.([]any); ok && len(list) > 0 {
		border = list[0]
	}
	if b := asMap(border); b != nil {
		if t := strings.ToLower(toString(b["type"])); t != "" {
			style.BorderType = t
		}
		style.BorderColor = toColor(b["color"], style.BorderColor)
		if pt, ok := toFloat(b["pt"]); ok && pt >= 0 {
			style.BorderPt = pt
		}
	}

	out := make([][]domain.TableCell, 0, len(rows))
	for _, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			cells = []any{r}
		}
		row := make([]domain.TableCell, 0, len(cells))
		for _, c := range cells {
			row = append(row, tableCell(c))
		}
		out = append(out, row)
	}

	t := domain.Table{Box: box(opts, domain.KindTable), Rows: out, Style: style}
	if len(out) == 0 || t.Columns() == 0 {
		return domain.Unrecognized{Reason: "table has no cells", Raw: raw}
	}
	return t
}

func tableCell(v any) domain.TableCell {
	m, ok := v.(map[string]any)
	if !ok {
		return domain.TableCell{Text: toString(v)}
	}
	opts := optionsOf(m)
	return domain.TableCell{
		Text:  toString(m["text"]),
		Bold:  toBool(opts["bold"]),
		Color: toColor(opts["color"], ""),
		Fill:  fillColor(opts["fill"], ""),
		Align: alignment(toString(opts["align"])),
	}
}

// imageRef reads {path | url | src | data} or a bare string.
func imageRef(v any) domain.ImageRef {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "data:") {
			return domain.ImageRef{Data: s}
		}
		return domain.ImageRef{Path: s}
	}
	m := asMap(v)
	ref := domain.ImageRef{Data: strings.TrimSpace(toString(m["data"]))}
	for _, k := range []string{"path", "url", "src"} {
		if p := strings.TrimSpace(toString(m[k])); p != "" {
			ref.Path = p
			break
		}
	}
	return ref
}

func image(v any, opts map[string]any) domain.Element {
	payload := merge(opts, asMap(v))
	ref := imageRef(v)
	if ref.IsZero() {
		return domain.Unrecognized{Reason: "image has no path or data", Raw: v}
	}
	return domain.Image{
		Box:       box(payload, domain.KindImage),
		Source:    ref,
		AltText:   toString(payload["altText"]),
		Hyperlink: hyperlink(payload["hyperlink"]),
	}
}

func rect(v any, opts map[string]any) domain.Element {
	payload := merge(opts, asMap(v))
	return domain.Rect{
		Box:  box(payload, domain.KindRect),
		Fill: fillColor(payload["fill"], DefaultShapeFill),
		Line: line(payload),
	}
}

var shapeGeometries = map[string]string{
	"rect":          "rect",
	"rectangle":     "rect",
	"roundrect":     "roundRect",
	"roundedrect":   "roundRect",
	"ellipse":       "ellipse",
	"oval":          "ellipse",
	"circle":        "ellipse",
	"triangle":      "triangle",
	"rttriangle":    "rtTriangle",
	"diamond":       "diamond",
	"parallelogram": "parallelogram",
	"trapezoid":     "trapezoid",
	"pentagon":      "pentagon",
	"hexagon":       "hexagon",
	"rightarrow":    "rightArrow",
	"arrow":         "rightArrow",
	"leftarrow":     "leftArrow",
	"uparrow":       "upArrow",
	"downarrow":     "downArrow",
	"star":          "star5",
	"star5":         "star5",
	"heart":         "heart",
	"cloud":         "cloud",
	"chevron":       "chevron",
	"plus":          "mathPlus",
	"mathplus":      "mathPlus",
	"donut":         "donut",
	"line":          "line",
}

func geometry(s string) string {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	if g, ok := shapeGeometries[key]; ok {
		return g
	}
	return "rect"
}

func shape(v any, opts map[string]any) domain.Element {
	payload := merge(opts, asMap(v))
	name, isName := v.(string)
	if !isName {
		name = toString(payload["type"])
		if name == "" {
			name = toString(payload["shape"])
		}
	}

	var label string
	if t, ok := payload["text"].(string); ok {
		label = t
	}
	rot, _ := toInt(payload["rotate"])

	return domain.Shape{
		Box:       box(payload, domain.KindShape),
		Geometry:  geometry(name),
		Fill:      fillColor(payload["fill"], DefaultShapeFill),
		Line:      line(payload),
		Text:      label,
		Style:     textStyle(payload, DefaultTextStyle),
		Rotate:    rot,
		Hyperlink: hyperlink(payload["hyperlink"]),
	}
}

var chartTypes = map[string]string{
	"bar":      "bar",
	"column":   "bar",
	"bar3d":    "bar3d",
	"line":     "line",
	"area":     "area",
	"pie":      "pie",
	"pie3d":    "pie3d",
	"doughnut": "doughnut",
	"donut":    "doughnut",
	"scatter":  "scatter",
	"radar":    "radar",
}

var legendPositions = map[string]string{
	"r": "r", "right": "r",
	"b": "b", "bottom": "b",
	"t": "t", "top": "t",
	"l": "l", "left": "l",
	"tr": "tr",
}

func chart(v any, opts map[string]any) domain.Element {
	payload := merge(opts, asMap(v))
	if s, ok := v.(string); ok {
		payload["type"] = s
	}

	kind, ok := chartTypes[strings.ToLower(strings.TrimSpace(toString(payload["type"])))]
	if !ok {
		return domain.Unrecognized{Reason: fmt.Sprintf("unsupported chart type %q", toString(payload["type"])), Raw: v}
	}

	data, _ := payload["data"].([]any)
	series := make([]domain.ChartSeries, 0, len(data))
	for _, d := range data {
		m := asMap(d)
		if m == nil {
			continue
		}
		s := domain.ChartSeries{Name: toString(m["name"])}
		labels, _ := m["labels"].([]any)
		for _, l := range labels {
			s.Labels = append(s.Labels, toString(l))
		}
		values, _ := m["values"].([]any)
		for _, val := range values {
			f, _ := toFloat(val)
			s.Values = append(s.Values, f)
		}
		if len(s.Values) == 0 {
			continue
		}
		series = append(series, s)
	}
	if len(series) == 0 {
		return domain.Unrecognized{Reason: "chart has no data series", Raw: v}
	}

	c := domain.Chart{
		Box:        box(payload, domain.KindChart),
		ChartType:  kind,
		Title:      toString(payload["title"]),
		Series:     series,
		ShowLegend: DefaultShowLegend,
		LegendPos:  DefaultLegendPos,
	}
	if show, ok := payload["showLegend"]; ok && show != nil {
		c.ShowLegend = toBool(show)
	}
	if pos, ok := legendPositions[strings.ToLower(toString(payload["legendPos"]))]; ok {
		c.LegendPos = pos
	}
	if colors, ok := payload["chartColors"].([]any); ok {
		for _, col := range colors {
			if hex := toColor(col, ""); hex != "" {
				c.Colors = append(c.Colors, hex)
			}
		}
	}
	return c
}

func media(v any, opts map[string]any) domain.Element {
	payload := merge(opts, asMap(v))
	if s, ok := v.(string); ok {
		payload["link"] = s
	}

	link := ""
	for _, k := range []string{"link", "path", "url"} {
		if l := strings.TrimSpace(toString(payload[k])); l != "" {
			link = l
			break
		}
	}
	if link == "" {
		return domain.Unrecognized{Reason: "media has no link or path", Raw: v}
	}

	mediaType := strings.ToLower(toString(payload["type"]))
	switch mediaType {
	case "video", "audio", "online":
	default:
		mediaType = DefaultMediaType
	}

	poster := payload["cover"]
	if poster == nil {
		poster = payload["poster"]
	}

	return domain.Media{
		Box:       box(payload, domain.KindMedia),
		MediaType: mediaType,
		Link:      link,
		Poster:    imageRef(poster),
	}
}
