package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, js string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(js))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestElement_BareStringText(t *testing.T) {
	for _, raw := range []any{
		"Hello",
		parse(t, `{"text": "Hello"}`),
	} {
		el := Element(raw)

		txt, ok := el.(domain.Text)
		require.True(t, ok, "expected Text, got %T", el)
		assert.Equal(t, "Hello", txt.Text)
		assert.Equal(t, DefaultTextStyle, txt.Style)
		assert.Equal(t, DefaultBoxes[domain.KindText], txt.Box)

		again := Element(Canonical(el))
		assert.Equal(t, el, again, "re-normalizing must be idempotent")
	}
}

func TestElement_NestedTextUsesBlockOptions(t *testing.T) {
	el := Element(parse(t, `{"text": {"text": "Hello", "options": {"fontSize": 24, "color": "#ff0000", "align": "center", "valign": "middle", "bold": true}}}`))

	txt, ok := el.(domain.Text)
	require.True(t, ok)
	assert.Equal(t, "Hello", txt.Text)
	assert.Equal(t, 24.0, txt.Style.FontSize)
	assert.Equal(t, "FF0000", txt.Style.Color)
	assert.Equal(t, "center", txt.Style.Align)
	assert.Equal(t, "middle", txt.Style.Valign)
	assert.True(t, txt.Style.Bold)
	assert.Equal(t, "Arial", txt.Style.FontFace)
}

func TestElement_PriorityOrder(t *testing.T) {
	// A legacy payload carrying both text and image must resolve as text.
	el := Element(parse(t, `{"text": "caption", "image": {"path": "a.png"}}`))
	assert.Equal(t, domain.KindText, el.Kind())

	// Text object without a nested string falls through to later cases.
	el = Element(parse(t, `{"text": {"value": 1}, "table": {"rows": [["a"]]}}`))
	assert.Equal(t, domain.KindTable, el.Kind())

	// table without rows does not match case 4.
	el = Element(parse(t, `{"table": {"cols": 2}, "rect": {}}`))
	assert.Equal(t, domain.KindRect, el.Kind())

	// image is checked before shape.
	el = Element(parse(t, `{"shape": "ellipse", "image": {"path": "a.png"}}`))
	assert.Equal(t, domain.KindImage, el.Kind())
}

func TestElement_BulletStripping(t *testing.T) {
	tests := []struct {
		name string
		js   string
		want []string
	}{
		{
			name: "container bullet",
			js:   `{"text": ["• one", "two", "  • three  "], "options": {"bullet": true}}`,
			want: []string{"one", "two", "three"},
		},
		{
			name: "container and fragment bullet strip once",
			js:   `{"text": [{"text": "• • nested", "options": {"bullet": true}}], "options": {"bullet": true}}`,
			want: []string{"• nested"},
		},
		{
			name: "no bullet keeps glyph",
			js:   `{"text": ["• literal"]}`,
			want: []string{"• literal"},
		},
		{
			name: "dash needs a space",
			js:   `{"text": ["-5 degrees", "- item"], "options": {"bullet": true}}`,
			want: []string{"-5 degrees", "item"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := Element(parse(t, tt.js))
			rt, ok := el.(domain.RichText)
			require.True(t, ok, "expected RichText, got %T", el)

			var got []string
			for _, p := range rt.Paragraphs {
				got = append(got, p.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestElement_BulletIsLogicalOr(t *testing.T) {
	el := Element(parse(t, `{"text": ["plain", {"text": "• flagged", "options": {"bullet": true}}, {"text": "numbered", "options": {"bullet": {"type": "number"}}}]}`))
	rt, ok := el.(domain.RichText)
	require.True(t, ok)
	require.Len(t, rt.Paragraphs, 3)

	assert.False(t, rt.Paragraphs[0].Bullet)
	assert.True(t, rt.Paragraphs[1].Bullet)
	assert.Equal(t, "flagged", rt.Paragraphs[1].Text)
	assert.True(t, rt.Paragraphs[2].Bullet)
	assert.True(t, rt.Paragraphs[2].Numbered)

	el = Element(parse(t, `{"text": [{"text": "a", "options": {"bullet": false}}], "options": {"bullet": true}}`))
	rt = el.(domain.RichText)
	assert.True(t, rt.Paragraphs[0].Bullet, "fragment false must not override container true")
}

func TestElement_FragmentInheritsContainerStyle(t *testing.T) {
	el := Element(parse(t, `{"text": ["a", {"text": "b", "options": {"fontSize": 30}}], "options": {"fontSize": 20, "color": "333333"}}`))
	rt := el.(domain.RichText)

	assert.Equal(t, 20.0, rt.Paragraphs[0].Style.FontSize)
	assert.Equal(t, 30.0, rt.Paragraphs[1].Style.FontSize)
	assert.Equal(t, "333333", rt.Paragraphs[1].Style.Color)
}

func TestElement_Geometry(t *testing.T) {
	el := Element(parse(t, `{"text": "x", "options": {"x": "50%", "y": 1.5, "w": "2", "h": "abc"}}`))
	txt := el.(domain.Text)

	assert.Equal(t, domain.Percent(50), txt.Box.X)
	assert.Equal(t, domain.Inches(1.5), txt.Box.Y)
	assert.Equal(t, domain.Inches(2), txt.Box.W)
	assert.Equal(t, DefaultBoxes[domain.KindText].H, txt.Box.H, "malformed value falls back to the default")

	el = Element(parse(t, `{"rect": {"x": "%", "w": -3, "h": "12.5%"}}`))
	r := el.(domain.Rect)
	assert.Equal(t, DefaultBoxes[domain.KindRect].X, r.Box.X)
	assert.Equal(t, DefaultBoxes[domain.KindRect].W, r.Box.W)
	assert.Equal(t, domain.Percent(12.5), r.Box.H)
}

func TestElement_Table(t *testing.T) {
	el := Element(parse(t, `{"table": {"rows": [["h1", {"text": "h2", "options": {"bold": true, "fill": {"color": "CCCCCC"}}}], ["a"], [1, true]]}}`))

	tbl, ok := el.(domain.Table)
	require.True(t, ok)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, 2, tbl.Columns())
	assert.Equal(t, "h1", tbl.Rows[0][0].Text)
	assert.True(t, tbl.Rows[0][1].Bold)
	assert.Equal(t, "CCCCCC", tbl.Rows[0][1].Fill)
	assert.Equal(t, "1", tbl.Rows[2][0].Text)
	assert.Equal(t, "true", tbl.Rows[2][1].Text)
	assert.Equal(t, DefaultTableStyle, tbl.Style)

	assert.Equal(t, tbl, Element(Canonical(tbl)))
}

func TestElement_TableStyleOverrides(t *testing.T) {
	el := Element(parse(t, `{"table": {"rows": [["a"]], "fontSize": 9, "border": {"type": "dash", "color": "FF0000", "pt": 2}, "fill": "FFFFFF"}}`))
	tbl := el.(domain.Table)

	assert.Equal(t, 9.0, tbl.Style.FontSize)
	assert.Equal(t, "dash", tbl.Style.BorderType)
	assert.Equal(t, "FF0000", tbl.Style.BorderColor)
	assert.Equal(t, 2.0, tbl.Style.BorderPt)
	assert.Equal(t, "FFFFFF", tbl.Style.Fill)
}

func TestElement_ShapeDefaults(t *testing.T) {
	el := Element(parse(t, `{"shape": {"type": "oval", "text": "Go"}}`))

	sh, ok := el.(domain.Shape)
	require.True(t, ok)
	assert.Equal(t, "ellipse", sh.Geometry)
	assert.Equal(t, DefaultShapeFill, sh.Fill)
	assert.Equal(t, domain.Line{Color: "000000", Width: 1}, sh.Line)
	assert.Equal(t, "Go", sh.Text)

	assert.Equal(t, sh, Element(Canonical(sh)))
}

func TestElement_ChartDefaults(t *testing.T) {
	el := Element(parse(t, `{"chart": {"type": "column", "data": [{"name": "Q", "labels": ["a", "b"], "values": [1, "2.5"]}]}}`))

	c, ok := el.(domain.Chart)
	require.True(t, ok)
	assert.Equal(t, "bar", c.ChartType)
	assert.Equal(t, "r", c.LegendPos)
	assert.True(t, c.ShowLegend)
	require.Len(t, c.Series, 1)
	assert.Equal(t, []float64{1, 2.5}, c.Series[0].Values)

	assert.Equal(t, c, Element(Canonical(c)))
}

func TestElement_TaggedForm(t *testing.T) {
	tests := []struct {
		js   string
		kind domain.Kind
	}{
		{`{"type": "text", "options": {"text": "hi", "x": 1}}`, domain.KindText},
		{`{"type": "image", "options": {"path": "https://example.com/a.png"}}`, domain.KindImage},
		{`{"type": "table", "options": {"rows": [["a"]]}}`, domain.KindTable},
		{`{"type": "shape", "options": {"shape": "star"}}`, domain.KindShape},
		{`{"type": "video", "options": {"link": "https://example.com/v.mp4"}}`, domain.KindMedia},
		{`{"type": "chart", "options": {"type": "pie", "data": [{"values": [1]}]}}`, domain.KindChart},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, Element(parse(t, tt.js)).Kind())
		})
	}
}

func TestElement_Unrecognized(t *testing.T) {
	for _, js := range []string{
		`{"foo": "bar"}`,
		`42`,
		`{"image": {"x": 1}}`,
		`{"chart": {"type": "gantt", "data": [{"values": [1]}]}}`,
		`{"chart": {"type": "bar", "data": []}}`,
		`{"media": {"type": "video"}}`,
		`{"text": []}`,
		`{"table": {"rows": []}}`,
	} {
		t.Run(js, func(t *testing.T) {
			el := Element(parse(t, js))
			u, ok := el.(domain.Unrecognized)
			require.True(t, ok, "expected Unrecognized, got %T", el)
			assert.NotEmpty(t, u.Reason)
		})
	}
}

func TestElement_MediaPoster(t *testing.T) {
	el := Element(parse(t, `{"media": {"type": "online", "link": "https://youtu.be/x", "cover": "data:image/png;base64,AAAA"}}`))

	m, ok := el.(domain.Media)
	require.True(t, ok)
	assert.Equal(t, "online", m.MediaType)
	assert.Equal(t, "data:image/png;base64,AAAA", m.Poster.Data)
	assert.Equal(t, m, Element(Canonical(m)))
}

func TestCanonical_BulletTextKeepsRemainingGlyphs(t *testing.T) {
	el := Element(parse(t, `{"text": ["• • x", {"text": "- y", "options": {"bullet": {"type": "number"}}}], "options": {"bullet": true}}`))

	rt, ok := el.(domain.RichText)
	require.True(t, ok)
	require.Len(t, rt.Paragraphs, 2)
	assert.Equal(t, "• x", rt.Paragraphs[0].Text)
	assert.Equal(t, "y", rt.Paragraphs[1].Text)
	assert.True(t, rt.Paragraphs[1].Numbered)

	again := Element(Canonical(el))
	assert.Equal(t, el, again)
	assert.Equal(t, el, Element(Canonical(again)))
}

func TestCanonical_TableWithoutFill(t *testing.T) {
	el := Element(parse(t, `{"table": {"rows": [["a"]], "fill": "none"}}`))

	tbl, ok := el.(domain.Table)
	require.True(t, ok)
	assert.Empty(t, tbl.Style.Fill)

	assert.Equal(t, tbl, Element(Canonical(tbl)))
}
