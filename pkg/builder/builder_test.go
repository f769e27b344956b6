package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/normalize"
	"github.com/aretw0/lectern/pkg/ports"
)

type fakeImages map[string]*ports.Image

func (f fakeImages) Fetch(_ context.Context, ref string) (*ports.Image, error) {
	if img, ok := f[ref]; ok {
		return img, nil
	}
	return nil, errors.New("connection refused")
}

type countingRecorder struct {
	rendered map[domain.Kind]int
	skipped  map[domain.Kind]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{rendered: map[domain.Kind]int{}, skipped: map[domain.Kind]int{}}
}

func (c *countingRecorder) ElementRendered(k domain.Kind) { c.rendered[k]++ }
func (c *countingRecorder) ElementSkipped(k domain.Kind)  { c.skipped[k]++ }

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func request(elements ...domain.Element) *domain.PresentationRequest {
	return &domain.PresentationRequest{
		Title:  "Test",
		Slides: []domain.SlideSpec{{Elements: elements}},
	}
}

func text(s string) domain.Text {
	return normalize.Element(s).(domain.Text)
}

func reopen(t *testing.T, art *domain.Artifact) *ppt.Presentation {
	t.Helper()
	p, err := ppt.ReadFrom(bytes.NewReader(art.Data), int64(len(art.Data)))
	require.NoError(t, err)
	return p
}

func TestBuild_HelloText(t *testing.T) {
	b := New()
	art, err := b.Build(context.Background(), request(text("Hello")))
	require.NoError(t, err)

	assert.Equal(t, domain.PPTXMIMEType, art.MIMEType)
	assert.Equal(t, "Test.pptx", art.Filename)
	assert.Equal(t, 1, art.Slides)
	assert.Zero(t, art.Skipped)

	p := reopen(t, art)
	require.Equal(t, 1, p.GetSlideCount())
	s, err := p.GetSlide(0)
	require.NoError(t, err)
	assert.Contains(t, s.ExtractText(), "Hello")
}

func TestBuild_OneSlidePerSpec(t *testing.T) {
	req := &domain.PresentationRequest{
		Slides: []domain.SlideSpec{
			{Title: "One"},
			{Title: "Two", Elements: []domain.Element{domain.Unrecognized{Reason: "bad"}}},
			{Title: "Three", Notes: "remember"},
		},
	}

	art, err := New().Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, art.Slides)
	assert.Equal(t, 1, art.Skipped)

	p := reopen(t, art)
	require.Equal(t, 3, p.GetSlideCount())
	for i := range 3 {
		s, err := p.GetSlide(i)
		require.NoError(t, err)
		assert.Empty(t, s.GetShapes(), "slide titles are not drawn")
	}
	s, _ := p.GetSlide(2)
	assert.Equal(t, "remember", s.GetNotes())
}

func TestBuild_EmptyDeckGetsTitleSlide(t *testing.T) {
	art, err := New().Build(context.Background(), &domain.PresentationRequest{Title: "Quarterly"})
	require.NoError(t, err)
	assert.Equal(t, 1, art.Slides)

	s, err := reopen(t, art).GetSlide(0)
	require.NoError(t, err)
	assert.Contains(t, s.ExtractText(), "Quarterly")
}

func TestBuild_FullBleedRectBecomesBackground(t *testing.T) {
	full := domain.Box{X: domain.Percent(0), Y: domain.Percent(0), W: domain.Percent(100), H: domain.Percent(100)}
	req := request(domain.Rect{Box: full, Fill: "FF0000"})

	p, skipped := New().compose(context.Background(), req)
	assert.Zero(t, skipped)

	s, _ := p.GetSlide(0)
	assert.Empty(t, s.GetShapes())
	require.NotNil(t, s.GetBackground())
	assert.Equal(t, ppt.FillSolid, s.GetBackground().Type)
	assert.Equal(t, "FFFF0000", s.GetBackground().Color.ARGB)
}

func TestBuild_FullBleedInInches(t *testing.T) {
	// 13.333in x 7.5in covers a 16:9 canvas.
	full := domain.Box{X: domain.Inches(0), Y: domain.Inches(0), W: domain.Inches(13.34), H: domain.Inches(7.5)}
	p, _ := New().compose(context.Background(), request(domain.Rect{Box: full, Fill: "00FF00"}))

	s, _ := p.GetSlide(0)
	assert.Empty(t, s.GetShapes())
	assert.Equal(t, "FF00FF00", s.GetBackground().Color.ARGB)
}

func TestBuild_PartialRectIsShape(t *testing.T) {
	box := domain.Box{X: domain.Percent(0), Y: domain.Percent(0), W: domain.Percent(50), H: domain.Percent(100)}
	p, _ := New().compose(context.Background(), request(domain.Rect{Box: box, Fill: "FF0000"}))

	s, _ := p.GetSlide(0)
	require.Len(t, s.GetShapes(), 1)
	as, ok := s.GetShapes()[0].(*ppt.AutoShape)
	require.True(t, ok)
	assert.Equal(t, int64(12192000/2), as.GetWidth())
	assert.Equal(t, int64(6858000), as.GetHeight())
}

func TestBuild_SlideBackgroundColor(t *testing.T) {
	req := &domain.PresentationRequest{Slides: []domain.SlideSpec{{Background: &domain.Background{Color: "FF0000"}}}}

	p, _ := New().compose(context.Background(), req)
	s, _ := p.GetSlide(0)
	assert.Empty(t, s.GetShapes())
	assert.Equal(t, "FFFF0000", s.GetBackground().Color.ARGB)
}

func TestBuild_UnrecognizedIsIsolated(t *testing.T) {
	rec := newCountingRecorder()
	b := New(WithRecorder(rec))

	art, err := b.Build(context.Background(), request(
		text("before"),
		domain.Unrecognized{Reason: "no dispatch case matched"},
		text("after"),
	))
	require.NoError(t, err)
	assert.Equal(t, 1, art.Skipped)
	assert.Equal(t, 2, rec.rendered[domain.KindText])
	assert.Equal(t, 1, rec.skipped[domain.KindUnrecognized])

	s, _ := reopen(t, art).GetSlide(0)
	got := s.ExtractText()
	assert.Contains(t, got, "before")
	assert.Contains(t, got, "after")
}

func TestBuild_SkippedElementLogRecord(t *testing.T) {
	var buf bytes.Buffer
	b := New(WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	_, err := b.Build(context.Background(), &domain.PresentationRequest{
		Slides: []domain.SlideSpec{{Title: "Intro", Elements: []domain.Element{domain.Unrecognized{Reason: "bad"}}}},
	})
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Element skipped", rec["msg"])
	assert.Equal(t, "Intro", rec["slide_title"])
	assert.Contains(t, rec["err"], "bad")
	assert.NotContains(t, rec, "error")
}

func TestBuild_ImageFetchFailureIsIsolated(t *testing.T) {
	pngData := testPNG(t)
	b := New(WithImageSource(fakeImages{
		"https://example.com/ok.png": {Data: pngData, MIMEType: "image/png"},
		"https://example.com/x.webp": {Data: []byte("RIFF"), MIMEType: "image/webp"},
	}))

	ok := normalize.Element(map[string]any{"image": map[string]any{"path": "https://example.com/ok.png"}})
	missing := normalize.Element(map[string]any{"image": map[string]any{"path": "https://example.com/missing.png"}})
	webp := normalize.Element(map[string]any{"image": map[string]any{"path": "https://example.com/x.webp"}})

	art, err := b.Build(context.Background(), request(ok, missing, webp, text("caption")))
	require.NoError(t, err, "a failed fetch must not abort the deck")
	assert.Equal(t, 2, art.Skipped)

	s, _ := reopen(t, art).GetSlide(0)
	var pictures int
	for _, sh := range s.GetShapes() {
		if _, ok := sh.(*ppt.DrawingShape); ok {
			pictures++
		}
	}
	assert.Equal(t, 1, pictures)
}

func TestBuild_NoImageSourceSkipsImages(t *testing.T) {
	img := normalize.Element(map[string]any{"image": map[string]any{"path": "https://example.com/a.png"}})
	art, err := New().Build(context.Background(), request(img))
	require.NoError(t, err)
	assert.Equal(t, 1, art.Skipped)
}

func TestBuild_PercentGeometry(t *testing.T) {
	el := domain.Text{
		Box:   domain.Box{X: domain.Percent(50), Y: domain.Percent(25), W: domain.Percent(25), H: domain.Inches(1)},
		Text:  "x",
		Style: normalize.DefaultTextStyle,
	}
	req := request(el)
	req.Layout = domain.Layout4x3

	p, _ := New().compose(context.Background(), req)
	s, _ := p.GetSlide(0)
	require.Len(t, s.GetShapes(), 1)
	sh := s.GetShapes()[0]
	assert.Equal(t, int64(9144000/2), sh.GetOffsetX())
	assert.Equal(t, int64(6858000/4), sh.GetOffsetY())
	assert.Equal(t, int64(9144000/4), sh.GetWidth())
	assert.Equal(t, int64(914400), sh.GetHeight())
}

func TestBuild_Layouts(t *testing.T) {
	tests := []struct {
		layout string
		cx     int64
		known  bool
	}{
		{"", 12192000, true},
		{"LAYOUT_16x9", 12192000, true},
		{"layout_wide", 12192000, true},
		{"LAYOUT_4x3", 9144000, true},
		{"16x10", 10972800, true},
		{"LAYOUT_A4", 9906000, true},
		{"LAYOUT_POSTER", 12192000, false},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			p := ppt.New()
			canvas, ok := applyLayout(p, tt.layout)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.cx, canvas.CX)
			assert.Equal(t, int64(6858000), canvas.CY)
		})
	}
}

func TestBuild_Metadata(t *testing.T) {
	req := &domain.PresentationRequest{Title: "Deck", Company: "Acme", Subject: "Ops"}
	p, _ := New().compose(context.Background(), req)
	props := p.GetDocumentProperties()
	assert.Equal(t, "Deck", props.Title)
	assert.Equal(t, DefaultCreator, props.Creator)
	assert.Equal(t, "Acme", props.Company)

	req.Author = "Ada"
	p, _ = New().compose(context.Background(), req)
	assert.Equal(t, "Ada", p.GetDocumentProperties().Creator)
}

func TestBuild_RichTextBullets(t *testing.T) {
	el := normalize.Element(map[string]any{
		"text": []any{"• one", "two", map[string]any{"text": "three", "options": map[string]any{"bullet": map[string]any{"type": "number"}}}},
		"options": map[string]any{"bullet": true},
	})
	p, _ := New().compose(context.Background(), request(el))
	s, _ := p.GetSlide(0)
	rt, ok := s.GetShapes()[0].(*ppt.RichTextShape)
	require.True(t, ok)

	paras := rt.GetParagraphs()
	require.Len(t, paras, 3)
	for _, para := range paras {
		assert.NotNil(t, para.GetBullet())
	}
	first := paras[0].GetElements()[0].(*ppt.TextRun)
	assert.Equal(t, "one", first.GetText())
}

func TestBuild_MultilineTextSplitsParagraphs(t *testing.T) {
	p, _ := New().compose(context.Background(), request(text("line one\nline two")))
	s, _ := p.GetSlide(0)
	rt := s.GetShapes()[0].(*ppt.RichTextShape)
	assert.Len(t, rt.GetParagraphs(), 2)
}

func TestBuild_TableAndChart(t *testing.T) {
	tbl := normalize.Element(map[string]any{"table": map[string]any{"rows": []any{
		[]any{"Region", "Revenue"},
		[]any{"North"},
	}}})
	chart := normalize.Element(map[string]any{"chart": map[string]any{
		"type":  "pie",
		"title": "Share",
		"data":  []any{map[string]any{"name": "S", "labels": []any{"a", "a"}, "values": []any{1.0, 2.0}}},
	}})

	art, err := New().Build(context.Background(), request(tbl, chart))
	require.NoError(t, err)
	assert.Zero(t, art.Skipped)

	s, _ := reopen(t, art).GetSlide(0)
	var table *ppt.TableShape
	for _, sh := range s.GetShapes() {
		if ts, ok := sh.(*ppt.TableShape); ok {
			table = ts
		}
	}
	require.NotNil(t, table)
	assert.Equal(t, 2, table.GetNumRows())
	assert.Equal(t, 2, table.GetNumCols())
}

func TestBuild_MediaPlaceholder(t *testing.T) {
	el := normalize.Element(map[string]any{"media": map[string]any{"type": "video", "link": "https://example.com/v.mp4"}})
	p, skipped := New().compose(context.Background(), request(el))
	assert.Zero(t, skipped)

	s, _ := p.GetSlide(0)
	as, ok := s.GetShapes()[0].(*ppt.AutoShape)
	require.True(t, ok)
	assert.True(t, strings.Contains(as.GetText(), "Video"))
	require.NotNil(t, as.GetHyperlink())
	assert.Equal(t, "https://example.com/v.mp4", as.GetHyperlink().URL)
}

func TestBuild_RejectsUnsafeHyperlinks(t *testing.T) {
	assert.Nil(t, hyperlink("javascript:alert(1)"))
	assert.Nil(t, hyperlink("file:///etc/passwd"))
	assert.NotNil(t, hyperlink("https://example.com"))
	assert.NotNil(t, hyperlink("mailto:a@example.com"))
}

func TestSeriesLabels(t *testing.T) {
	got := seriesLabels(domain.ChartSeries{Labels: []string{"a", "a", ""}, Values: []float64{1, 2, 3, 4}})
	assert.Equal(t, []string{"a", "a (2)", "3", "4"}, got)
}
