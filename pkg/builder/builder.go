package builder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/aretw0/lectern/internal/logging"
	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

// DefaultCreator is written as the document creator when a request has no author.
const DefaultCreator = "Lectern"

// Recorder observes per-element outcomes.
type Recorder interface {
	ElementRendered(kind domain.Kind)
	ElementSkipped(kind domain.Kind)
}

type nopRecorder struct{}

func (nopRecorder) ElementRendered(domain.Kind) {}
func (nopRecorder) ElementSkipped(domain.Kind)  {}

// Builder renders PresentationRequests. It holds no per-request state and is
// safe for concurrent use.
type Builder struct {
	images   ports.ImageSource
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Builder.
type Option func(*Builder)

// WithImageSource sets the resolver used for image, background and poster references.
// Without one, image elements are skipped.
func WithImageSource(src ports.ImageSource) Option {
	return func(b *Builder) {
		b.images = src
	}
}

// WithLogger sets the logger used for skipped-element warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithRecorder sets the element outcome observer.
func WithRecorder(r Recorder) Option {
	return func(b *Builder) {
		b.recorder = r
	}
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.recorder == nil {
		b.recorder = nopRecorder{}
	}
	return b
}

// Build renders req into an encoded artifact.
//
// Exactly one slide is emitted per SlideSpec, in order. Elements that cannot be
// rendered are logged and skipped. Any failure of the rendering library itself
// is returned as a BuildError and no artifact is produced.
func (b *Builder) Build(ctx context.Context, req *domain.PresentationRequest) (art *domain.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = domain.BuildFailure(fmt.Errorf("renderer panic: %v", r))
		}
	}()

	p, skipped := b.compose(ctx, req)
	if err := p.Validate(); err != nil {
		return nil, domain.BuildFailure(err)
	}

	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		return nil, domain.BuildFailure(fmt.Errorf("encode: %w", err))
	}

	return &domain.Artifact{
		Data:     buf.Bytes(),
		MIMEType: domain.PPTXMIMEType,
		Filename: Filename(req.Title),
		Slides:   p.GetSlideCount(),
		Skipped:  skipped,
	}, nil
}

// compose lays out the deck in memory and reports how many elements were skipped.
func (b *Builder) compose(ctx context.Context, req *domain.PresentationRequest) (*ppt.Presentation, int) {
	logger := logging.FromContext(ctx, b.logger)
	for _, w := range req.Warnings {
		logger.Warn("Request normalized with warning", "warning", w)
	}

	p := ppt.New()
	applyMetadata(p, req)
	canvas, ok := applyLayout(p, req.Layout)
	if !ok {
		logger.Warn("Unknown layout, using default", "layout", req.Layout)
	}

	r := &run{
		Builder: b,
		ctx:     ctx,
		logger:  logger,
		canvas:  canvas,
	}

	if len(req.Slides) == 0 {
		titleSlide(p.GetActiveSlide(), req.Title, canvas)
	}
	for i, spec := range req.Slides {
		s := p.GetActiveSlide()
		if i > 0 {
			s = p.CreateSlide()
		}
		r.slide(i, s, spec)
	}
	return p, r.skipped
}

func applyMetadata(p *ppt.Presentation, req *domain.PresentationRequest) {
	props := p.GetDocumentProperties()
	props.Creator = DefaultCreator
	props.LastModifiedBy = DefaultCreator
	if req.Author != "" {
		props.Creator = req.Author
		props.LastModifiedBy = req.Author
	}
	props.Title = req.Title
	props.Company = req.Company
	props.Subject = req.Subject
}

var layouts = map[string]string{
	"":       ppt.LayoutScreen16x9,
	"16X9":   ppt.LayoutScreen16x9,
	"WIDE":   ppt.LayoutScreen16x9,
	"16X10":  ppt.LayoutScreen16x10,
	"4X3":    ppt.LayoutScreen4x3,
	"A4":     ppt.LayoutA4,
	"LETTER": ppt.LayoutLetter,
}

// applyLayout sets the slide size and returns the canvas. Unknown names fall
// back to 16:9 and report false.
func applyLayout(p *ppt.Presentation, name string) (domain.Canvas, bool) {
	key := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "LAYOUT_")
	layout, ok := layouts[key]
	if !ok {
		layout = ppt.LayoutScreen16x9
	}
	l := p.GetLayout()
	l.SetLayout(layout)
	return domain.Canvas{CX: l.CX, CY: l.CY}, ok
}

func titleSlide(s *ppt.Slide, title string, canvas domain.Canvas) {
	if title == "" {
		return
	}
	rt := s.CreateRichTextShape()
	rt.SetName("Title")
	rt.SetPosition(ppt.Inch(0.5), canvas.CY*2/5)
	rt.SetSize(canvas.CX-ppt.Inch(1), ppt.Inch(1.5))
	rt.SetWordWrap(true)
	rt.SetTextAnchor(ppt.TextAnchorMiddle)

	para := rt.GetActiveParagraph()
	para.GetAlignment().SetHorizontal(ppt.HorizontalCenter)
	run := para.CreateTextRun(title)
	run.GetFont().SetSize(40).SetBold(true).SetName("Arial").SetColor(ppt.ColorBlack)
}

// run carries the state of one Build call.
type run struct {
	*Builder
	ctx     context.Context
	logger  *slog.Logger
	canvas  domain.Canvas
	skipped int
}

func (r *run) slide(index int, s *ppt.Slide, spec domain.SlideSpec) {
	// The encoder keeps no slide names, so the title only labels log records.
	logger := r.logger.With("slide", index+1)
	if spec.Title != "" {
		logger = logger.With("slide_title", spec.Title)
	}

	if spec.Notes != "" {
		s.SetNotes(spec.Notes)
	}
	if spec.Background != nil {
		if err := r.background(s, *spec.Background); err != nil {
			logger.Warn("Background skipped", "kind", domain.KindOf(err), "err", err)
		}
	}

	for j, el := range spec.Elements {
		if err := r.element(s, el); err != nil {
			r.skipped++
			r.recorder.ElementSkipped(el.Kind())
			logger.Warn("Element skipped", "element", j+1, "type", el.Kind(), "kind", domain.KindOf(err), "err", err)
			continue
		}
		r.recorder.ElementRendered(el.Kind())
	}
}

func (r *run) element(s *ppt.Slide, el domain.Element) error {
	switch e := el.(type) {
	case domain.Text:
		r.text(s, e)
	case domain.RichText:
		r.richText(s, e)
	case domain.Table:
		return r.table(s, e)
	case domain.Image:
		return r.image(s, e)
	case domain.Shape:
		if e.Geometry == "rect" && e.Text == "" && r.fullBleed(s, e.Box, e.Fill) {
			return nil
		}
		r.shape(s, e)
	case domain.Rect:
		if r.fullBleed(s, e.Box, e.Fill) {
			return nil
		}
		r.shape(s, domain.Shape{Box: e.Box, Geometry: "rect", Fill: e.Fill, Line: e.Line})
	case domain.Chart:
		return r.chart(s, e)
	case domain.Media:
		return r.media(s, e)
	case domain.Unrecognized:
		return &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: %s", domain.ErrElementRender, e.Reason)}
	default:
		return &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: unsupported element %T", domain.ErrElementRender, el)}
	}
	return nil
}

// fullBleed turns a rectangle covering the whole canvas into the slide background.
func (r *run) fullBleed(s *ppt.Slide, box domain.Box, fill string) bool {
	if !box.Resolve(r.canvas).Covers(r.canvas) {
		return false
	}
	if fill != "" {
		s.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(fill)))
	}
	return true
}

func (r *run) background(s *ppt.Slide, bg domain.Background) error {
	if bg.Color != "" {
		s.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(bg.Color)))
		return nil
	}
	if bg.Image == nil {
		return nil
	}
	img, err := r.fetch(bg.Image.Source())
	if err != nil {
		return err
	}
	ds := s.CreateDrawingShape()
	ds.SetName("Background")
	ds.SetImageData(img.Data, img.MIMEType)
	ds.SetPosition(0, 0)
	ds.SetSize(r.canvas.CX, r.canvas.CY)
	return nil
}
