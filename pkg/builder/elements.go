package builder

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/aretw0/lectern/pkg/domain"
)

// placeable is the geometry surface shared by every GoPPT shape.
type placeable interface {
	SetPosition(x, y int64) *ppt.BaseShape
	SetSize(w, h int64) *ppt.BaseShape
}

func (r *run) place(s placeable, box domain.Box) {
	f := box.Resolve(r.canvas)
	s.SetPosition(f.X, f.Y)
	s.SetSize(f.W, f.H)
}

func (r *run) text(s *ppt.Slide, e domain.Text) {
	rt := s.CreateRichTextShape()
	r.place(rt, e.Box)
	textBox(rt, e.Style, e.Fill, e.Hyperlink)

	// Lines become paragraphs so that explicit breaks survive.
	for i, line := range strings.Split(e.Text, "\n") {
		para := rt.GetActiveParagraph()
		if i > 0 {
			para = rt.CreateParagraph()
		}
		paragraph(para, line, e.Style, e.Hyperlink)
	}
}

func (r *run) richText(s *ppt.Slide, e domain.RichText) {
	rt := s.CreateRichTextShape()
	r.place(rt, e.Box)
	textBox(rt, e.Style, e.Fill, e.Hyperlink)

	number := 0
	for i, p := range e.Paragraphs {
		para := rt.GetActiveParagraph()
		if i > 0 {
			para = rt.CreateParagraph()
		}
		paragraph(para, p.Text, p.Style, e.Hyperlink)
		para.GetAlignment().Level = p.Indent

		switch {
		case p.Numbered:
			number++
			b := ppt.NewBullet()
			b.SetNumericBullet(ppt.NumFormatArabicPeriod, number)
			para.SetBullet(b)
		case p.Bullet:
			number = 0
			b := ppt.NewBullet()
			b.SetCharBullet("•", fontOr(p.Style.FontFace))
			para.SetBullet(b)
		default:
			number = 0
		}
	}
}

func textBox(rt *ppt.RichTextShape, style domain.TextStyle, fill, link string) {
	rt.SetWordWrap(true)
	rt.SetTextAnchor(anchor(style.Valign))
	if fill != "" {
		rt.GetFill().SetSolid(ppt.NewColor(fill))
	}
	if h := hyperlink(link); h != nil {
		rt.SetHyperlink(h)
	}
}

func paragraph(para *ppt.Paragraph, text string, style domain.TextStyle, link string) {
	para.GetAlignment().SetHorizontal(horizontal(style.Align))
	tr := para.CreateTextRun(text)
	font(tr.GetFont(), style)
	if h := hyperlink(link); h != nil {
		tr.SetHyperlink(h)
	}
}

func font(f *ppt.Font, style domain.TextStyle) {
	f.SetName(fontOr(style.FontFace))
	if style.FontSize > 0 {
		f.SetSize(int(math.Round(style.FontSize)))
	}
	if style.Color != "" {
		f.SetColor(ppt.NewColor(style.Color))
	}
	f.SetBold(style.Bold)
	f.SetItalic(style.Italic)
	f.SetStrikethrough(style.Strike)
	if style.Underline {
		f.SetUnderline(ppt.UnderlineSingle)
	}
}

func fontOr(face string) string {
	if face == "" {
		return "Arial"
	}
	return face
}

func horizontal(align string) ppt.HorizontalAlignment {
	switch align {
	case "center":
		return ppt.HorizontalCenter
	case "right":
		return ppt.HorizontalRight
	case "justify":
		return ppt.HorizontalJustify
	}
	return ppt.HorizontalLeft
}

func anchor(valign string) ppt.TextAnchorType {
	switch valign {
	case "middle":
		return ppt.TextAnchorMiddle
	case "bottom":
		return ppt.TextAnchorBottom
	}
	return ppt.TextAnchorTop
}

// hyperlink returns nil for anything but http, https and mailto targets.
func hyperlink(link string) *ppt.Hyperlink {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return ppt.NewHyperlink(link)
	}
	return nil
}

func (r *run) table(s *ppt.Slide, e domain.Table) error {
	cols := e.Columns()
	if len(e.Rows) == 0 || cols == 0 {
		return &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: table has no cells", domain.ErrElementRender)}
	}
	ts := s.CreateTableShape(len(e.Rows), cols)
	r.place(ts, e.Box)

	base := domain.TextStyle{
		FontSize: e.Style.FontSize,
		FontFace: e.Style.FontFace,
		Color:    e.Style.Color,
	}
	border := tableBorder(e.Style)

	for i, row := range e.Rows {
		for j := 0; j < cols; j++ {
			cell := ts.GetCell(i, j)
			if cell == nil {
				continue
			}
			var c domain.TableCell
			if j < len(row) {
				c = row[j]
			}

			style := base
			style.Bold = c.Bold
			style.Align = c.Align
			if c.Color != "" {
				style.Color = c.Color
			}
			if paras := cell.GetParagraphs(); len(paras) > 0 {
				paragraph(paras[0], c.Text, style, "")
			} else {
				cell.SetText(c.Text)
			}

			fill := e.Style.Fill
			if c.Fill != "" {
				fill = c.Fill
			}
			if fill != "" {
				cell.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(fill)))
			}

			if border != nil {
				b := cell.GetBorders()
				for _, side := range []**ppt.Border{&b.Top, &b.Bottom, &b.Left, &b.Right} {
					cp := *border
					*side = &cp
				}
			}
		}
	}
	return nil
}

func tableBorder(style domain.TableStyle) *ppt.Border {
	var bs ppt.BorderStyle
	switch style.BorderType {
	case "none":
		return nil
	case "dash":
		bs = ppt.BorderDash
	case "dot":
		bs = ppt.BorderDot
	default:
		bs = ppt.BorderSolid
	}
	return &ppt.Border{
		Style: bs,
		Width: int(ppt.Point(style.BorderPt)),
		Color: ppt.NewColor(colorOr(style.BorderColor, "000000")),
	}
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}

func (r *run) shape(s *ppt.Slide, e domain.Shape) {
	if e.Geometry == "line" {
		ls := s.CreateLineShape()
		r.place(ls, e.Box)
		ls.SetLineColor(ppt.NewColor(colorOr(e.Line.Color, "000000")))
		ls.SetLineWidth(lineWidth(e.Line.Width))
		ls.SetLineStyle(ppt.BorderSolid)
		if e.Rotate != 0 {
			ls.SetRotation(e.Rotate)
		}
		return
	}

	as := s.CreateAutoShape()
	r.place(as, e.Box)
	as.SetAutoShapeType(ppt.AutoShapeType(e.Geometry))
	if e.Rotate != 0 {
		as.SetRotation(e.Rotate)
	}
	if e.Fill != "" {
		as.GetFill().SetSolid(ppt.NewColor(e.Fill))
	}
	if e.Line.Width > 0 {
		b := as.GetBorder()
		b.Style = ppt.BorderSolid
		b.Width = int(ppt.Point(e.Line.Width))
		b.Color = ppt.NewColor(colorOr(e.Line.Color, "000000"))
	}
	// AutoShape text carries no run formatting of its own.
	if e.Text != "" {
		as.SetText(e.Text)
	}
	if h := hyperlink(e.Hyperlink); h != nil {
		as.SetHyperlink(h)
	}
}

func lineWidth(pt float64) int {
	w := int(math.Round(pt))
	if w < 1 {
		return 1
	}
	return w
}
