package builder

import (
	"errors"
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/aretw0/lectern/pkg/ports"
)

var errNoImageSource = errors.New("no image source configured")

func (r *run) fetch(ref string) (*ports.Image, error) {
	if ref == "" {
		return nil, &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: empty image reference", domain.ErrElementRender)}
	}
	if r.images == nil {
		return nil, domain.FetchFailure(ref, errNoImageSource)
	}
	img, err := r.images.Fetch(r.ctx, ref)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.FetchFailure(ref, err)
	}
	if !SupportedImage(img.MIMEType) {
		return nil, &domain.Error{Kind: domain.KindElementRender, Err: fmt.Errorf("%w: unsupported image type %q", domain.ErrElementRender, img.MIMEType)}
	}
	return img, nil
}

// SupportedImage reports whether a picture of the given MIME type can be embedded.
func SupportedImage(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/bmp", "image/svg+xml":
		return true
	}
	return false
}

func (r *run) image(s *ppt.Slide, e domain.Image) error {
	img, err := r.fetch(e.Source.Source())
	if err != nil {
		return err
	}
	ds := s.CreateDrawingShape()
	ds.SetImageData(img.Data, img.MIMEType)
	r.place(ds, e.Box)
	if e.AltText != "" {
		ds.SetDescription(e.AltText)
	}
	if h := hyperlink(e.Hyperlink); h != nil {
		ds.SetHyperlink(h)
	}
	return nil
}

// media draws a poster frame linked to the clip. Without a usable poster a
// dark placeholder carrying the link is drawn instead.
func (r *run) media(s *ppt.Slide, e domain.Media) error {
	link := hyperlink(e.Link)

	if !e.Poster.IsZero() {
		img, err := r.fetch(e.Poster.Source())
		if err == nil {
			ds := s.CreateDrawingShape()
			ds.SetImageData(img.Data, img.MIMEType)
			ds.SetName(mediaName(e))
			ds.SetDescription(e.Link)
			r.place(ds, e.Box)
			if link != nil {
				ds.SetHyperlink(link)
			}
			return nil
		}
		r.logger.Debug("Media poster unavailable, drawing placeholder", "link", e.Link, "err", err)
	}

	as := s.CreateAutoShape()
	as.SetAutoShapeType(ppt.AutoShapeRectangle)
	as.SetName(mediaName(e))
	as.GetFill().SetSolid(ppt.NewColor(mediaPlaceholderFill))
	as.SetText(mediaLabel(e.MediaType))
	r.place(as, e.Box)
	if link != nil {
		as.SetHyperlink(link)
	}
	return nil
}

const mediaPlaceholderFill = "333333"

func mediaName(e domain.Media) string {
	return "Media: " + e.MediaType
}

func mediaLabel(kind string) string {
	if kind == "audio" {
		return "♪ Audio"
	}
	return "▶ Video"
}
