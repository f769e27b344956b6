package normalize

import (
	"fmt"
	"strings"

	"github.com/aretw0/lectern/pkg/domain"
)

// Request normalizes a decoded JSON document into a PresentationRequest.
//
// The document must be an object. A missing or null slides field yields an
// empty deck with a warning; any other non-array slides value is rejected.
// Problems below the top level never fail the request: they are recorded in
// Warnings or surface as domain.Unrecognized elements.
func Request(raw any) (*domain.PresentationRequest, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, domain.Invalid("request body must be a JSON object, got %s", jsonType(raw))
	}

	req := &domain.PresentationRequest{}
	req.Title = metaString(req, m, "title")
	req.Author = metaString(req, m, "author")
	req.Company = metaString(req, m, "company")
	req.Subject = metaString(req, m, "subject")
	req.Layout = metaString(req, m, "layout")

	switch slides := m["slides"].(type) {
	case nil:
		req.Warnings = append(req.Warnings, "slides missing; producing an empty deck")
	case []any:
		req.Slides = make([]domain.SlideSpec, 0, len(slides))
		for i, s := range slides {
			req.Slides = append(req.Slides, slide(req, i, s))
		}
	default:
		return nil, domain.Invalid("slides must be an array, got %s", jsonType(slides))
	}

	return req, nil
}

func metaString(req *domain.PresentationRequest, m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if _, isString := v.(string); !isString {
		req.Warnings = append(req.Warnings, fmt.Sprintf("%s should be a string, got %s", key, jsonType(v)))
	}
	return strings.TrimSpace(toString(v))
}

// slide always returns a SlideSpec so that slide indices stay aligned with the input.
func slide(req *domain.PresentationRequest, index int, raw any) domain.SlideSpec {
	m, ok := raw.(map[string]any)
	if !ok {
		req.Warnings = append(req.Warnings, fmt.Sprintf("slide %d is a %s, not an object; emitting a blank slide", index+1, jsonType(raw)))
		return domain.SlideSpec{}
	}

	spec := domain.SlideSpec{
		Title: strings.TrimSpace(toString(m["title"])),
		Notes: toString(m["notes"]),
	}

	bg := m["background"]
	if bg == nil {
		bg = m["bkgd"]
	}
	spec.Background = background(bg)

	objects, present := m["objects"]
	if !present || objects == nil {
		objects = m["elements"]
	}
	switch list := objects.(type) {
	case nil:
	case []any:
		spec.Elements = make([]domain.Element, 0, len(list))
		for _, o := range list {
			spec.Elements = append(spec.Elements, Element(o))
		}
	default:
		req.Warnings = append(req.Warnings, fmt.Sprintf("slide %d objects is a %s, not an array; ignoring it", index+1, jsonType(list)))
	}
	return spec
}

// background reads "RRGGBB", {color | fill}, or an image reference.
func background(v any) *domain.Background {
	switch b := v.(type) {
	case nil:
		return nil
	case string:
		if c := toColor(b, ""); c != "" {
			return &domain.Background{Color: c}
		}
		ref := imageRef(b)
		if ref.IsZero() {
			return nil
		}
		return &domain.Background{Image: &ref}
	case map[string]any:
		if c := toColor(b["color"], ""); c != "" {
			return &domain.Background{Color: c}
		}
		if c := fillColor(b["fill"], ""); c != "" {
			return &domain.Background{Color: c}
		}
		ref := imageRef(b)
		if ref.IsZero() {
			return nil
		}
		return &domain.Background{Image: &ref}
	}
	return nil
}
