package normalize

import (
	"testing"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_SlidesMustBeArray(t *testing.T) {
	_, err := Request(parse(t, `{"slides": "nope"}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, domain.KindInputValidation, domain.KindOf(err))
}

func TestRequest_BodyMustBeObject(t *testing.T) {
	_, err := Request(parse(t, `[1, 2]`))
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestRequest_MissingSlidesIsEmptyDeck(t *testing.T) {
	for _, js := range []string{`{"title": "Empty"}`, `{"slides": null}`} {
		req, err := Request(parse(t, js))
		require.NoError(t, err)
		assert.Empty(t, req.Slides)
		assert.NotEmpty(t, req.Warnings)
	}
}

func TestRequest_Metadata(t *testing.T) {
	req, err := Request(parse(t, `{"title": " Q3 Review ", "author": "Ops", "layout": "LAYOUT_4x3", "company": 7, "slides": []}`))
	require.NoError(t, err)

	assert.Equal(t, "Q3 Review", req.Title)
	assert.Equal(t, "Ops", req.Author)
	assert.Equal(t, "LAYOUT_4x3", req.Layout)
	assert.Equal(t, "7", req.Company)
	assert.Len(t, req.Warnings, 1, "non-string company is tolerated with a warning")
	assert.NotNil(t, req.Slides)
}

func TestRequest_OneSpecPerSlide(t *testing.T) {
	req, err := Request(parse(t, `{"slides": [
		{"title": "Intro", "objects": [{"text": {"text": "Hello"}}]},
		"garbage",
		{"elements": [{"unknown": true}, {"text": "after"}], "notes": "say hi"},
		{"objects": {"not": "an array"}}
	]}`))
	require.NoError(t, err)

	require.Len(t, req.Slides, 4)
	assert.Equal(t, "Intro", req.Slides[0].Title)
	require.Len(t, req.Slides[0].Elements, 1)
	assert.Equal(t, "Hello", req.Slides[0].Elements[0].(domain.Text).Text)

	assert.Empty(t, req.Slides[1].Elements)

	require.Len(t, req.Slides[2].Elements, 2)
	assert.Equal(t, domain.KindUnrecognized, req.Slides[2].Elements[0].Kind())
	assert.Equal(t, domain.KindText, req.Slides[2].Elements[1].Kind(), "an unrecognized element must not affect its neighbours")
	assert.Equal(t, "say hi", req.Slides[2].Notes)

	assert.Empty(t, req.Slides[3].Elements)
	assert.Len(t, req.Warnings, 2)
}

func TestRequest_Background(t *testing.T) {
	tests := []struct {
		js   string
		want *domain.Background
	}{
		{`{"background": "ff0000"}`, &domain.Background{Color: "FF0000"}},
		{`{"background": {"color": "#00FF00"}}`, &domain.Background{Color: "00FF00"}},
		{`{"bkgd": {"fill": {"color": "0000FF"}}}`, &domain.Background{Color: "0000FF"}},
		{`{"background": {"path": "https://example.com/bg.png"}}`, &domain.Background{Image: &domain.ImageRef{Path: "https://example.com/bg.png"}}},
		{`{"background": "data:image/png;base64,AAAA"}`, &domain.Background{Image: &domain.ImageRef{Data: "data:image/png;base64,AAAA"}}},
		{`{"background": {}}`, nil},
		{`{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.js, func(t *testing.T) {
			req, err := Request(parse(t, `{"slides": [`+tt.js+`]}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Slides[0].Background)
		})
	}
}
