package domain

// Kind names an element variant.
type Kind string

const (
	KindText         Kind = "text"
	KindRichText     Kind = "richtext"
	KindTable        Kind = "table"
	KindImage        Kind = "image"
	KindShape        Kind = "shape"
	KindRect         Kind = "rect"
	KindChart        Kind = "chart"
	KindMedia        Kind = "media"
	KindUnrecognized Kind = "unrecognized"
)

// Element is the canonical form of one slide object.
// The set of implementations is closed to this package.
type Element interface {
	Kind() Kind
	element()
}

// TextStyle holds run and paragraph formatting.
type TextStyle struct {
	FontSize  float64 `json:"fontSize"`
	FontFace  string  `json:"fontFace"`
	Color     string  `json:"color"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Strike    bool    `json:"strike,omitempty"`
	Align     string  `json:"align"`
	Valign    string  `json:"valign"`
}

// Line is a shape outline.
type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Text is a single block of uniformly styled text.
type Text struct {
	Box       Box
	Text      string
	Style     TextStyle
	Fill      string
	Hyperlink string
}

// Paragraph is one fragment of a RichText list.
type Paragraph struct {
	Text     string
	Style    TextStyle
	Bullet   bool
	Numbered bool
	Indent   int
}

// RichText is an ordered list of paragraphs sharing one text box.
type RichText struct {
	Box        Box
	Paragraphs []Paragraph
	Style      TextStyle
	Fill       string
	Hyperlink  string
}

// TableCell is one cell of a Table.
type TableCell struct {
	Text  string
	Bold  bool
	Color string
	Fill  string
	Align string
}

// TableStyle holds table-wide formatting.
type TableStyle struct {
	BorderType  string
	BorderColor string
	BorderPt    float64
	Fill        string
	FontSize    float64
	FontFace    string
	Color       string
}

// Table is a grid; rows and columns keep input order.
type Table struct {
	Box   Box
	Rows  [][]TableCell
	Style TableStyle
}

// Columns returns the width of the widest row.
func (t Table) Columns() int {
	n := 0
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// Image is a picture drawn from an ImageRef.
type Image struct {
	Box       Box
	Source    ImageRef
	AltText   string
	Hyperlink string
}

// Shape is a preset geometry with optional text.
type Shape struct {
	Box       Box
	Geometry  string
	Fill      string
	Line      Line
	Text      string
	Style     TextStyle
	Rotate    int
	Hyperlink string
}

// Rect is a plain rectangle. A full-canvas Rect becomes the slide background.
type Rect struct {
	Box  Box
	Fill string
	Line Line
}

// ChartSeries is one named data series.
type ChartSeries struct {
	Name   string
	Labels []string
	Values []float64
}

// Chart is a data chart.
type Chart struct {
	Box        Box
	ChartType  string
	Title      string
	Series     []ChartSeries
	ShowLegend bool
	LegendPos  string
	Colors     []string
}

// Media is a video or audio reference. It is drawn as a linked poster frame.
type Media struct {
	Box       Box
	MediaType string
	Link      string
	Poster    ImageRef
}

// Unrecognized is an element that matched no dispatch case or carried invalid data.
type Unrecognized struct {
	Reason string
	Raw    any
}

func (Text) Kind() Kind         { return KindText }
func (RichText) Kind() Kind     { return KindRichText }
func (Table) Kind() Kind        { return KindTable }
func (Image) Kind() Kind        { return KindImage }
func (Shape) Kind() Kind        { return KindShape }
func (Rect) Kind() Kind         { return KindRect }
func (Chart) Kind() Kind        { return KindChart }
func (Media) Kind() Kind        { return KindMedia }
func (Unrecognized) Kind() Kind { return KindUnrecognized }

func (Text) element()         {}
func (RichText) element()     {}
func (Table) element()        {}
func (Image) element()        {}
func (Shape) element()        {}
func (Rect) element()         {}
func (Chart) element()        {}
func (Media) element()        {}
func (Unrecognized) element() {}
