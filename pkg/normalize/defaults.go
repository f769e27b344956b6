package normalize

import "github.com/aretw0/lectern/pkg/domain"

// Text defaults.
var DefaultTextStyle = domain.TextStyle{
	FontSize: 16,
	FontFace: "Arial",
	Color:    "000000",
	Align:    "left",
	Valign:   "top",
}

// Shape defaults.
const (
	DefaultShapeFill = "0066CC"
	DefaultLineColor = "000000"
	DefaultLineWidth = 1.0
)

// Table defaults.
var DefaultTableStyle = domain.TableStyle{
	BorderType:  "solid",
	BorderColor: "666666",
	BorderPt:    1,
	Fill:        "F7F7F7",
	FontSize:    12,
	FontFace:    "Arial",
	Color:       "000000",
}

// Chart defaults.
const (
	DefaultLegendPos  = "r"
	DefaultShowLegend = true
)

// DefaultMediaType is used when a media element does not name its type.
const DefaultMediaType = "video"

func inches(x, y, w, h float64) domain.Box {
	return domain.Box{X: domain.Inches(x), Y: domain.Inches(y), W: domain.Inches(w), H: domain.Inches(h)}
}

// DefaultBoxes holds the per-kind geometry used for missing or malformed fields.
var DefaultBoxes = map[domain.Kind]domain.Box{
	domain.KindText:     inches(0.5, 0.5, 9, 1),
	domain.KindRichText: inches(0.5, 0.5, 9, 4),
	domain.KindTable:    inches(0.5, 1.5, 9, 3),
	domain.KindImage:    inches(1, 1, 4, 3),
	domain.KindShape:    inches(1, 1, 3, 2),
	domain.KindRect:     inches(1, 1, 3, 2),
	domain.KindChart:    inches(0.5, 1, 9, 4.5),
	domain.KindMedia:    inches(1, 1, 6, 3.375),
}
