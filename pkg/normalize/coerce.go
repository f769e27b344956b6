package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/lectern/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// decode copies matching keys of in into out. Keys match case-insensitively.
// Fields that fail to convert keep their zero value.
func decode(in map[string]any, out any) {
	if len(in) == 0 {
		return
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	_ = dec.Decode(in)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	case map[string]any, []any:
		return ""
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func toBool(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	case map[string]any:
		return true
	}
	f, ok := toFloat(v)
	return ok && f != 0
}

// toDimension parses a geometry field. Numbers and numeric strings are inches,
// "N%" is a percentage of the canvas. Anything else yields the fallback.
func toDimension(v any, fallback domain.Dimension) domain.Dimension {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "%") {
			f, ok := toFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")))
			if !ok {
				return fallback
			}
			return domain.Percent(f)
		}
	}
	f, ok := toFloat(v)
	if !ok {
		return fallback
	}
	return domain.Inches(f)
}

// toColor normalizes a hex colour to upper-case RRGGBB or AARRGGBB without "#".
func toColor(v any, fallback string) string {
	s := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(toString(v)), "#"))
	if len(s) != 6 && len(s) != 8 {
		return fallback
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return fallback
		}
	}
	return s
}

// fillColor accepts "RRGGBB" or {color: "RRGGBB"}.
func fillColor(v any, fallback string) string {
	if m, ok := v.(map[string]any); ok {
		if strings.EqualFold(toString(m["type"]), "none") {
			return ""
		}
		return toColor(m["color"], fallback)
	}
	if strings.EqualFold(toString(v), "none") {
		return ""
	}
	return toColor(v, fallback)
}

// hyperlink accepts "https://..." or {url: "https://..."}.
func hyperlink(v any) string {
	if m, ok := v.(map[string]any); ok {
		return strings.TrimSpace(toString(m["url"]))
	}
	return strings.TrimSpace(toString(v))
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// merge returns a new map with the keys of each layer, later layers winning.
func merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, l := range layers {
		for k, v := range l {
			out[k] = v
		}
	}
	return out
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return "unknown"
}
