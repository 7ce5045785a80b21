package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var dotGrouped = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// Sanitize strips code-fence markers and a leading "json" language tag from raw model output.
func Sanitize(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "`", "")
	s = strings.TrimSpace(s)
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}

// ExtractObject returns the substring between the first '{' and the last '}'.
func ExtractObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return s[start : end+1], nil
}

// ParseFilterSpec runs both sanitation stages and decodes the object into a FilterSpec.
// Options outside KnownOptions are dropped.
func ParseFilterSpec(raw string) (FilterSpec, error) {
	obj, err := ExtractObject(Sanitize(raw))
	if err != nil {
		return FilterSpec{}, err
	}

	dec := json.NewDecoder(strings.NewReader(obj))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return FilterSpec{}, fmt.Errorf("decode filter object: %w", err)
	}

	spec := FilterSpec{
		Brand:      asString(lookup(fields, "marca", "brand")),
		Model:      asString(lookup(fields, "modelo", "model")),
		YearMin:    asInt(lookup(fields, "ano_min", "year_min", "yearMin")),
		YearMax:    asInt(lookup(fields, "ano_max", "year_max", "yearMax")),
		PriceMin:   asFloat(lookup(fields, "preco_min", "price_min", "priceMin")),
		PriceMax:   asFloat(lookup(fields, "preco_max", "price_max", "priceMax")),
		Color:      asString(lookup(fields, "cor", "color")),
		MileageMax: asInt(lookup(fields, "quilometragem_max", "mileage_max", "mileageMax")),
		Options:    NormalizeOptions(asStrings(lookup(fields, "opcionais", "options"))),
		Intent:     parseIntent(lookup(fields, "intent")),
	}
	return spec, nil
}

func lookup(fields map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func parseIntent(v any) Intent {
	s, ok := v.(string)
	if !ok {
		return IntentNone
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return IntentNone
	case "greeting":
		return IntentGreeting
	default:
		// "other", "fallback" and anything unrecognised redirect the customer.
		return IntentOther
	}
}

func asString(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case json.Number:
		s = t.String()
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// asFloat returns nil for anything that is not a positive number; the model fills fields it
// did not hear with 0.
func asFloat(v any) *float64 {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = parseDecimal(t)
	default:
		return nil
	}
	if err != nil || f <= 0 {
		return nil
	}
	return &f
}

// parseDecimal reads "100000", "100.000", "95.000,50" and "R$ 90.000".
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case dotGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}

func asInt(v any) *int {
	f := asFloat(v)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
