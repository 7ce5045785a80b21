package ai

import "strings"

// Intent tags utterances that are not vehicle searches.
type Intent string

const (
	IntentNone     Intent = ""
	IntentGreeting Intent = "greeting"
	IntentOther    Intent = "other"
)

// FilterSpec captures the structured search extracted from one customer message.
// When Intent is set the filter fields are not examined.
type FilterSpec struct {
	Brand      *string
	Model      *string
	YearMin    *int
	YearMax    *int
	PriceMin   *float64
	PriceMax   *float64
	Color      *string
	MileageMax *int
	// Options only ever holds entries of KnownOptions, in their canonical spelling.
	Options []string
	Intent  Intent
}

// HasFilters reports whether any search field is set.
func (f FilterSpec) HasFilters() bool {
	return f.Brand != nil || f.Model != nil ||
		f.YearMin != nil || f.YearMax != nil ||
		f.PriceMin != nil || f.PriceMax != nil ||
		f.Color != nil || f.MileageMax != nil ||
		len(f.Options) > 0
}

// IsEmpty reports a spec with neither an intent nor a filter.
func (f FilterSpec) IsEmpty() bool {
	return f.Intent == IntentNone && !f.HasFilters()
}

// KnownOptions is the option vocabulary the inventory can be filtered on.
var KnownOptions = []string{
	"ar condicionado",
	"direção hidráulica",
	"direção elétrica",
	"vidros elétricos",
	"teto solar",
	"rodas de liga leve",
	"banco de couro",
	"sensor de estacionamento",
	"câmera de ré",
	"piloto automático",
	"airbag",
	"freios abs",
	"multimídia",
	"gps",
	"alarme",
	"travas elétricas",
}

// NormalizeOptions keeps the entries that match KnownOptions case-insensitively,
// returning them in canonical spelling without duplicates.
func NormalizeOptions(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, raw := range in {
		candidate := strings.TrimSpace(raw)
		for _, known := range KnownOptions {
			if strings.EqualFold(candidate, known) && !seen[known] {
				seen[known] = true
				out = append(out, known)
				break
			}
		}
	}
	return out
}
