package inventory

import (
	"strings"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
)

// MatchesTerm reports whether term equals value or appears in it bounded by spaces or
// the string edges, ignoring case. "Golf GTI" matches "golf"; "Gol" does not.
func MatchesTerm(value, term string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return true
	}
	return v == t ||
		strings.HasPrefix(v, t+" ") ||
		strings.HasSuffix(v, " "+t) ||
		strings.Contains(v, " "+t+" ")
}

// ContainsFold is a case-insensitive substring test.
func ContainsFold(value, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(strings.TrimSpace(sub)))
}

// Matches applies every filter of f to v. Sold vehicles and other dealerships never match.
// A bound on a field the vehicle lacks excludes it.
func Matches(v Vehicle, dealershipID int64, f ai.FilterSpec) bool {
	if v.DealershipID != dealershipID || v.Sold {
		return false
	}
	if f.Brand != nil && !MatchesTerm(v.Brand, *f.Brand) {
		return false
	}
	if f.Model != nil && !MatchesTerm(v.Model, *f.Model) {
		return false
	}
	if f.Color != nil && (v.Color == nil || !ContainsFold(*v.Color, *f.Color)) {
		return false
	}
	if !intInRange(v.Year, f.YearMin, f.YearMax) {
		return false
	}
	if !floatInRange(v.Price, f.PriceMin, f.PriceMax) {
		return false
	}
	if !intInRange(v.Mileage, nil, f.MileageMax) {
		return false
	}
	for _, opt := range f.Options {
		if !hasOption(v.Options, opt) {
			return false
		}
	}
	return true
}

func hasOption(options []string, want string) bool {
	for _, o := range options {
		if ContainsFold(o, want) {
			return true
		}
	}
	return false
}

func intInRange(v, min, max *int) bool {
	if min == nil && max == nil {
		return true
	}
	if v == nil {
		return false
	}
	return (min == nil || *v >= *min) && (max == nil || *v <= *max)
}

func floatInRange(v, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if v == nil {
		return false
	}
	return (min == nil || *v >= *min) && (max == nil || *v <= *max)
}
