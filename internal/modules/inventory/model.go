// README: Vehicle inventory read model and the query engine over it.
package inventory

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("vehicle not found")

// Vehicle is a read-only snapshot of an inventory item.
type Vehicle struct {
	ID           int64
	DealershipID int64
	Brand        string
	Model        string
	Version      string
	Year         *int
	Price        *float64
	Color        *string
	Mileage      *int
	Transmission string
	Fuel         string
	Engine       string
	// Options and Photos keep their stored order; Photos[0] is the primary photo.
	Options []string
	Photos  []string
	Sold    bool
}

// PrimaryPhoto returns the first photo URL, or "" when there is none.
func (v Vehicle) PrimaryPhoto() string {
	if len(v.Photos) == 0 {
		return ""
	}
	return v.Photos[0]
}

// SplitList splits a semicolon-delimited column into trimmed, non-empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ";")
}
