package domain

import (
	"strings"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
)

// SortKey selects the ordering of discovery results.
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByRating   SortKey = "rating"
	SortByName     SortKey = "name"
)

// ParseSortKey defaults to distance when value is empty.
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(value))); key {
	case "":
		return SortByDistance, nil
	case SortByDistance, SortByRating, SortByName:
		return key, nil
	}
	return "", NewValidationError("sort", "unknown sort key %q", value)
}

// DiscoveryQuery is an ephemeral consumer search around a point.
type DiscoveryQuery struct {
	Center      geo.Coordinate
	RadiusMiles float64
	Cuisines    []string
	MinRating   float64
	Sort        SortKey
}

// Match is a restaurant that satisfied a query, with its distance from the center.
type Match struct {
	Restaurant    Restaurant
	DistanceMiles float64
}
