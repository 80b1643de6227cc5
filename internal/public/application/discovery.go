package application

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
	"github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// Search filters restaurants by radius, cuisine and minimum rating, then orders
// them by q.Sort. The input slice is not modified.
func Search(restaurants []domain.Restaurant, q domain.DiscoveryQuery) []domain.Match {
	if len(restaurants) == 0 || !(q.RadiusMiles > 0) {
		return []domain.Match{}
	}

	cuisines := cuisineSet(q.Cuisines)
	out := make([]domain.Match, 0, len(restaurants))
	for _, r := range restaurants {
		distance, ok := matches(r, q, cuisines)
		if !ok {
			continue
		}
		out = append(out, domain.Match{Restaurant: r, DistanceMiles: distance})
	}

	sortMatches(out, q.Sort)
	return out
}

// Matches reports whether r satisfies q and its distance from q.Center.
// It has no side effects so callers may pre-index restaurants and apply it per cell.
func Matches(r domain.Restaurant, q domain.DiscoveryQuery) (float64, bool) {
	return matches(r, q, cuisineSet(q.Cuisines))
}

func matches(r domain.Restaurant, q domain.DiscoveryQuery, cuisines map[string]struct{}) (float64, bool) {
	if r.RatingAvg < q.MinRating {
		return 0, false
	}
	if len(cuisines) > 0 && !hasCuisine(r.Cuisines, cuisines) {
		return 0, false
	}
	distance := geo.Distance(q.Center, r.Location)
	if distance > q.RadiusMiles {
		return 0, false
	}
	return distance, true
}

func cuisineSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := normalizeCuisine(v)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

func hasCuisine(cuisines []string, wanted map[string]struct{}) bool {
	for _, c := range cuisines {
		if _, ok := wanted[normalizeCuisine(c)]; ok {
			return true
		}
	}
	return false
}

func normalizeCuisine(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

func sortMatches(matches []domain.Match, key domain.SortKey) {
	switch key {
	case domain.SortByRating:
		sort.SliceStable(matches, func(i, j int) bool {
			a, b := matches[i].Restaurant, matches[j].Restaurant
			if a.RatingAvg != b.RatingAvg {
				return a.RatingAvg > b.RatingAvg
			}
			if a.RatingCount != b.RatingCount {
				return a.RatingCount > b.RatingCount
			}
			return a.ID < b.ID
		})
	case domain.SortByName:
		sort.SliceStable(matches, func(i, j int) bool {
			a, b := strings.ToLower(matches[i].Restaurant.Name), strings.ToLower(matches[j].Restaurant.Name)
			if a != b {
				return a < b
			}
			return matches[i].Restaurant.ID < matches[j].Restaurant.ID
		})
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].DistanceMiles != matches[j].DistanceMiles {
				return matches[i].DistanceMiles < matches[j].DistanceMiles
			}
			return matches[i].Restaurant.ID < matches[j].Restaurant.ID
		})
	}
}

// discoveryService is the concrete implementation of DiscoveryService.
type discoveryService struct {
	repo RestaurantRepository
}

// NewDiscoveryService creates a discovery service over the published restaurant set.
func NewDiscoveryService(repo RestaurantRepository) DiscoveryService {
	return &discoveryService{repo: repo}
}

func (s *discoveryService) Search(ctx context.Context, query domain.DiscoveryQuery, paging Paging) (SearchResult, error) {
	if err := query.Center.Validate(); err != nil {
		return SearchResult{}, domain.NewValidationError("center", "%v", err)
	}
	if math.IsNaN(query.MinRating) || query.MinRating < 0 {
		return SearchResult{}, domain.NewValidationError("minRating", "minimum rating must be a number >= 0")
	}
	if query.Sort == "" {
		query.Sort = domain.SortByDistance
	}

	restaurants, err := s.repo.FindAll(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	all := Search(restaurants, query)
	return SearchResult{Items: page(all, paging), Total: len(all)}, nil
}

func page(matches []domain.Match, paging Paging) []domain.Match {
	start := paging.Offset
	if start < 0 {
		start = 0
	}
	if start > len(matches) {
		start = len(matches)
	}
	end := len(matches)
	if paging.Limit > 0 && start+paging.Limit < end {
		end = start + paging.Limit
	}
	return matches[start:end]
}
