package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/halal-food-club/api/internal/public/application"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

func (h *Handler) restaurantSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		query, paging, err := h.parseSearchQuery(r)
		if err != nil {
			common.WriteDomainError(h.logger, w, "restaurant search", err)
			return
		}

		result, err := h.discovery.Search(ctx, query, paging)
		if err != nil {
			common.WriteDomainError(h.logger, w, "restaurant search", err)
			return
		}

		items := make([]matchResponse, 0, len(result.Items))
		for _, m := range result.Items {
			items = append(items, buildMatchResponse(m))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, searchResponse{
			Items:  items,
			Total:  result.Total,
			Limit:  paging.Limit,
			Offset: paging.Offset,
			Sort:   string(query.Sort),
		})
	}
}

func (h *Handler) parseSearchQuery(r *http.Request) (publicdomain.DiscoveryQuery, publicapp.Paging, error) {
	values := r.URL.Query()

	lat, ok := common.ParseFloat(values.Get("lat"))
	if !ok {
		return publicdomain.DiscoveryQuery{}, publicapp.Paging{}, publicdomain.NewValidationError("lat", "lat is required and must be a number")
	}
	lng, ok := common.ParseFloat(values.Get("lng"))
	if !ok {
		return publicdomain.DiscoveryQuery{}, publicapp.Paging{}, publicdomain.NewValidationError("lng", "lng is required and must be a number")
	}

	radius := h.defaultRadius
	if raw := strings.TrimSpace(values.Get("radius")); raw != "" {
		if radius, ok = common.ParseFloat(raw); !ok {
			return publicdomain.DiscoveryQuery{}, publicapp.Paging{}, publicdomain.NewValidationError("radius", "radius must be a number")
		}
	}

	var minRating float64
	if raw := strings.TrimSpace(values.Get("minRating")); raw != "" {
		if minRating, ok = common.ParseFloat(raw); !ok {
			return publicdomain.DiscoveryQuery{}, publicapp.Paging{}, publicdomain.NewValidationError("minRating", "minRating must be a number")
		}
	}

	sortKey, err := publicdomain.ParseSortKey(values.Get("sort"))
	if err != nil {
		return publicdomain.DiscoveryQuery{}, publicapp.Paging{}, err
	}

	limit, _ := common.ParsePositiveInt(values.Get("limit"), common.DefaultPageLimit)
	offset, _ := common.ParseNonNegativeInt(values.Get("offset"), 0)

	query := publicdomain.DiscoveryQuery{
		Center:      geo.Coordinate{Lat: lat, Lng: lng},
		RadiusMiles: radius,
		Cuisines:    splitCuisines(values["cuisine"]),
		MinRating:   minRating,
		Sort:        sortKey,
	}
	return query, publicapp.Paging{Offset: offset, Limit: common.ClampLimit(limit)}, nil
}

// splitCuisines accepts both repeated cuisine params and comma-separated values.
func splitCuisines(raw []string) []string {
	var out []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		restaurant, err := h.restaurants.Detail(ctx, id)
		if err != nil {
			common.WriteDomainError(h.logger, w, "restaurant detail", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildRestaurantResponse(*restaurant))
	}
}
