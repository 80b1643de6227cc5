package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/halal-food-club/api/internal/public/application"
)

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		restaurantID := strings.TrimSpace(chi.URLParam(r, "id"))
		if _, err := h.restaurants.Detail(ctx, restaurantID); err != nil {
			common.WriteDomainError(h.logger, w, "review list", err)
			return
		}
		reviews, err := h.reviewQueries.List(ctx, restaurantID)
		if err != nil {
			common.WriteDomainError(h.logger, w, "review list", err)
			return
		}

		items := make([]reviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, buildReviewResponse(review))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{Items: items, Total: len(items)})
	}
}

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req reviewCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteDecodeError(h.logger, w, err)
			return
		}

		displayName := strings.TrimSpace(req.DisplayName)
		if displayName == "" {
			displayName = user.DisplayName()
		}

		review, summary, err := h.reviewCommands.Submit(ctx, publicapp.SubmitReviewCommand{
			RestaurantID: strings.TrimSpace(chi.URLParam(r, "id")),
			UID:          user.ID,
			DisplayName:  displayName,
			Rating:       req.Rating,
			Text:         req.Text,
			Photos:       req.Photos,
		})
		if err != nil {
			common.WriteDomainError(h.logger, w, "review create", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, reviewCreateResponse{
			Review:      buildReviewResponse(*review),
			RatingAvg:   summary.Avg,
			RatingCount: summary.Count,
		})
	}
}
