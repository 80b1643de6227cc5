package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
)

func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var filter adminapp.SubmissionFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := admindomain.ParseSubmissionStatus(raw)
			if err != nil {
				common.WriteDomainError(h.logger, w, "submission list", err)
				return
			}
			filter.Status = status
		}

		submissions, err := h.submissions.List(ctx, filter)
		if err != nil {
			common.WriteDomainError(h.logger, w, "submission list", err)
			return
		}

		items := make([]submissionSummaryResponse, 0, len(submissions))
		for _, s := range submissions {
			items = append(items, buildSubmissionSummary(s))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, submissionListResponse{Items: items, Total: len(items)})
	}
}

func (h *Handler) submissionDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		submission, err := h.submissions.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteDomainError(h.logger, w, "submission detail", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSubmissionDetail(*submission))
	}
}

func (h *Handler) submissionApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		restaurant, err := h.lifecycle.Approve(ctx, id)
		if err != nil {
			common.WriteDomainError(h.logger, w, "submission approve", err)
			return
		}
		moderator := moderatorID(r)
		h.logger.Printf("submission approved id=%s restaurant=%s moderator=%s", id, restaurant.ID, moderator)
		common.WriteJSON(h.logger, w, http.StatusOK, approveResponse{
			SubmissionID: id,
			Status:       string(admindomain.StatusApproved),
			RestaurantID: restaurant.ID,
		})
	}
}

func (h *Handler) submissionRejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var req rejectRequest
		if r.ContentLength != 0 {
			if err := common.DecodeJSON(w, r, &req); err != nil {
				common.WriteDecodeError(h.logger, w, err)
				return
			}
		}

		submission, err := h.lifecycle.Reject(ctx, chi.URLParam(r, "id"), strings.TrimSpace(req.Reason))
		if err != nil {
			common.WriteDomainError(h.logger, w, "submission reject", err)
			return
		}
		h.logger.Printf("submission rejected id=%s moderator=%s", submission.ID, moderatorID(r))
		common.WriteJSON(h.logger, w, http.StatusOK, buildSubmissionDetail(*submission))
	}
}

func moderatorID(r *http.Request) string {
	if user, ok := common.UserFromContext(r.Context()); ok {
		return user.ID
	}
	return "unknown"
}
