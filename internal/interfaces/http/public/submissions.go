package public

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
)

func (h *Handler) submissionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req submissionCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteDecodeError(h.logger, w, err)
			return
		}

		submission, err := h.submissions.Submit(ctx, req.toCommand(user.ID))
		if err != nil {
			common.WriteDomainError(h.logger, w, "submission create", err)
			return
		}
		h.logger.Printf("submission created id=%s owner=%s name=%q", submission.ID, submission.OwnerUID, submission.Name)
		common.WriteJSON(h.logger, w, http.StatusCreated, buildSubmissionStatusResponse(*submission))
	}
}

func (h *Handler) submissionDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		submission, err := h.submissions.DetailForOwner(ctx, strings.TrimSpace(chi.URLParam(r, "id")), user.ID)
		if err != nil {
			common.WriteDomainError(h.logger, w, "submission detail", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildSubmissionStatusResponse(*submission))
	}
}
