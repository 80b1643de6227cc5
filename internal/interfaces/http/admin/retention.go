package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
)

func (h *Handler) retentionSweepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		report, err := h.retention.SweepOnce(ctx)
		if err != nil {
			common.WriteDomainError(h.logger, w, "retention sweep", err)
			return
		}
		failed := report.Failed
		if failed == nil {
			failed = []string{}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, purgeReportResponse{
			Scanned: report.Scanned,
			Deleted: report.Deleted,
			Failed:  failed,
		})
	}
}
