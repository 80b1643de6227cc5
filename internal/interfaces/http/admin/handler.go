package admin

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
)

// RetentionTrigger runs one retention sweep on demand.
type RetentionTrigger interface {
	SweepOnce(ctx context.Context) (adminapp.PurgeReport, error)
}

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger      *log.Logger
	submissions adminapp.SubmissionService
	lifecycle   adminapp.LifecycleService
	retention   RetentionTrigger
}

// Config provides dependencies for Handler.
type Config struct {
	Logger      *log.Logger
	Submissions adminapp.SubmissionService
	Lifecycle   adminapp.LifecycleService
	Retention   RetentionTrigger
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		submissions: cfg.Submissions,
		lifecycle:   cfg.Lifecycle,
		retention:   cfg.Retention,
	}
}

// Register mounts admin routes onto router. Callers are expected to have
// applied authentication and the moderator role check already.
func (h *Handler) Register(r chi.Router) {
	r.Get("/submissions", h.submissionListHandler())
	r.Get("/submissions/{id}", h.submissionDetailHandler())
	r.Post("/submissions/{id}/approve", h.submissionApproveHandler())
	r.Post("/submissions/{id}/reject", h.submissionRejectHandler())
	if h.retention != nil {
		r.Post("/retention/sweep", h.retentionSweepHandler())
	}
}
