package public

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	publicapp "github.com/sngm3741/halal-food-club/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger         *log.Logger
	discovery      publicapp.DiscoveryService
	restaurants    publicapp.RestaurantQueryService
	reviewCommands publicapp.ReviewCommandService
	reviewQueries  publicapp.ReviewQueryService
	submissions    adminapp.SubmissionService
	defaultRadius  float64
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *log.Logger
	Discovery      publicapp.DiscoveryService
	Restaurants    publicapp.RestaurantQueryService
	ReviewCommands publicapp.ReviewCommandService
	ReviewQueries  publicapp.ReviewQueryService
	Submissions    adminapp.SubmissionService
	// DefaultRadiusMiles is used when a search omits radius.
	DefaultRadiusMiles float64
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	radius := cfg.DefaultRadiusMiles
	if radius <= 0 {
		radius = 10
	}
	return &Handler{
		logger:         cfg.Logger,
		discovery:      cfg.Discovery,
		restaurants:    cfg.Restaurants,
		reviewCommands: cfg.ReviewCommands,
		reviewQueries:  cfg.ReviewQueries,
		submissions:    cfg.Submissions,
		defaultRadius:  radius,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/restaurants/search", h.restaurantSearchHandler())
	r.Get("/restaurants/{id}", h.restaurantDetailHandler())
	r.Get("/restaurants/{id}/reviews", h.reviewListHandler())
	r.With(authMiddleware).Post("/restaurants/{id}/reviews", h.reviewCreateHandler())
	r.With(authMiddleware).Post("/submissions", h.submissionCreateHandler())
	r.With(authMiddleware).Get("/submissions/{id}", h.submissionDetailHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}
