package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	"github.com/sngm3741/halal-food-club/api/internal/config"
	adminhttp "github.com/sngm3741/halal-food-club/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/halal-food-club/api/internal/interfaces/http/public"
	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/webhook"
	publicapp "github.com/sngm3741/halal-food-club/api/internal/public/application"
)

// Server is the composition root: it wires adapters into the application
// services and mounts the HTTP handlers.
type Server struct {
	logger  *log.Logger
	backend *backend

	addr             string
	allowedOrigins   []string
	jwtConfigs       []config.JWTConfig
	jwtAudience      string
	adminRole        string
	webhookSecret    string
	webhookTolerance time.Duration
	defaultRadius    float64

	submissionService adminapp.SubmissionService
	lifecycleService  adminapp.LifecycleService
	sweeper           *adminapp.RetentionSweeper
	discoveryService  publicapp.DiscoveryService
	restaurantQueries publicapp.RestaurantQueryService
	reviewCommands    publicapp.ReviewCommandService
	reviewQueries     publicapp.ReviewQueryService
}

// New opens the configured backend and assembles the application services.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.New(os.Stdout, "[halal-food-club-api] ", log.LstdFlags|log.Lshortfile)
	}

	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		logger:           logger,
		backend:          b,
		addr:             cfg.Addr,
		allowedOrigins:   append([]string(nil), cfg.AllowedOrigins...),
		jwtConfigs:       append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:      cfg.JWTAudience,
		adminRole:        cfg.AdminRole,
		webhookSecret:    cfg.PaymentWebhookSecret,
		webhookTolerance: cfg.WebhookTolerance,
		defaultRadius:    cfg.DefaultSearchRadius,
	}
	if srv.webhookSecret == "" {
		logger.Printf("PAYMENT_WEBHOOK_SECRET is empty; payment webhooks will be refused")
	}

	srv.submissionService = adminapp.NewSubmissionService(b.submissions, time.Now)
	srv.lifecycleService = adminapp.NewLifecycleService(adminapp.LifecycleDeps{
		Submissions: b.submissions,
		Restaurants: b.adminRestaurants,
		Locker:      b.locker,
		Events:      b.events,
		Notifier:    b.notifier,
		Logger:      logger,
		Now:         time.Now,
	})
	srv.sweeper = adminapp.NewRetentionSweeper(srv.lifecycleService, cfg.RetentionWindow, cfg.RetentionInterval, logger, time.Now)
	srv.discoveryService = publicapp.NewDiscoveryService(b.publicRestaurants)
	srv.restaurantQueries = publicapp.NewRestaurantQueryService(b.publicRestaurants)
	srv.reviewCommands = publicapp.NewReviewCommandService(b.publicRestaurants, b.reviews, time.Now)
	srv.reviewQueries = publicapp.NewReviewQueryService(b.reviews)

	return srv, nil
}

// Lifecycle exposes the lifecycle engine for in-process callers such as the seeder.
func (s *Server) Lifecycle() adminapp.LifecycleService {
	return s.lifecycleService
}

// Submissions exposes the submission intake service.
func (s *Server) Submissions() adminapp.SubmissionService {
	return s.submissionService
}

// ReviewCommands exposes the review write service.
func (s *Server) ReviewCommands() publicapp.ReviewCommandService {
	return s.reviewCommands
}

// Handler builds the HTTP router.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", webhook.SignatureHeader},
		MaxAge:         300,
	}).Handler)

	router.Get("/healthz", s.healthHandler())

	publichttp.NewHandler(publichttp.Config{
		Logger:             s.logger,
		Discovery:          s.discoveryService,
		Restaurants:        s.restaurantQueries,
		ReviewCommands:     s.reviewCommands,
		ReviewQueries:      s.reviewQueries,
		Submissions:        s.submissionService,
		DefaultRadiusMiles: s.defaultRadius,
	}).Register(router, s.authMiddleware)

	webhook.NewHandler(webhook.Config{
		Logger:    s.logger,
		Lifecycle: s.lifecycleService,
		Secret:    s.webhookSecret,
		Tolerance: s.webhookTolerance,
	}).Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:      s.logger,
		Submissions: s.submissionService,
		Lifecycle:   s.lifecycleService,
		Retention:   s.sweeper,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(commonhttp.RequireRole(s.logger, s.adminRole))
		adminHandler.Register(r)
	})

	return router
}

// Run starts the HTTP server and the retention sweeper and blocks until
// shutdown.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		s.sweeper.Run(sweepCtx)
	}()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	err := waitForShutdown(httpServer, errChan, s.logger)
	stopSweeper()
	<-sweeperDone
	s.Close(context.Background())
	return err
}

// Close releases database, lock and broker connections.
func (s *Server) Close(ctx context.Context) {
	s.backend.close(ctx, s.logger)
}

// healthHandler reports the reachability of each configured backend.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{}
		healthy := true
		for _, hc := range s.backend.checks {
			if err := hc.check(ctx); err != nil {
				healthy = false
				status[hc.name] = err.Error()
				continue
			}
			status[hc.name] = "ok"
		}

		if !healthy {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"checks": status,
			})
			return
		}
		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
			"checks": status,
		})
	}
}

// waitForShutdown blocks until ListenAndServe fails or SIGINT/SIGTERM arrives.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, logger *log.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("server stopped unexpectedly: %v", err)
			return err
		}
	case sig := <-sigChan:
		logger.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Printf("shutdown error: %v", err)
		}
	}
	return nil
}
