// Package webhook receives payment provider callbacks and feeds them to the
// submission lifecycle.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	"github.com/sngm3741/halal-food-club/api/internal/interfaces/http/common"
)

// DefaultTolerance bounds the clock skew accepted on signed timestamps.
const DefaultTolerance = 5 * time.Minute

const outcomeSucceeded = "succeeded"

// Handler verifies and dispatches payment webhooks.
type Handler struct {
	logger    *log.Logger
	lifecycle adminapp.LifecycleService
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// Config provides dependencies for Handler.
type Config struct {
	Logger    *log.Logger
	Lifecycle adminapp.LifecycleService
	Secret    string
	Tolerance time.Duration
	Now       func() time.Time
}

// NewHandler constructs the webhook handler.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		logger:    cfg.Logger,
		lifecycle: cfg.Lifecycle,
		secret:    []byte(cfg.Secret),
		tolerance: cfg.Tolerance,
		now:       cfg.Now,
	}
	if h.tolerance <= 0 {
		h.tolerance = DefaultTolerance
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Register mounts the webhook route onto router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/webhooks/payment", h.paymentHandler())
}

type paymentEvent struct {
	PaymentReference string `json:"paymentReference" validate:"required,max=200"`
	SubmissionID     string `json:"submissionId" validate:"required,max=100"`
	Outcome          string `json:"outcome" validate:"required,oneof=succeeded failed canceled"`
}

type paymentAck struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submissionId"`
	Paid         bool   `json:"paid"`
}

func (h *Handler) paymentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, common.MaxRequestBody))
		if err != nil {
			common.WriteError(h.logger, w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		if len(h.secret) == 0 {
			h.logger.Printf("payment webhook rejected: no signing secret configured")
			common.WriteError(h.logger, w, http.StatusServiceUnavailable, "webhook not configured")
			return
		}
		if err := Verify(h.secret, r.Header.Get(SignatureHeader), body, h.now(), h.tolerance); err != nil {
			h.logger.Printf("payment webhook signature rejected: %v", err)
			common.WriteError(h.logger, w, http.StatusUnauthorized, "invalid signature")
			return
		}

		var event paymentEvent
		if err := json.Unmarshal(body, &event); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		event.Outcome = strings.ToLower(strings.TrimSpace(event.Outcome))
		if err := common.ValidateStruct(&event); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		if event.Outcome != outcomeSucceeded {
			h.logger.Printf("payment webhook outcome=%s submission=%s ref=%s ignored", event.Outcome, event.SubmissionID, event.PaymentReference)
			common.WriteJSON(h.logger, w, http.StatusOK, paymentAck{Status: "ignored", SubmissionID: event.SubmissionID})
			return
		}

		submission, err := h.lifecycle.RecordPayment(ctx, event.SubmissionID, event.PaymentReference)
		if err != nil {
			common.WriteDomainError(h.logger, w, "record payment", err)
			return
		}
		status := "recorded"
		if !submission.Paid {
			status = "ignored"
		}
		common.WriteJSON(h.logger, w, http.StatusOK, paymentAck{
			Status:       status,
			SubmissionID: submission.ID,
			Paid:         submission.Paid,
		})
	}
}
