package application

import (
	"context"
	"time"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

// LifecycleEventType names the lifecycle transitions published downstream.
type LifecycleEventType string

const (
	EventSubmissionPaid     LifecycleEventType = "submission.paid"
	EventSubmissionApproved LifecycleEventType = "submission.approved"
	EventSubmissionRejected LifecycleEventType = "submission.rejected"
	EventSubmissionPurged   LifecycleEventType = "submission.purged"
)

// LifecycleEvent is emitted after a lifecycle write has been stored.
type LifecycleEvent struct {
	Type             LifecycleEventType `json:"type"`
	SubmissionID     string             `json:"submissionId"`
	RestaurantID     string             `json:"restaurantId,omitempty"`
	PaymentReference string             `json:"paymentReference,omitempty"`
	OwnerUID         string             `json:"ownerUid,omitempty"`
	OccurredAt       time.Time          `json:"occurredAt"`
}

// LogPublisher writes events to the service log. Used when no broker is configured.
type LogPublisher struct {
	Logger Logger
}

func (p LogPublisher) Publish(_ context.Context, event LifecycleEvent) error {
	if p.Logger != nil {
		p.Logger.Printf("lifecycle event type=%s submission=%s restaurant=%s", event.Type, event.SubmissionID, event.RestaurantID)
	}
	return nil
}

type nopNotifier struct{}

func (nopNotifier) NotifyAwaitingReview(context.Context, admindomain.Submission) error { return nil }
