package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

// maxStateAttempts bounds re-reads after a guarded update loses a race.
const maxStateAttempts = 3

type lifecycleService struct {
	submissions SubmissionRepository
	restaurants RestaurantRepository
	locker      Locker
	events      EventPublisher
	notifier    Notifier
	logger      Logger
	now         func() time.Time
}

// NewLifecycleService builds the lifecycle engine. Submissions, Restaurants and
// Locker are required; the remaining dependencies fall back to logging no-ops.
func NewLifecycleService(deps LifecycleDeps) LifecycleService {
	svc := &lifecycleService{
		submissions: deps.Submissions,
		restaurants: deps.Restaurants,
		locker:      deps.Locker,
		events:      deps.Events,
		notifier:    deps.Notifier,
		logger:      deps.Logger,
		now:         deps.Now,
	}
	if svc.logger == nil {
		svc.logger = log.New(os.Stderr, "[lifecycle] ", log.LstdFlags)
	}
	if svc.events == nil {
		svc.events = LogPublisher{Logger: svc.logger}
	}
	if svc.notifier == nil {
		svc.notifier = nopNotifier{}
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// RecordPayment marks a pending submission paid. Replays of the recorded
// reference are no-ops; a different reference fails with ErrDuplicatePayment.
func (s *lifecycleService) RecordPayment(ctx context.Context, submissionID, paymentReference string) (*admindomain.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	paymentReference = strings.TrimSpace(paymentReference)
	if submissionID == "" {
		return nil, admindomain.NewValidationError("submissionId", "submission id is required")
	}
	if paymentReference == "" {
		return nil, admindomain.NewValidationError("paymentReference", "payment reference is required")
	}

	unlock, err := s.lock(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 0; attempt < maxStateAttempts; attempt++ {
		submission, err := s.submissions.FindByID(ctx, submissionID)
		if err != nil {
			return nil, err
		}

		decision, err := submission.DecidePayment(paymentReference)
		if err != nil {
			return nil, err
		}
		switch decision {
		case admindomain.PaymentReplay:
			return submission, nil
		case admindomain.PaymentIgnoredLate:
			s.logger.Printf("payment %s arrived after submission %s was rejected; refund manually", paymentReference, submissionID)
			return submission, nil
		}

		paid := true
		patch := admindomain.SubmissionPatch{
			Paid:             &paid,
			PaymentReference: &paymentReference,
			UpdatedAt:        s.now().UTC(),
		}
		err = s.submissions.Update(ctx, submissionID, submission.State(), patch)
		if errors.Is(err, admindomain.ErrStateConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("record payment for submission %s: %w", submissionID, err)
		}
		patch.Apply(submission)

		afterCtx := context.WithoutCancel(ctx)
		s.emit(afterCtx, LifecycleEvent{
			Type:             EventSubmissionPaid,
			SubmissionID:     submission.ID,
			PaymentReference: paymentReference,
			OwnerUID:         submission.OwnerUID,
			OccurredAt:       submission.UpdatedAt,
		})
		if err := s.notifier.NotifyAwaitingReview(afterCtx, *submission); err != nil {
			s.logger.Printf("awaiting-review notification failed submission=%s: %v", submission.ID, err)
		}
		return submission, nil
	}
	return nil, fmt.Errorf("%w: submission %s", admindomain.ErrStateConflict, submissionID)
}

// Approve publishes a paid, pending submission as a restaurant. The restaurant
// is created before the submission records it, and an existing restaurant for
// the same submission is reused, so a retried call completes a half-done approval.
func (s *lifecycleService) Approve(ctx context.Context, submissionID string) (*admindomain.Restaurant, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, admindomain.NewValidationError("submissionId", "submission id is required")
	}

	unlock, err := s.lock(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 0; attempt < maxStateAttempts; attempt++ {
		submission, err := s.submissions.FindByID(ctx, submissionID)
		if err != nil {
			return nil, err
		}
		if err := submission.CheckApprovable(); err != nil {
			return nil, err
		}

		restaurant, err := s.publish(ctx, submission)
		if err != nil {
			return nil, err
		}

		// A restaurant exists from here on; the submission write must finish.
		writeCtx := context.WithoutCancel(ctx)
		status := admindomain.StatusApproved
		restaurantID := restaurant.ID
		patch := admindomain.SubmissionPatch{
			Status:       &status,
			RestaurantID: &restaurantID,
			UpdatedAt:    s.now().UTC(),
		}
		err = s.submissions.Update(writeCtx, submissionID, submission.State(), patch)
		if errors.Is(err, admindomain.ErrStateConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("record publication of submission %s: %w", submissionID, err)
		}

		s.emit(writeCtx, LifecycleEvent{
			Type:         EventSubmissionApproved,
			SubmissionID: submissionID,
			RestaurantID: restaurant.ID,
			OwnerUID:     submission.OwnerUID,
			OccurredAt:   patch.UpdatedAt,
		})
		return restaurant, nil
	}
	return nil, fmt.Errorf("%w: submission %s", admindomain.ErrStateConflict, submissionID)
}

// publish returns the restaurant for submission, creating it only if none exists.
func (s *lifecycleService) publish(ctx context.Context, submission *admindomain.Submission) (*admindomain.Restaurant, error) {
	existing, err := s.restaurants.FindBySubmissionID(ctx, submission.ID)
	if err == nil {
		s.logger.Printf("resuming approval: restaurant %s already published for submission %s", existing.ID, submission.ID)
		return existing, nil
	}
	if !errors.Is(err, admindomain.ErrNotFound) {
		return nil, fmt.Errorf("look up restaurant for submission %s: %w", submission.ID, err)
	}

	restaurant := admindomain.NewRestaurantFromSubmission(submission, s.now().UTC())
	err = s.restaurants.Create(ctx, restaurant)
	if errors.Is(err, admindomain.ErrAlreadyPublished) {
		return s.restaurants.FindBySubmissionID(ctx, submission.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("create restaurant for submission %s: %w", submission.ID, err)
	}
	return restaurant, nil
}

// Reject closes a pending submission. A rejected submission is never re-approved.
func (s *lifecycleService) Reject(ctx context.Context, submissionID, reason string) (*admindomain.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, admindomain.NewValidationError("submissionId", "submission id is required")
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > 1000 {
		return nil, admindomain.NewValidationError("reason", "reason must be at most 1000 characters")
	}

	unlock, err := s.lock(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 0; attempt < maxStateAttempts; attempt++ {
		submission, err := s.submissions.FindByID(ctx, submissionID)
		if err != nil {
			return nil, err
		}
		if err := submission.CheckRejectable(); err != nil {
			return nil, err
		}
		// A half-done approval already published a restaurant; only approve can finish it.
		published, err := s.restaurants.FindBySubmissionID(ctx, submissionID)
		if err == nil {
			return nil, fmt.Errorf("%w: submission %s already published as restaurant %s; retry approve",
				admindomain.ErrInvalidTransition, submissionID, published.ID)
		}
		if !errors.Is(err, admindomain.ErrNotFound) {
			return nil, fmt.Errorf("look up restaurant for submission %s: %w", submissionID, err)
		}

		status := admindomain.StatusRejected
		patch := admindomain.SubmissionPatch{
			Status:       &status,
			RejectReason: &reason,
			UpdatedAt:    s.now().UTC(),
		}
		err = s.submissions.Update(ctx, submissionID, submission.State(), patch)
		if errors.Is(err, admindomain.ErrStateConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reject submission %s: %w", submissionID, err)
		}
		patch.Apply(submission)

		s.emit(context.WithoutCancel(ctx), LifecycleEvent{
			Type:         EventSubmissionRejected,
			SubmissionID: submissionID,
			OwnerUID:     submission.OwnerUID,
			OccurredAt:   submission.UpdatedAt,
		})
		return submission, nil
	}
	return nil, fmt.Errorf("%w: submission %s", admindomain.ErrStateConflict, submissionID)
}

// PurgeRejectedOlderThan deletes rejected submissions last updated before cutoff.
// Individual failures are logged and reported; the sweep carries on.
func (s *lifecycleService) PurgeRejectedOlderThan(ctx context.Context, cutoff time.Time) (PurgeReport, error) {
	var report PurgeReport
	rejected, err := s.submissions.FindByStatus(ctx, admindomain.StatusRejected)
	if err != nil {
		return report, fmt.Errorf("list rejected submissions: %w", err)
	}

	for _, submission := range rejected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++
		if !submission.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.submissions.Delete(ctx, submission.ID); err != nil && !errors.Is(err, admindomain.ErrNotFound) {
			s.logger.Printf("retention: delete submission %s failed: %v", submission.ID, err)
			report.Failed = append(report.Failed, submission.ID)
			continue
		}
		report.Deleted++
		s.emit(ctx, LifecycleEvent{
			Type:         EventSubmissionPurged,
			SubmissionID: submission.ID,
			OwnerUID:     submission.OwnerUID,
			OccurredAt:   s.now().UTC(),
		})
	}
	return report, nil
}

func (s *lifecycleService) lock(ctx context.Context, submissionID string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, "submission:"+submissionID)
	if err != nil {
		return nil, fmt.Errorf("lock submission %s: %w", submissionID, err)
	}
	return unlock, nil
}

func (s *lifecycleService) emit(ctx context.Context, event LifecycleEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Printf("publish %s for submission %s failed: %v", event.Type, event.SubmissionID, err)
	}
}
