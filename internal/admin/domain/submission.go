package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
)

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// ParseSubmissionStatus accepts the stored lowercase names.
func ParseSubmissionStatus(value string) (SubmissionStatus, error) {
	switch status := SubmissionStatus(strings.ToLower(strings.TrimSpace(value))); status {
	case StatusPending, StatusApproved, StatusRejected:
		return status, nil
	}
	return "", NewValidationError("status", "unknown submission status %q", value)
}

// SubmissionState is the (status, paid) pair guarded by compare-and-swap updates.
type SubmissionState struct {
	Status SubmissionStatus
	Paid   bool
}

func (s SubmissionState) String() string {
	return fmt.Sprintf("(%s, paid=%t)", s.Status, s.Paid)
}

// Submission is a business's listing request awaiting payment and moderation.
type Submission struct {
	ID             string
	Name           string
	Cuisines       CuisineList
	Address        string
	Postcode       Postcode
	Location       geo.Coordinate
	Phone          Phone
	Website        URL
	HalalCertified bool
	HygieneRating  HygieneRating
	Menu           []MenuSection
	BestItems      []BestItem
	Socials        SocialLinks
	Gallery        URLList
	Videos         URLList
	OwnerUID       string
	Email          Email
	WhyUs          string
	OpeningHours   string

	Status           SubmissionStatus
	Paid             bool
	PaymentReference string
	RestaurantID     string
	RejectReason     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s *Submission) State() SubmissionState {
	return SubmissionState{Status: s.Status, Paid: s.Paid}
}

// PaymentDecision is the outcome of evaluating a payment webhook against a submission.
type PaymentDecision int

const (
	// PaymentApply marks the submission paid and stores the reference.
	PaymentApply PaymentDecision = iota
	// PaymentReplay means the call is an idempotent replay and must not write.
	PaymentReplay
	// PaymentIgnoredLate means payment arrived after rejection; nothing is written.
	PaymentIgnoredLate
)

// DecidePayment evaluates recordPayment(ref) against the current state without mutating it.
func (s *Submission) DecidePayment(ref string) (PaymentDecision, error) {
	if s.PaymentReference != "" && s.PaymentReference == ref {
		return PaymentReplay, nil
	}
	switch s.Status {
	case StatusPending:
		if s.Paid {
			return 0, fmt.Errorf("%w: submission %s", ErrDuplicatePayment, s.ID)
		}
		return PaymentApply, nil
	case StatusRejected:
		if !s.Paid {
			return PaymentIgnoredLate, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot record payment on %s submission %s", ErrInvalidTransition, s.Status, s.ID)
}

// CheckApprovable reports why the submission cannot be approved, if it cannot.
func (s *Submission) CheckApprovable() error {
	if s.Status != StatusPending {
		return fmt.Errorf("%w: submission %s is already %s", ErrInvalidTransition, s.ID, s.Status)
	}
	if !s.Paid {
		return fmt.Errorf("%w: submission %s", ErrPaymentRequired, s.ID)
	}
	return nil
}

// CheckRejectable reports why the submission cannot be rejected, if it cannot.
func (s *Submission) CheckRejectable() error {
	if s.Status != StatusPending {
		return fmt.Errorf("%w: submission %s is already %s", ErrInvalidTransition, s.ID, s.Status)
	}
	return nil
}

// SubmissionPatch lists the workflow fields a lifecycle step may change.
// Nil fields are left untouched.
type SubmissionPatch struct {
	Status           *SubmissionStatus
	Paid             *bool
	PaymentReference *string
	RestaurantID     *string
	RejectReason     *string
	UpdatedAt        time.Time
}

// Apply writes the patch onto s. UpdatedAt never moves backwards.
func (p SubmissionPatch) Apply(s *Submission) {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Paid != nil {
		s.Paid = *p.Paid
	}
	if p.PaymentReference != nil {
		s.PaymentReference = *p.PaymentReference
	}
	if p.RestaurantID != nil {
		s.RestaurantID = *p.RestaurantID
	}
	if p.RejectReason != nil {
		s.RejectReason = *p.RejectReason
	}
	if p.UpdatedAt.After(s.UpdatedAt) {
		s.UpdatedAt = p.UpdatedAt
	}
}
