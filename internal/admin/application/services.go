package application

import (
	"context"
	"time"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

// SubmissionRepository persists submissions. Update is guarded by the expected
// (status, paid) pair and fails with ErrStateConflict when it no longer matches.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *admindomain.Submission) error
	FindByID(ctx context.Context, id string) (*admindomain.Submission, error)
	FindByStatus(ctx context.Context, status admindomain.SubmissionStatus) ([]admindomain.Submission, error)
	Update(ctx context.Context, id string, expected admindomain.SubmissionState, patch admindomain.SubmissionPatch) error
	Delete(ctx context.Context, id string) error
}

// RestaurantRepository persists published restaurants. Create fails with
// ErrAlreadyPublished when a restaurant already exists for the same submission.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *admindomain.Restaurant) error
	FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error)
	FindBySubmissionID(ctx context.Context, submissionID string) (*admindomain.Restaurant, error)
}

// Locker serialises work on a single key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// EventPublisher forwards lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
}

// Notifier tells moderators that a paid submission is waiting for review.
type Notifier interface {
	NotifyAwaitingReview(ctx context.Context, submission admindomain.Submission) error
}

// SubmissionFilter expresses moderator listing criteria.
type SubmissionFilter struct {
	Status admindomain.SubmissionStatus
}

// SubmissionService describes submission intake and moderator read use-cases.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitCommand) (*admindomain.Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]admindomain.Submission, error)
	Detail(ctx context.Context, id string) (*admindomain.Submission, error)
	DetailForOwner(ctx context.Context, id, ownerUID string) (*admindomain.Submission, error)
}

// LifecycleService drives a submission from payment through moderation to publication.
type LifecycleService interface {
	RecordPayment(ctx context.Context, submissionID, paymentReference string) (*admindomain.Submission, error)
	Approve(ctx context.Context, submissionID string) (*admindomain.Restaurant, error)
	Reject(ctx context.Context, submissionID, reason string) (*admindomain.Submission, error)
	PurgeRejectedOlderThan(ctx context.Context, cutoff time.Time) (PurgeReport, error)
}

// PurgeReport summarises one retention sweep.
type PurgeReport struct {
	Scanned int
	Deleted int
	Failed  []string
}

// SubmitCommand contains the listing content a business submits.
type SubmitCommand struct {
	OwnerUID       string   `validate:"required"`
	Name           string   `validate:"required,max=120"`
	Cuisines       []string `validate:"required,min=1,max=10,dive,required"`
	Address        string   `validate:"required,max=300"`
	Postcode       string   `validate:"required"`
	Lat            float64  `validate:"latitude"`
	Lng            float64  `validate:"longitude"`
	Phone          string   `validate:"required"`
	Website        string   `validate:"omitempty,url"`
	HalalCertified bool
	HygieneRating  string               `validate:"required"`
	Menu           []MenuSectionCommand `validate:"max=30,dive"`
	BestItems      []BestItemCommand    `validate:"max=10,dive"`
	Socials        SocialsCommand
	Gallery        []string `validate:"max=10"`
	Videos         []string `validate:"max=5"`
	Email          string   `validate:"omitempty,email"`
	WhyUs          string   `validate:"max=2000"`
	OpeningHours   string   `validate:"max=500"`
}

// MenuSectionCommand is one headed group of menu items.
type MenuSectionCommand struct {
	Section string            `validate:"required,max=80"`
	Items   []MenuItemCommand `validate:"max=100,dive"`
}

type MenuItemCommand struct {
	Name        string  `validate:"required,max=120"`
	Price       float64 `validate:"gte=0"`
	Description string  `validate:"max=500"`
}

type BestItemCommand struct {
	ID          string
	Name        string  `validate:"required,max=120"`
	Price       float64 `validate:"gte=0"`
	ImageURL    string  `validate:"omitempty,url"`
	Description string  `validate:"max=500"`
}

type SocialsCommand struct {
	Instagram string `validate:"omitempty,url"`
	TikTok    string `validate:"omitempty,url"`
	YouTube   string `validate:"omitempty,url"`
	Facebook  string `validate:"omitempty,url"`
}

// LifecycleDeps wires the collaborators of the lifecycle service.
type LifecycleDeps struct {
	Submissions SubmissionRepository
	Restaurants RestaurantRepository
	Locker      Locker
	Events      EventPublisher
	Notifier    Notifier
	Logger      Logger
	Now         func() time.Time
}

// Logger is the subset of *log.Logger the services use.
type Logger interface {
	Printf(format string, v ...any)
}
