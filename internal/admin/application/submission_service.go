package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

type submissionService struct {
	repo SubmissionRepository
	now  func() time.Time
}

func NewSubmissionService(repo SubmissionRepository, now func() time.Time) SubmissionService {
	if now == nil {
		now = time.Now
	}
	return &submissionService{repo: repo, now: now}
}

func (s *submissionService) Submit(ctx context.Context, cmd SubmitCommand) (*admindomain.Submission, error) {
	submission, err := buildSubmission(cmd)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	submission.CreatedAt = now
	submission.UpdatedAt = now
	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return submission, nil
}

func (s *submissionService) List(ctx context.Context, filter SubmissionFilter) ([]admindomain.Submission, error) {
	status := filter.Status
	if status == "" {
		status = admindomain.StatusPending
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *submissionService) Detail(ctx context.Context, id string) (*admindomain.Submission, error) {
	return s.repo.FindByID(ctx, strings.TrimSpace(id))
}

// DetailForOwner hides submissions owned by someone else behind ErrNotFound.
func (s *submissionService) DetailForOwner(ctx context.Context, id, ownerUID string) (*admindomain.Submission, error) {
	submission, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if ownerUID == "" || submission.OwnerUID != ownerUID {
		return nil, fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	return submission, nil
}
