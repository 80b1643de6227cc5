// Package memory provides process-local adapters used for development, the
// seed command and tests. Selected with STORE_BACKEND=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

// SubmissionRepository implements the admin SubmissionRepository port in memory.
type SubmissionRepository struct {
	mu    sync.RWMutex
	items map[string]*admindomain.Submission
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{items: make(map[string]*admindomain.Submission)}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *admindomain.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if _, exists := r.items[submission.ID]; exists {
		return fmt.Errorf("submission %s already exists", submission.ID)
	}
	r.items[submission.ID] = submission.Clone()
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*admindomain.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	submission, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	return submission.Clone(), nil
}

// FindByStatus returns matching submissions oldest first.
func (r *SubmissionRepository) FindByStatus(ctx context.Context, status admindomain.SubmissionStatus) ([]admindomain.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	result := make([]admindomain.Submission, 0)
	for _, submission := range r.items {
		if submission.Status == status {
			result = append(result, *submission.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update applies patch only while the stored (status, paid) still equals expected.
func (r *SubmissionRepository) Update(ctx context.Context, id string, expected admindomain.SubmissionState, patch admindomain.SubmissionPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	submission, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	if submission.State() != expected {
		return fmt.Errorf("%w: submission %s is %s, expected %s", admindomain.ErrStateConflict, id, submission.State(), expected)
	}
	patch.Apply(submission)
	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	delete(r.items, id)
	return nil
}
