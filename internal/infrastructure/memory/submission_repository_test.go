package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

func pendingSubmission(createdAt time.Time) *admindomain.Submission {
	return &admindomain.Submission{
		Name:      "Al-Madina",
		Cuisines:  admindomain.CuisineList{"Turkish"},
		Status:    admindomain.StatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestSubmissionRepository_CreateAssignsIDAndIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()

	sub := pendingSubmission(time.Now())
	require.NoError(t, repo.Create(ctx, sub))
	require.NotEmpty(t, sub.ID)

	sub.Cuisines[0] = "Mutated"
	got, err := repo.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, admindomain.Cuisine("Turkish"), got.Cuisines[0])

	got.Cuisines[0] = "Mutated again"
	again, err := repo.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, admindomain.Cuisine("Turkish"), again.Cuisines[0])
}

func TestSubmissionRepository_UpdateGuardsState(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	sub := pendingSubmission(time.Now())
	require.NoError(t, repo.Create(ctx, sub))

	paid := true
	ref := "pi_1"
	err := repo.Update(ctx, sub.ID, admindomain.SubmissionState{Status: admindomain.StatusPending, Paid: true}, admindomain.SubmissionPatch{Paid: &paid})
	require.ErrorIs(t, err, admindomain.ErrStateConflict)

	err = repo.Update(ctx, sub.ID, sub.State(), admindomain.SubmissionPatch{Paid: &paid, PaymentReference: &ref})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Equal(t, "pi_1", got.PaymentReference)

	err = repo.Update(ctx, "missing", sub.State(), admindomain.SubmissionPatch{})
	require.ErrorIs(t, err, admindomain.ErrNotFound)
}

func TestSubmissionRepository_FindByStatusOrdersOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	newer := pendingSubmission(base.Add(time.Hour))
	older := pendingSubmission(base)
	rejected := pendingSubmission(base)
	rejected.Status = admindomain.StatusRejected
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, rejected))

	pending, err := repo.FindByStatus(ctx, admindomain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, older.ID, pending[0].ID)
	assert.Equal(t, newer.ID, pending[1].ID)
}

func TestSubmissionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	sub := pendingSubmission(time.Now())
	require.NoError(t, repo.Create(ctx, sub))

	require.NoError(t, repo.Delete(ctx, sub.ID))
	_, err := repo.FindByID(ctx, sub.ID)
	require.ErrorIs(t, err, admindomain.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, sub.ID), admindomain.ErrNotFound)
}
