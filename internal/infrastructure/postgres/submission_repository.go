package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

// SubmissionRepository implements the admin SubmissionRepository port.
type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, owner_uid, status, paid, payment_reference, restaurant_id, reject_reason, content, created_at, updated_at`

func (r *SubmissionRepository) Create(ctx context.Context, submission *admindomain.Submission) error {
	content, err := json.Marshal(submissionContent(submission))
	if err != nil {
		return fmt.Errorf("encode submission content: %w", err)
	}
	id := submission.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO submissions (`+submissionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, submission.OwnerUID, string(submission.Status), submission.Paid, submission.PaymentReference,
		submission.RestaurantID, submission.RejectReason, content, submission.CreatedAt, submission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	submission.ID = id
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*admindomain.Submission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	submission, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// FindByStatus returns submissions oldest first.
func (r *SubmissionRepository) FindByStatus(ctx context.Context, status admindomain.SubmissionStatus) ([]admindomain.Submission, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE status = $1 ORDER BY created_at, id`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]admindomain.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *submission)
	}
	return submissions, rows.Err()
}

// Update applies patch only while (status, paid) still equals expected.
// updated_at only moves forward.
func (r *SubmissionRepository) Update(ctx context.Context, id string, expected admindomain.SubmissionState, patch admindomain.SubmissionPatch) error {
	var (
		status       sql.NullString
		paid         sql.NullBool
		paymentRef   sql.NullString
		restaurantID sql.NullString
		rejectReason sql.NullString
		updatedAt    sql.NullTime
	)
	if patch.Status != nil {
		status = sql.NullString{String: string(*patch.Status), Valid: true}
	}
	if patch.Paid != nil {
		paid = sql.NullBool{Bool: *patch.Paid, Valid: true}
	}
	if patch.PaymentReference != nil {
		paymentRef = sql.NullString{String: *patch.PaymentReference, Valid: true}
	}
	if patch.RestaurantID != nil {
		restaurantID = sql.NullString{String: *patch.RestaurantID, Valid: true}
	}
	if patch.RejectReason != nil {
		rejectReason = sql.NullString{String: *patch.RejectReason, Valid: true}
	}
	if !patch.UpdatedAt.IsZero() {
		updatedAt = sql.NullTime{Time: patch.UpdatedAt, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE submissions SET
			status            = COALESCE($4, status),
			paid              = COALESCE($5, paid),
			payment_reference = COALESCE($6, payment_reference),
			restaurant_id     = COALESCE($7, restaurant_id),
			reject_reason     = COALESCE($8, reject_reason),
			updated_at        = GREATEST(updated_at, COALESCE($9, updated_at))
		WHERE id = $1 AND status = $2 AND paid = $3`,
		id, string(expected.Status), expected.Paid,
		status, paid, paymentRef, restaurantID, rejectReason, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM submissions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: submission %s no longer %s", admindomain.ErrStateConflict, id, expected)
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete submission %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*admindomain.Submission, error) {
	var (
		submission admindomain.Submission
		status     string
		raw        []byte
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(
		&submission.ID, &submission.OwnerUID, &status, &submission.Paid, &submission.PaymentReference,
		&submission.RestaurantID, &submission.RejectReason, &raw, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	var content listingContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("decode submission %s content: %w", submission.ID, err)
	}
	content.applyToSubmission(&submission)
	submission.Status = admindomain.SubmissionStatus(status)
	submission.CreatedAt = createdAt.UTC()
	submission.UpdatedAt = updatedAt.UTC()
	return &submission, nil
}
