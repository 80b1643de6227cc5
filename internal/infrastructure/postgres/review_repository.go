package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// ReviewRepository stores reviews and keeps restaurants.rating_* in step.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *publicdomain.Review) error {
	photos, err := json.Marshal(append([]string{}, review.Photos...))
	if err != nil {
		return err
	}
	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, restaurant_id, uid, display_name, rating, body, photos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, review.RestaurantID, review.UID, review.DisplayName, review.Rating, review.Text, photos, review.CreatedAt,
	)
	if hasCode(err, foreignKeyViolation) {
		return fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, review.RestaurantID)
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	review.ID = id
	return nil
}

// FindByRestaurant returns reviews newest first.
func (r *ReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]publicdomain.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, restaurant_id, uid, display_name, rating, body, photos, created_at
		FROM reviews WHERE restaurant_id = $1 ORDER BY created_at DESC, id DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]publicdomain.Review, 0)
	for rows.Next() {
		var (
			review publicdomain.Review
			photos []byte
		)
		if err := rows.Scan(&review.ID, &review.RestaurantID, &review.UID, &review.DisplayName, &review.Rating, &review.Text, &photos, &review.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(photos, &review.Photos); err != nil {
			return nil, fmt.Errorf("decode review %s photos: %w", review.ID, err)
		}
		review.CreatedAt = review.CreatedAt.UTC()
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// RecalculateRating rebuilds the aggregate from the reviews table in one statement.
func (r *ReviewRepository) RecalculateRating(ctx context.Context, restaurantID string) (publicdomain.RatingSummary, error) {
	var summary publicdomain.RatingSummary
	err := r.db.QueryRowContext(ctx, `
		UPDATE restaurants SET
			rating_avg   = agg.avg,
			rating_count = agg.cnt,
			updated_at   = now()
		FROM (
			SELECT COALESCE(AVG(rating), 0)::float8 AS avg, COUNT(*)::int AS cnt
			FROM reviews WHERE restaurant_id = $1
		) AS agg
		WHERE restaurants.id = $1
		RETURNING restaurants.rating_avg, restaurants.rating_count`, restaurantID,
	).Scan(&summary.Avg, &summary.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return publicdomain.RatingSummary{}, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, restaurantID)
	}
	if err != nil {
		return publicdomain.RatingSummary{}, err
	}
	return summary, nil
}
