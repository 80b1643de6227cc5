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
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

const restaurantColumns = `id, submission_id, owner_uid, content, rating_avg, rating_count, created_at, updated_at`

// AdminRestaurantRepository is the lifecycle-facing restaurant repository.
type AdminRestaurantRepository struct {
	db *sql.DB
}

func NewAdminRestaurantRepository(db *sql.DB) *AdminRestaurantRepository {
	return &AdminRestaurantRepository{db: db}
}

// Create inserts restaurant. The UNIQUE submission_id column reports a second
// publication of the same submission as ErrAlreadyPublished.
func (r *AdminRestaurantRepository) Create(ctx context.Context, restaurant *admindomain.Restaurant) error {
	content, err := json.Marshal(restaurantContent(restaurant))
	if err != nil {
		return fmt.Errorf("encode restaurant content: %w", err)
	}
	id := restaurant.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO restaurants (id, submission_id, owner_uid, lat, lng, content, rating_avg, rating_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, restaurant.SubmissionID, restaurant.OwnerUID, restaurant.Location.Lat, restaurant.Location.Lng,
		content, restaurant.RatingAvg, restaurant.RatingCount, restaurant.CreatedAt, restaurant.UpdatedAt,
	)
	if hasCode(err, uniqueViolation) {
		return fmt.Errorf("%w: submission %s", admindomain.ErrAlreadyPublished, restaurant.SubmissionID)
	}
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	restaurant.ID = id
	return nil
}

func (r *AdminRestaurantRepository) FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	return r.findOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id, "restaurant "+id)
}

func (r *AdminRestaurantRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*admindomain.Restaurant, error) {
	return r.findOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE submission_id = $1`, submissionID, "restaurant for submission "+submissionID)
}

func (r *AdminRestaurantRepository) findOne(ctx context.Context, query, arg, what string) (*admindomain.Restaurant, error) {
	row, err := scanRestaurant(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", admindomain.ErrNotFound, what)
	}
	if err != nil {
		return nil, err
	}
	restaurant := admindomain.Restaurant{
		ID:           row.id,
		SubmissionID: row.submissionID,
		OwnerUID:     row.ownerUID,
		RatingAvg:    row.ratingAvg,
		RatingCount:  row.ratingCount,
		CreatedAt:    row.createdAt,
		UpdatedAt:    row.updatedAt,
	}
	row.content.applyToRestaurant(&restaurant)
	return &restaurant, nil
}

// PublicRestaurantRepository serves the discovery read model.
type PublicRestaurantRepository struct {
	db *sql.DB
}

func NewPublicRestaurantRepository(db *sql.DB) *PublicRestaurantRepository {
	return &PublicRestaurantRepository{db: db}
}

func (r *PublicRestaurantRepository) FindAll(ctx context.Context) ([]publicdomain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := make([]publicdomain.Restaurant, 0)
	for rows.Next() {
		row, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, row.public())
	}
	return restaurants, rows.Err()
}

func (r *PublicRestaurantRepository) FindByID(ctx context.Context, id string) (*publicdomain.Restaurant, error) {
	row, err := scanRestaurant(r.db.QueryRowContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	restaurant := row.public()
	return &restaurant, nil
}

type restaurantRow struct {
	id           string
	submissionID string
	ownerUID     string
	content      listingContent
	ratingAvg    float64
	ratingCount  int
	createdAt    time.Time
	updatedAt    time.Time
}

func scanRestaurant(s scanner) (restaurantRow, error) {
	var (
		row restaurantRow
		raw []byte
	)
	if err := s.Scan(&row.id, &row.submissionID, &row.ownerUID, &raw, &row.ratingAvg, &row.ratingCount, &row.createdAt, &row.updatedAt); err != nil {
		return restaurantRow{}, err
	}
	if err := json.Unmarshal(raw, &row.content); err != nil {
		return restaurantRow{}, fmt.Errorf("decode restaurant %s content: %w", row.id, err)
	}
	row.createdAt = row.createdAt.UTC()
	row.updatedAt = row.updatedAt.UTC()
	return row, nil
}

func (row restaurantRow) public() publicdomain.Restaurant {
	restaurant := publicdomain.Restaurant{
		ID:           row.id,
		SubmissionID: row.submissionID,
		OwnerUID:     row.ownerUID,
		RatingAvg:    row.ratingAvg,
		RatingCount:  row.ratingCount,
		CreatedAt:    row.createdAt,
		UpdatedAt:    row.updatedAt,
	}
	row.content.applyToPublic(&restaurant)
	return restaurant
}
