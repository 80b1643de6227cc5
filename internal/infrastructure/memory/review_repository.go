package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// ReviewRepository implements the public ReviewRepository port.
type ReviewRepository struct {
	store *RestaurantStore
}

func (r *ReviewRepository) Create(ctx context.Context, review *publicdomain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[review.RestaurantID]; !ok {
		return fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, review.RestaurantID)
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	stored := *review
	stored.Photos = append([]string(nil), review.Photos...)
	s.reviews[review.RestaurantID] = append(s.reviews[review.RestaurantID], stored)
	return nil
}

// FindByRestaurant returns reviews in insertion order.
func (r *ReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]publicdomain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored := r.store.reviews[restaurantID]
	result := make([]publicdomain.Review, 0, len(stored))
	for _, review := range stored {
		review.Photos = append([]string(nil), review.Photos...)
		result = append(result, review)
	}
	return result, nil
}

func (r *ReviewRepository) RecalculateRating(ctx context.Context, restaurantID string) (publicdomain.RatingSummary, error) {
	if err := ctx.Err(); err != nil {
		return publicdomain.RatingSummary{}, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	restaurant, ok := s.byID[restaurantID]
	if !ok {
		return publicdomain.RatingSummary{}, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, restaurantID)
	}
	ratings := make([]int, 0, len(s.reviews[restaurantID]))
	for _, review := range s.reviews[restaurantID] {
		ratings = append(ratings, review.Rating)
	}
	summary := publicdomain.Summarize(ratings)
	restaurant.RatingAvg = summary.Avg
	restaurant.RatingCount = summary.Count
	if now := s.now().UTC(); now.After(restaurant.UpdatedAt) {
		restaurant.UpdatedAt = now
	}
	return summary, nil
}
