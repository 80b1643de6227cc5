package application

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

const (
	maxReviewTextLength = 2000
	maxReviewPhotos     = 5
)

type reviewCommandService struct {
	restaurants RestaurantRepository
	reviews     ReviewRepository
	now         func() time.Time
}

// NewReviewCommandService creates the review write service.
func NewReviewCommandService(restaurants RestaurantRepository, reviews ReviewRepository, now func() time.Time) ReviewCommandService {
	if now == nil {
		now = time.Now
	}
	return &reviewCommandService{restaurants: restaurants, reviews: reviews, now: now}
}

// Submit stores the review and recomputes the restaurant's rating aggregate.
func (s *reviewCommandService) Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, domain.RatingSummary, error) {
	review, err := buildReview(cmd)
	if err != nil {
		return nil, domain.RatingSummary{}, err
	}
	if _, err := s.restaurants.FindByID(ctx, review.RestaurantID); err != nil {
		return nil, domain.RatingSummary{}, err
	}

	review.CreatedAt = s.now().UTC()
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, domain.RatingSummary{}, fmt.Errorf("create review: %w", err)
	}

	summary, err := s.reviews.RecalculateRating(context.WithoutCancel(ctx), review.RestaurantID)
	if err != nil {
		return review, domain.RatingSummary{}, fmt.Errorf("recalculate rating for restaurant %s: %w", review.RestaurantID, err)
	}
	return review, summary, nil
}

func buildReview(cmd SubmitReviewCommand) (*domain.Review, error) {
	restaurantID := strings.TrimSpace(cmd.RestaurantID)
	if restaurantID == "" {
		return nil, domain.NewValidationError("restaurantId", "restaurant id is required")
	}
	uid := strings.TrimSpace(cmd.UID)
	if uid == "" {
		return nil, domain.NewValidationError("uid", "reviewer is required")
	}
	if cmd.Rating < domain.MinReviewRating || cmd.Rating > domain.MaxReviewRating {
		return nil, domain.NewValidationError("rating", "rating must be between %d and %d", domain.MinReviewRating, domain.MaxReviewRating)
	}
	text := strings.TrimSpace(cmd.Text)
	if utf8.RuneCountInString(text) > maxReviewTextLength {
		return nil, domain.NewValidationError("text", "text must be at most %d characters", maxReviewTextLength)
	}
	if len(cmd.Photos) > maxReviewPhotos {
		return nil, domain.NewValidationError("photos", "at most %d photos are allowed", maxReviewPhotos)
	}
	photos := make([]string, 0, len(cmd.Photos))
	for _, raw := range cmd.Photos {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, domain.NewValidationError("photos", "invalid photo url %q", raw)
		}
		photos = append(photos, raw)
	}

	displayName := strings.TrimSpace(cmd.DisplayName)
	if displayName == "" {
		displayName = "Anonymous"
	}

	return &domain.Review{
		RestaurantID: restaurantID,
		UID:          uid,
		DisplayName:  displayName,
		Rating:       cmd.Rating,
		Text:         text,
		Photos:       photos,
	}, nil
}

type reviewQueryService struct {
	reviews ReviewRepository
}

func NewReviewQueryService(reviews ReviewRepository) ReviewQueryService {
	return &reviewQueryService{reviews: reviews}
}

func (s *reviewQueryService) List(ctx context.Context, restaurantID string) ([]domain.Review, error) {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return nil, domain.NewValidationError("restaurantId", "restaurant id is required")
	}
	reviews, err := s.reviews.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews, nil
}
