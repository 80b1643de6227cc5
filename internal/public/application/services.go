package application

import (
	"context"

	"github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// RestaurantRepository abstracts read access to published restaurants.
type RestaurantRepository interface {
	FindAll(ctx context.Context) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
}

// ReviewRepository stores reviews and keeps the restaurant rating aggregate in step.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByRestaurant(ctx context.Context, restaurantID string) ([]domain.Review, error)
	// RecalculateRating rebuilds the restaurant's ratingAvg/ratingCount from its reviews.
	RecalculateRating(ctx context.Context, restaurantID string) (domain.RatingSummary, error)
}

// Paging controls pagination of discovery results.
type Paging struct {
	Offset int
	Limit  int
}

// SearchResult is one page of discovery matches.
type SearchResult struct {
	Items []domain.Match
	Total int
}

// DiscoveryService answers consumer map searches.
type DiscoveryService interface {
	Search(ctx context.Context, query domain.DiscoveryQuery, paging Paging) (SearchResult, error)
}

// RestaurantQueryService describes restaurant read use-cases.
type RestaurantQueryService interface {
	Detail(ctx context.Context, id string) (*domain.Restaurant, error)
}

// ReviewCommandService handles review writes.
type ReviewCommandService interface {
	Submit(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, domain.RatingSummary, error)
}

// ReviewQueryService lists reviews for a restaurant, newest first.
type ReviewQueryService interface {
	List(ctx context.Context, restaurantID string) ([]domain.Review, error)
}

// SubmitReviewCommand captures an authenticated consumer's review.
type SubmitReviewCommand struct {
	RestaurantID string
	UID          string
	DisplayName  string
	Rating       int
	Text         string
	Photos       []string
}
