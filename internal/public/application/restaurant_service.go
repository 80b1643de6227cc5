package application

import (
	"context"
	"strings"

	"github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

type restaurantQueryService struct {
	repo RestaurantRepository
}

func NewRestaurantQueryService(repo RestaurantRepository) RestaurantQueryService {
	return &restaurantQueryService{repo: repo}
}

func (s *restaurantQueryService) Detail(ctx context.Context, id string) (*domain.Restaurant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "restaurant id is required")
	}
	return s.repo.FindByID(ctx, id)
}
