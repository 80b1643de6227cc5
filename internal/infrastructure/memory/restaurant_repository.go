package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// RestaurantStore holds published restaurants and their reviews. The admin
// side writes through Admin(), consumers read through Public() and Reviews().
type RestaurantStore struct {
	mu           sync.RWMutex
	byID         map[string]*admindomain.Restaurant
	bySubmission map[string]string
	reviews      map[string][]publicdomain.Review
	now          func() time.Time
}

func NewRestaurantStore() *RestaurantStore {
	return NewRestaurantStoreWithClock(time.Now)
}

// NewRestaurantStoreWithClock stamps rating updates with now instead of the wall clock.
func NewRestaurantStoreWithClock(now func() time.Time) *RestaurantStore {
	if now == nil {
		now = time.Now
	}
	return &RestaurantStore{
		byID:         make(map[string]*admindomain.Restaurant),
		bySubmission: make(map[string]string),
		reviews:      make(map[string][]publicdomain.Review),
		now:          now,
	}
}

// Admin returns the lifecycle-facing repository.
func (s *RestaurantStore) Admin() *AdminRestaurantRepository {
	return &AdminRestaurantRepository{store: s}
}

// Public returns the discovery-facing repository.
func (s *RestaurantStore) Public() *PublicRestaurantRepository {
	return &PublicRestaurantRepository{store: s}
}

// Reviews returns the review repository.
func (s *RestaurantStore) Reviews() *ReviewRepository {
	return &ReviewRepository{store: s}
}

// AdminRestaurantRepository implements the admin RestaurantRepository port.
type AdminRestaurantRepository struct {
	store *RestaurantStore
}

// Create stores restaurant, enforcing one restaurant per submission.
func (r *AdminRestaurantRepository) Create(ctx context.Context, restaurant *admindomain.Restaurant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.bySubmission[restaurant.SubmissionID]; ok && restaurant.SubmissionID != "" {
		return fmt.Errorf("%w: submission %s is restaurant %s", admindomain.ErrAlreadyPublished, restaurant.SubmissionID, existing)
	}
	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	s.byID[restaurant.ID] = restaurant.Clone()
	if restaurant.SubmissionID != "" {
		s.bySubmission[restaurant.SubmissionID] = restaurant.ID
	}
	return nil
}

func (r *AdminRestaurantRepository) FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	restaurant, ok := r.store.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: restaurant %s", admindomain.ErrNotFound, id)
	}
	return restaurant.Clone(), nil
}

func (r *AdminRestaurantRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*admindomain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.bySubmission[submissionID]
	if !ok {
		return nil, fmt.Errorf("%w: restaurant for submission %s", admindomain.ErrNotFound, submissionID)
	}
	return r.store.byID[id].Clone(), nil
}

// Count reports how many restaurants are stored.
func (r *AdminRestaurantRepository) Count() int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.byID)
}

// PublicRestaurantRepository implements the public RestaurantRepository port.
type PublicRestaurantRepository struct {
	store *RestaurantStore
}

// FindAll returns every published restaurant ordered by id.
func (r *PublicRestaurantRepository) FindAll(ctx context.Context) ([]publicdomain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	result := make([]publicdomain.Restaurant, 0, len(r.store.byID))
	for _, restaurant := range r.store.byID {
		result = append(result, toPublicRestaurant(restaurant))
	}
	r.store.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *PublicRestaurantRepository) FindByID(ctx context.Context, id string) (*publicdomain.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	restaurant, ok := r.store.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, id)
	}
	view := toPublicRestaurant(restaurant)
	return &view, nil
}

func toPublicRestaurant(r *admindomain.Restaurant) publicdomain.Restaurant {
	menu := make([]publicdomain.MenuSection, 0, len(r.Menu))
	for _, section := range r.Menu {
		items := make([]publicdomain.MenuItem, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, publicdomain.MenuItem{
				Name:        item.Name,
				Price:       item.Price.Float64(),
				Description: item.Description,
			})
		}
		menu = append(menu, publicdomain.MenuSection{Section: section.Section, Items: items})
	}
	bestItems := make([]publicdomain.BestItem, 0, len(r.BestItems))
	for _, item := range r.BestItems {
		bestItems = append(bestItems, publicdomain.BestItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price.Float64(),
			ImageURL:    item.ImageURL.String(),
			Description: item.Description,
		})
	}

	return publicdomain.Restaurant{
		ID:             r.ID,
		SubmissionID:   r.SubmissionID,
		Name:           r.Name,
		Cuisines:       r.Cuisines.Strings(),
		Address:        r.Address,
		Postcode:       r.Postcode.String(),
		Location:       r.Location,
		Phone:          r.Phone.String(),
		Website:        r.Website.String(),
		HalalCertified: r.HalalCertified,
		Menu:           menu,
		BestItems:      bestItems,
		Socials: publicdomain.SocialLinks{
			Instagram: r.Socials.Instagram.String(),
			TikTok:    r.Socials.TikTok.String(),
			YouTube:   r.Socials.YouTube.String(),
			Facebook:  r.Socials.Facebook.String(),
		},
		Gallery:     r.Gallery.Strings(),
		Videos:      r.Videos.Strings(),
		OwnerUID:    r.OwnerUID,
		RatingAvg:   r.RatingAvg,
		RatingCount: r.RatingCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
