package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

func TestReviewRepository_RecalculateRatingStampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	published := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	now := published.Add(2 * time.Hour)
	store := NewRestaurantStoreWithClock(func() time.Time { return now })
	admin := store.Admin()

	restaurant := &admindomain.Restaurant{SubmissionID: "sub-1", Name: "Al-Madina", UpdatedAt: published}
	require.NoError(t, admin.Create(ctx, restaurant))

	reviews := store.Reviews()
	require.NoError(t, reviews.Create(ctx, &publicdomain.Review{RestaurantID: restaurant.ID, UID: "u1", Rating: 4}))
	require.NoError(t, reviews.Create(ctx, &publicdomain.Review{RestaurantID: restaurant.ID, UID: "u2", Rating: 5}))

	summary, err := reviews.RecalculateRating(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 4.5, summary.Avg, 1e-9)

	stored, err := admin.FindByID(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, now, stored.UpdatedAt)
	assert.Equal(t, 2, stored.RatingCount)
}

func TestReviewRepository_RecalculateRatingNeverMovesUpdatedAtBack(t *testing.T) {
	ctx := context.Background()
	published := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	store := NewRestaurantStoreWithClock(func() time.Time { return published.Add(-time.Minute) })
	admin := store.Admin()

	restaurant := &admindomain.Restaurant{SubmissionID: "sub-1", Name: "Al-Madina", UpdatedAt: published}
	require.NoError(t, admin.Create(ctx, restaurant))

	_, err := store.Reviews().RecalculateRating(ctx, restaurant.ID)
	require.NoError(t, err)

	stored, err := admin.FindByID(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, published, stored.UpdatedAt)
}

func TestReviewRepository_RecalculateRatingUnknownRestaurant(t *testing.T) {
	_, err := NewRestaurantStore().Reviews().RecalculateRating(context.Background(), "missing")
	assert.ErrorIs(t, err, publicdomain.ErrNotFound)
}
