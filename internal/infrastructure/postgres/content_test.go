package postgres

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	"github.com/sngm3741/halal-food-club/api/internal/geo"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

func TestListingContentRoundTrip(t *testing.T) {
	sub := &admindomain.Submission{
		Name:          "Al-Madina",
		Cuisines:      admindomain.CuisineList{"Turkish"},
		Postcode:      "B11 1JA",
		Location:      geo.Coordinate{Lat: 52.4625, Lng: -1.8848},
		HygieneRating: "4",
		BestItems:     []admindomain.BestItem{{Name: "Adana", Price: 12.5, ImageURL: "https://img.example/a.jpg"}},
		Socials:       admindomain.SocialLinks{TikTok: "https://tiktok.com/@almadina"},
		Videos:        admindomain.URLList{"https://youtube.com/watch?v=1"},
		Email:         "owner@almadina.example",
	}

	raw, err := json.Marshal(submissionContent(sub))
	require.NoError(t, err)

	var content listingContent
	require.NoError(t, json.Unmarshal(raw, &content))
	var got admindomain.Submission
	content.applyToSubmission(&got)
	assert.Equal(t, *sub, got)

	var view publicdomain.Restaurant
	content.applyToPublic(&view)
	assert.Equal(t, "https://tiktok.com/@almadina", view.Socials.TikTok)
	assert.Equal(t, 12.5, view.BestItems[0].Price)
	assert.Equal(t, []string{"https://youtube.com/watch?v=1"}, view.Videos)
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: uniqueViolation})
	assert.True(t, hasCode(err, uniqueViolation))
	assert.False(t, hasCode(err, foreignKeyViolation))
	assert.False(t, hasCode(fmt.Errorf("plain"), uniqueViolation))
}
