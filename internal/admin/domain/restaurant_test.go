package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
)

func fullSubmission() *Submission {
	return &Submission{
		ID:             "sub-1",
		Name:           "Al-Madina Restaurant",
		Cuisines:       CuisineList{"Pakistani", "Indian"},
		Address:        "123 Ladypool Road, Birmingham",
		Postcode:       "B11 1JA",
		Location:       geo.Coordinate{Lat: 52.4625, Lng: -1.8848},
		Phone:          "0121 449 0712",
		Website:        "https://al-madina.example",
		HalalCertified: true,
		HygieneRating:  "5",
		Menu: []MenuSection{{
			Section: "Grills",
			Items:   []MenuItem{{Name: "Mixed Grill", Price: 14.5}},
		}},
		BestItems: []BestItem{{ID: "1", Name: "Lamb Biryani", Price: 12.99, ImageURL: "https://img.example/1.jpg"}},
		Socials:   SocialLinks{Instagram: "https://instagram.com/almadina", Facebook: "https://facebook.com/almadina"},
		Gallery:   URLList{"https://img.example/a.jpg"},
		Videos:    URLList{"https://youtube.com/watch?v=1"},
		OwnerUID:  "owner-1",
		Email:     "owner@example.com",
		Status:    StatusPending,
		Paid:      true,
	}
}

func TestNewRestaurantFromSubmissionCopiesListingContent(t *testing.T) {
	sub := fullSubmission()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	r := NewRestaurantFromSubmission(sub, now)

	assert.Empty(t, r.ID)
	assert.Equal(t, sub.ID, r.SubmissionID)
	assert.Equal(t, sub.Name, r.Name)
	assert.Equal(t, sub.Cuisines, r.Cuisines)
	assert.Equal(t, sub.Address, r.Address)
	assert.Equal(t, sub.Postcode, r.Postcode)
	assert.Equal(t, sub.Location, r.Location)
	assert.Equal(t, sub.Phone, r.Phone)
	assert.Equal(t, sub.Website, r.Website)
	assert.Equal(t, sub.HalalCertified, r.HalalCertified)
	assert.Equal(t, sub.Menu, r.Menu)
	assert.Equal(t, sub.BestItems, r.BestItems)
	assert.Equal(t, sub.Socials, r.Socials)
	assert.Equal(t, sub.Gallery, r.Gallery)
	assert.Equal(t, sub.Videos, r.Videos)
	assert.Equal(t, sub.OwnerUID, r.OwnerUID)
	assert.Zero(t, r.RatingAvg)
	assert.Zero(t, r.RatingCount)
	assert.Equal(t, now, r.CreatedAt)
	assert.Equal(t, now, r.UpdatedAt)
}

func TestNewRestaurantFromSubmissionIsASnapshot(t *testing.T) {
	sub := fullSubmission()
	r := NewRestaurantFromSubmission(sub, time.Now())

	sub.Cuisines[0] = "Turkish"
	sub.Menu[0].Items[0].Name = "Changed"
	sub.Gallery[0] = "https://img.example/other.jpg"

	assert.Equal(t, Cuisine("Pakistani"), r.Cuisines[0])
	assert.Equal(t, "Mixed Grill", r.Menu[0].Items[0].Name)
	assert.Equal(t, URL("https://img.example/a.jpg"), r.Gallery[0])
}
