package domain

import (
	"time"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
)

// Restaurant represents a published, publicly discoverable listing.
type Restaurant struct {
	ID             string
	SubmissionID   string
	Name           string
	Cuisines       []string
	Address        string
	Postcode       string
	Location       geo.Coordinate
	Phone          string
	Website        string
	HalalCertified bool
	Menu           []MenuSection
	BestItems      []BestItem
	Socials        SocialLinks
	Gallery        []string
	Videos         []string
	OwnerUID       string
	RatingAvg      float64
	RatingCount    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SocialLinks defines the listing's social profiles.
type SocialLinks struct {
	Instagram string
	TikTok    string
	YouTube   string
	Facebook  string
}

type MenuSection struct {
	Section string
	Items   []MenuItem
}

type MenuItem struct {
	Name        string
	Price       float64
	Description string
}

type BestItem struct {
	ID          string
	Name        string
	Price       float64
	ImageURL    string
	Description string
}
