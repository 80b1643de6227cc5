package domain

import (
	"time"

	"github.com/sngm3741/halal-food-club/api/internal/geo"
)

// Restaurant is the published listing written once when a submission is approved.
type Restaurant struct {
	ID             string
	SubmissionID   string
	Name           string
	Cuisines       CuisineList
	Address        string
	Postcode       Postcode
	Location       geo.Coordinate
	Phone          Phone
	Website        URL
	HalalCertified bool
	Menu           []MenuSection
	BestItems      []BestItem
	Socials        SocialLinks
	Gallery        URLList
	Videos         URLList
	OwnerUID       string
	RatingAvg      float64
	RatingCount    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewRestaurantFromSubmission snapshots the listing content of sub into a new Restaurant.
// Every copied field is listed here; workflow-only fields (status, payment, hygiene
// rating, contact email, why-us, opening hours) stay on the submission.
// The ID is left empty for the repository to assign.
func NewRestaurantFromSubmission(sub *Submission, now time.Time) *Restaurant {
	return &Restaurant{
		SubmissionID:   sub.ID,
		Name:           sub.Name,
		Cuisines:       append(CuisineList(nil), sub.Cuisines...),
		Address:        sub.Address,
		Postcode:       sub.Postcode,
		Location:       sub.Location,
		Phone:          sub.Phone,
		Website:        sub.Website,
		HalalCertified: sub.HalalCertified,
		Menu:           cloneMenu(sub.Menu),
		BestItems:      append([]BestItem(nil), sub.BestItems...),
		Socials: SocialLinks{
			Instagram: sub.Socials.Instagram,
			TikTok:    sub.Socials.TikTok,
			YouTube:   sub.Socials.YouTube,
			Facebook:  sub.Socials.Facebook,
		},
		Gallery:     append(URLList(nil), sub.Gallery...),
		Videos:      append(URLList(nil), sub.Videos...),
		OwnerUID:    sub.OwnerUID,
		RatingAvg:   0,
		RatingCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
