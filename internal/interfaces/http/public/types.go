package public

import (
	"math"
	"time"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

type locationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type socialsPayload struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

type menuItemPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type menuSectionPayload struct {
	Section string            `json:"section"`
	Items   []menuItemPayload `json:"items"`
}

type bestItemPayload struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty"`
}

type restaurantSummaryResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Cuisines       []string        `json:"cuisines"`
	Address        string          `json:"address"`
	Postcode       string          `json:"postcode"`
	Location       locationPayload `json:"location"`
	HalalCertified bool            `json:"halalCertified"`
	RatingAvg      float64         `json:"ratingAvg"`
	RatingCount    int             `json:"ratingCount"`
	CoverImage     string          `json:"coverImage,omitempty"`
}

type restaurantResponse struct {
	restaurantSummaryResponse
	Phone     string               `json:"phone,omitempty"`
	Website   string               `json:"website,omitempty"`
	Menu      []menuSectionPayload `json:"menu"`
	BestItems []bestItemPayload    `json:"bestItems"`
	Socials   socialsPayload       `json:"socials"`
	Gallery   []string             `json:"gallery"`
	Videos    []string             `json:"videos"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type matchResponse struct {
	restaurantSummaryResponse
	DistanceMiles float64 `json:"distanceMiles"`
}

type searchResponse struct {
	Items  []matchResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Sort   string          `json:"sort"`
}

type reviewCreateRequest struct {
	Rating      int      `json:"rating" validate:"required,min=1,max=5"`
	Text        string   `json:"text" validate:"max=2000"`
	DisplayName string   `json:"displayName" validate:"max=80"`
	Photos      []string `json:"photos" validate:"max=5,dive,url"`
}

type reviewResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Rating      int       `json:"rating"`
	Text        string    `json:"text,omitempty"`
	Photos      []string  `json:"photos"`
	CreatedAt   time.Time `json:"createdAt"`
}

type reviewListResponse struct {
	Items []reviewResponse `json:"items"`
	Total int              `json:"total"`
}

type reviewCreateResponse struct {
	Review      reviewResponse `json:"review"`
	RatingAvg   float64        `json:"ratingAvg"`
	RatingCount int            `json:"ratingCount"`
}

type submissionCreateRequest struct {
	Name           string               `json:"name"`
	Cuisines       []string             `json:"cuisines"`
	Address        string               `json:"address"`
	Postcode       string               `json:"postcode"`
	Location       locationPayload      `json:"location"`
	Phone          string               `json:"phone"`
	Website        string               `json:"website"`
	HalalCertified bool                 `json:"halalCertified"`
	HygieneRating  string               `json:"hygieneRating"`
	Menu           []menuSectionPayload `json:"menu"`
	BestItems      []bestItemPayload    `json:"bestItems"`
	Socials        socialsPayload       `json:"socials"`
	Gallery        []string             `json:"gallery"`
	Videos         []string             `json:"videos"`
	Email          string               `json:"email"`
	WhyUs          string               `json:"whyUs"`
	OpeningHours   string               `json:"openingHours"`
}

func (req submissionCreateRequest) toCommand(ownerUID string) adminapp.SubmitCommand {
	menu := make([]adminapp.MenuSectionCommand, 0, len(req.Menu))
	for _, section := range req.Menu {
		items := make([]adminapp.MenuItemCommand, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, adminapp.MenuItemCommand{Name: item.Name, Price: item.Price, Description: item.Description})
		}
		menu = append(menu, adminapp.MenuSectionCommand{Section: section.Section, Items: items})
	}
	best := make([]adminapp.BestItemCommand, 0, len(req.BestItems))
	for _, item := range req.BestItems {
		best = append(best, adminapp.BestItemCommand{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Description: item.Description,
		})
	}
	return adminapp.SubmitCommand{
		OwnerUID:       ownerUID,
		Name:           req.Name,
		Cuisines:       req.Cuisines,
		Address:        req.Address,
		Postcode:       req.Postcode,
		Lat:            req.Location.Lat,
		Lng:            req.Location.Lng,
		Phone:          req.Phone,
		Website:        req.Website,
		HalalCertified: req.HalalCertified,
		HygieneRating:  req.HygieneRating,
		Menu:           menu,
		BestItems:      best,
		Socials: adminapp.SocialsCommand{
			Instagram: req.Socials.Instagram,
			TikTok:    req.Socials.TikTok,
			YouTube:   req.Socials.YouTube,
			Facebook:  req.Socials.Facebook,
		},
		Gallery:      req.Gallery,
		Videos:       req.Videos,
		Email:        req.Email,
		WhyUs:        req.WhyUs,
		OpeningHours: req.OpeningHours,
	}
}

// submissionStatusResponse is the owner's view of their own submission.
type submissionStatusResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	Paid         bool      `json:"paid"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	RejectReason string    `json:"rejectReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func buildSubmissionStatusResponse(s admindomain.Submission) submissionStatusResponse {
	return submissionStatusResponse{
		ID:           s.ID,
		Name:         s.Name,
		Status:       string(s.Status),
		Paid:         s.Paid,
		RestaurantID: s.RestaurantID,
		RejectReason: s.RejectReason,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func buildRestaurantSummary(r publicdomain.Restaurant) restaurantSummaryResponse {
	summary := restaurantSummaryResponse{
		ID:             r.ID,
		Name:           r.Name,
		Cuisines:       nonNil(r.Cuisines),
		Address:        r.Address,
		Postcode:       r.Postcode,
		Location:       locationPayload{Lat: r.Location.Lat, Lng: r.Location.Lng},
		HalalCertified: r.HalalCertified,
		RatingAvg:      roundTo(r.RatingAvg, 1),
		RatingCount:    r.RatingCount,
	}
	if len(r.Gallery) > 0 {
		summary.CoverImage = r.Gallery[0]
	}
	return summary
}

func buildRestaurantResponse(r publicdomain.Restaurant) restaurantResponse {
	menu := make([]menuSectionPayload, 0, len(r.Menu))
	for _, section := range r.Menu {
		items := make([]menuItemPayload, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, menuItemPayload{Name: item.Name, Price: item.Price, Description: item.Description})
		}
		menu = append(menu, menuSectionPayload{Section: section.Section, Items: items})
	}
	best := make([]bestItemPayload, 0, len(r.BestItems))
	for _, item := range r.BestItems {
		best = append(best, bestItemPayload{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Description: item.Description,
		})
	}
	return restaurantResponse{
		restaurantSummaryResponse: buildRestaurantSummary(r),
		Phone:                     r.Phone,
		Website:                   r.Website,
		Menu:                      menu,
		BestItems:                 best,
		Socials: socialsPayload{
			Instagram: r.Socials.Instagram,
			TikTok:    r.Socials.TikTok,
			YouTube:   r.Socials.YouTube,
			Facebook:  r.Socials.Facebook,
		},
		Gallery:   nonNil(r.Gallery),
		Videos:    nonNil(r.Videos),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func buildMatchResponse(m publicdomain.Match) matchResponse {
	return matchResponse{
		restaurantSummaryResponse: buildRestaurantSummary(m.Restaurant),
		DistanceMiles:             roundTo(m.DistanceMiles, 2),
	}
}

func buildReviewResponse(r publicdomain.Review) reviewResponse {
	return reviewResponse{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		Rating:      r.Rating,
		Text:        r.Text,
		Photos:      nonNil(r.Photos),
		CreatedAt:   r.CreatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
