package admin

import (
	"time"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
)

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type approveResponse struct {
	SubmissionID string `json:"submissionId"`
	Status       string `json:"status"`
	RestaurantID string `json:"restaurantId"`
}

type purgeReportResponse struct {
	Scanned int      `json:"scanned"`
	Deleted int      `json:"deleted"`
	Failed  []string `json:"failed"`
}

type submissionSummaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Postcode  string    `json:"postcode"`
	Cuisines  []string  `json:"cuisines"`
	Status    string    `json:"status"`
	Paid      bool      `json:"paid"`
	OwnerUID  string    `json:"ownerUid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type submissionListResponse struct {
	Items []submissionSummaryResponse `json:"items"`
	Total int                         `json:"total"`
}

type menuItemResponse struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type menuSectionResponse struct {
	Section string             `json:"section"`
	Items   []menuItemResponse `json:"items"`
}

type bestItemResponse struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty"`
}

type socialsResponse struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

type submissionDetailResponse struct {
	submissionSummaryResponse
	Address          string                `json:"address"`
	Lat              float64               `json:"lat"`
	Lng              float64               `json:"lng"`
	Phone            string                `json:"phone"`
	Website          string                `json:"website,omitempty"`
	HalalCertified   bool                  `json:"halalCertified"`
	HygieneRating    string                `json:"hygieneRating"`
	Menu             []menuSectionResponse `json:"menu"`
	BestItems        []bestItemResponse    `json:"bestItems"`
	Socials          socialsResponse       `json:"socials"`
	Gallery          []string              `json:"gallery"`
	Videos           []string              `json:"videos"`
	Email            string                `json:"email,omitempty"`
	WhyUs            string                `json:"whyUs,omitempty"`
	OpeningHours     string                `json:"openingHours,omitempty"`
	PaymentReference string                `json:"paymentReference,omitempty"`
	RestaurantID     string                `json:"restaurantId,omitempty"`
	RejectReason     string                `json:"rejectReason,omitempty"`
}

func buildSubmissionSummary(s admindomain.Submission) submissionSummaryResponse {
	return submissionSummaryResponse{
		ID:        s.ID,
		Name:      s.Name,
		Postcode:  s.Postcode.String(),
		Cuisines:  s.Cuisines.Strings(),
		Status:    string(s.Status),
		Paid:      s.Paid,
		OwnerUID:  s.OwnerUID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func buildSubmissionDetail(s admindomain.Submission) submissionDetailResponse {
	menu := make([]menuSectionResponse, 0, len(s.Menu))
	for _, section := range s.Menu {
		items := make([]menuItemResponse, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, menuItemResponse{Name: item.Name, Price: item.Price.Float64(), Description: item.Description})
		}
		menu = append(menu, menuSectionResponse{Section: section.Section, Items: items})
	}
	best := make([]bestItemResponse, 0, len(s.BestItems))
	for _, item := range s.BestItems {
		best = append(best, bestItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price.Float64(),
			ImageURL:    item.ImageURL.String(),
			Description: item.Description,
		})
	}
	return submissionDetailResponse{
		submissionSummaryResponse: buildSubmissionSummary(s),
		Address:                   s.Address,
		Lat:                       s.Location.Lat,
		Lng:                       s.Location.Lng,
		Phone:                     s.Phone.String(),
		Website:                   s.Website.String(),
		HalalCertified:            s.HalalCertified,
		HygieneRating:             s.HygieneRating.String(),
		Menu:                      menu,
		BestItems:                 best,
		Socials: socialsResponse{
			Instagram: s.Socials.Instagram.String(),
			TikTok:    s.Socials.TikTok.String(),
			YouTube:   s.Socials.YouTube.String(),
			Facebook:  s.Socials.Facebook.String(),
		},
		Gallery:          s.Gallery.Strings(),
		Videos:           s.Videos.Strings(),
		Email:            s.Email.String(),
		WhyUs:            s.WhyUs,
		OpeningHours:     s.OpeningHours,
		PaymentReference: s.PaymentReference,
		RestaurantID:     s.RestaurantID,
		RejectReason:     s.RejectReason,
	}
}
