package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationDocument stores a WGS84 coordinate.
type LocationDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

// MenuItemDocument is one priced dish inside a menu section.
type MenuItemDocument struct {
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description,omitempty"`
}

// MenuSectionDocument groups menu items under a heading.
type MenuSectionDocument struct {
	Section string             `bson:"section"`
	Items   []MenuItemDocument `bson:"items,omitempty"`
}

// BestItemDocument is a highlighted dish.
type BestItemDocument struct {
	ID          string  `bson:"id,omitempty"`
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	ImageURL    string  `bson:"imageUrl,omitempty"`
	Description string  `bson:"description,omitempty"`
}

// SocialsDocument holds social profile links.
type SocialsDocument struct {
	Instagram string `bson:"instagram,omitempty"`
	TikTok    string `bson:"tiktok,omitempty"`
	YouTube   string `bson:"youtube,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
}

// SubmissionDocument is the stored shape of a listing submission.
type SubmissionDocument struct {
	ID             primitive.ObjectID    `bson:"_id"`
	Name           string                `bson:"name"`
	Cuisines       []string              `bson:"cuisines"`
	Address        string                `bson:"address"`
	Postcode       string                `bson:"postcode"`
	Location       LocationDocument      `bson:"location"`
	Phone          string                `bson:"phone"`
	Website        string                `bson:"website,omitempty"`
	HalalCertified bool                  `bson:"halalCertified"`
	HygieneRating  string                `bson:"hygieneRating,omitempty"`
	Menu           []MenuSectionDocument `bson:"menu,omitempty"`
	BestItems      []BestItemDocument    `bson:"bestItems,omitempty"`
	Socials        SocialsDocument       `bson:"socials,omitempty"`
	Gallery        []string              `bson:"gallery,omitempty"`
	Videos         []string              `bson:"videos,omitempty"`
	OwnerUID       string                `bson:"ownerUid"`
	Email          string                `bson:"email,omitempty"`
	WhyUs          string                `bson:"whyUs,omitempty"`
	OpeningHours   string                `bson:"openingHours,omitempty"`

	Status           string    `bson:"status"`
	Paid             bool      `bson:"paid"`
	PaymentReference string    `bson:"paymentReference,omitempty"`
	RestaurantID     string    `bson:"restaurantId,omitempty"`
	RejectReason     string    `bson:"rejectReason,omitempty"`
	CreatedAt        time.Time `bson:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

// RestaurantDocument is the stored shape of a published restaurant.
// submissionId carries a unique index.
type RestaurantDocument struct {
	ID             primitive.ObjectID    `bson:"_id"`
	SubmissionID   string                `bson:"submissionId"`
	Name           string                `bson:"name"`
	Cuisines       []string              `bson:"cuisines"`
	Address        string                `bson:"address"`
	Postcode       string                `bson:"postcode"`
	Location       LocationDocument      `bson:"location"`
	Phone          string                `bson:"phone"`
	Website        string                `bson:"website,omitempty"`
	HalalCertified bool                  `bson:"halalCertified"`
	Menu           []MenuSectionDocument `bson:"menu,omitempty"`
	BestItems      []BestItemDocument    `bson:"bestItems,omitempty"`
	Socials        SocialsDocument       `bson:"socials,omitempty"`
	Gallery        []string              `bson:"gallery,omitempty"`
	Videos         []string              `bson:"videos,omitempty"`
	OwnerUID       string                `bson:"ownerUid"`
	RatingAvg      float64               `bson:"ratingAvg"`
	RatingCount    int                   `bson:"ratingCount"`
	CreatedAt      time.Time             `bson:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt"`
}

// ReviewDocument is one consumer review.
type ReviewDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	RestaurantID string             `bson:"restaurantId"`
	UID          string             `bson:"uid"`
	DisplayName  string             `bson:"displayName"`
	Rating       int                `bson:"rating"`
	Text         string             `bson:"text,omitempty"`
	Photos       []string           `bson:"photos,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
