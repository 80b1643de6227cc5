package postgres

import (
	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// listingContent is the JSONB payload shared by submissions and restaurants.
type listingContent struct {
	Name           string        `json:"name"`
	Cuisines       []string      `json:"cuisines"`
	Address        string        `json:"address"`
	Postcode       string        `json:"postcode"`
	Lat            float64       `json:"lat"`
	Lng            float64       `json:"lng"`
	Phone          string        `json:"phone"`
	Website        string        `json:"website,omitempty"`
	HalalCertified bool          `json:"halalCertified"`
	HygieneRating  string        `json:"hygieneRating,omitempty"`
	Menu           []menuSection `json:"menu,omitempty"`
	BestItems      []bestItem    `json:"bestItems,omitempty"`
	Socials        socials       `json:"socials"`
	Gallery        []string      `json:"gallery,omitempty"`
	Videos         []string      `json:"videos,omitempty"`
	Email          string        `json:"email,omitempty"`
	WhyUs          string        `json:"whyUs,omitempty"`
	OpeningHours   string        `json:"openingHours,omitempty"`
}

type menuSection struct {
	Section string     `json:"section"`
	Items   []menuItem `json:"items,omitempty"`
}

type menuItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type bestItem struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty"`
}

type socials struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

func submissionContent(s *admindomain.Submission) listingContent {
	return listingContent{
		Name:           s.Name,
		Cuisines:       s.Cuisines.Strings(),
		Address:        s.Address,
		Postcode:       s.Postcode.String(),
		Lat:            s.Location.Lat,
		Lng:            s.Location.Lng,
		Phone:          s.Phone.String(),
		Website:        s.Website.String(),
		HalalCertified: s.HalalCertified,
		HygieneRating:  s.HygieneRating.String(),
		Menu:           fromMenu(s.Menu),
		BestItems:      fromBestItems(s.BestItems),
		Socials:        fromSocials(s.Socials),
		Gallery:        s.Gallery.Strings(),
		Videos:         s.Videos.Strings(),
		Email:          s.Email.String(),
		WhyUs:          s.WhyUs,
		OpeningHours:   s.OpeningHours,
	}
}

func restaurantContent(r *admindomain.Restaurant) listingContent {
	return listingContent{
		Name:           r.Name,
		Cuisines:       r.Cuisines.Strings(),
		Address:        r.Address,
		Postcode:       r.Postcode.String(),
		Lat:            r.Location.Lat,
		Lng:            r.Location.Lng,
		Phone:          r.Phone.String(),
		Website:        r.Website.String(),
		HalalCertified: r.HalalCertified,
		Menu:           fromMenu(r.Menu),
		BestItems:      fromBestItems(r.BestItems),
		Socials:        fromSocials(r.Socials),
		Gallery:        r.Gallery.Strings(),
		Videos:         r.Videos.Strings(),
	}
}

// applyToSubmission fills the listing fields of s from c.
func (c listingContent) applyToSubmission(s *admindomain.Submission) {
	s.Name = c.Name
	s.Cuisines = toCuisines(c.Cuisines)
	s.Address = c.Address
	s.Postcode = admindomain.Postcode(c.Postcode)
	s.Location.Lat, s.Location.Lng = c.Lat, c.Lng
	s.Phone = admindomain.Phone(c.Phone)
	s.Website = admindomain.URL(c.Website)
	s.HalalCertified = c.HalalCertified
	s.HygieneRating = admindomain.HygieneRating(c.HygieneRating)
	s.Menu = toMenu(c.Menu)
	s.BestItems = toBestItems(c.BestItems)
	s.Socials = toSocials(c.Socials)
	s.Gallery = toURLs(c.Gallery)
	s.Videos = toURLs(c.Videos)
	s.Email = admindomain.Email(c.Email)
	s.WhyUs = c.WhyUs
	s.OpeningHours = c.OpeningHours
}

func (c listingContent) applyToRestaurant(r *admindomain.Restaurant) {
	r.Name = c.Name
	r.Cuisines = toCuisines(c.Cuisines)
	r.Address = c.Address
	r.Postcode = admindomain.Postcode(c.Postcode)
	r.Location.Lat, r.Location.Lng = c.Lat, c.Lng
	r.Phone = admindomain.Phone(c.Phone)
	r.Website = admindomain.URL(c.Website)
	r.HalalCertified = c.HalalCertified
	r.Menu = toMenu(c.Menu)
	r.BestItems = toBestItems(c.BestItems)
	r.Socials = toSocials(c.Socials)
	r.Gallery = toURLs(c.Gallery)
	r.Videos = toURLs(c.Videos)
}

func (c listingContent) applyToPublic(r *publicdomain.Restaurant) {
	r.Name = c.Name
	r.Cuisines = append([]string{}, c.Cuisines...)
	r.Address = c.Address
	r.Postcode = c.Postcode
	r.Location.Lat, r.Location.Lng = c.Lat, c.Lng
	r.Phone = c.Phone
	r.Website = c.Website
	r.HalalCertified = c.HalalCertified
	r.Menu = make([]publicdomain.MenuSection, 0, len(c.Menu))
	for _, section := range c.Menu {
		items := make([]publicdomain.MenuItem, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, publicdomain.MenuItem(item))
		}
		r.Menu = append(r.Menu, publicdomain.MenuSection{Section: section.Section, Items: items})
	}
	r.BestItems = make([]publicdomain.BestItem, 0, len(c.BestItems))
	for _, item := range c.BestItems {
		r.BestItems = append(r.BestItems, publicdomain.BestItem(item))
	}
	r.Socials = publicdomain.SocialLinks(c.Socials)
	r.Gallery = append([]string{}, c.Gallery...)
	r.Videos = append([]string{}, c.Videos...)
}

func fromMenu(menu []admindomain.MenuSection) []menuSection {
	if len(menu) == 0 {
		return nil
	}
	out := make([]menuSection, 0, len(menu))
	for _, section := range menu {
		items := make([]menuItem, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, menuItem{Name: item.Name, Price: item.Price.Float64(), Description: item.Description})
		}
		out = append(out, menuSection{Section: section.Section, Items: items})
	}
	return out
}

func toMenu(menu []menuSection) []admindomain.MenuSection {
	if len(menu) == 0 {
		return nil
	}
	out := make([]admindomain.MenuSection, 0, len(menu))
	for _, section := range menu {
		items := make([]admindomain.MenuItem, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, admindomain.MenuItem{Name: item.Name, Price: admindomain.Price(item.Price), Description: item.Description})
		}
		out = append(out, admindomain.MenuSection{Section: section.Section, Items: items})
	}
	return out
}

func fromBestItems(items []admindomain.BestItem) []bestItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]bestItem, 0, len(items))
	for _, item := range items {
		out = append(out, bestItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price.Float64(),
			ImageURL:    item.ImageURL.String(),
			Description: item.Description,
		})
	}
	return out
}

func toBestItems(items []bestItem) []admindomain.BestItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]admindomain.BestItem, 0, len(items))
	for _, item := range items {
		out = append(out, admindomain.BestItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       admindomain.Price(item.Price),
			ImageURL:    admindomain.URL(item.ImageURL),
			Description: item.Description,
		})
	}
	return out
}

func fromSocials(s admindomain.SocialLinks) socials {
	return socials{
		Instagram: s.Instagram.String(),
		TikTok:    s.TikTok.String(),
		YouTube:   s.YouTube.String(),
		Facebook:  s.Facebook.String(),
	}
}

func toSocials(s socials) admindomain.SocialLinks {
	return admindomain.SocialLinks{
		Instagram: admindomain.URL(s.Instagram),
		TikTok:    admindomain.URL(s.TikTok),
		YouTube:   admindomain.URL(s.YouTube),
		Facebook:  admindomain.URL(s.Facebook),
	}
}

func toCuisines(values []string) admindomain.CuisineList {
	out := make(admindomain.CuisineList, 0, len(values))
	for _, v := range values {
		out = append(out, admindomain.Cuisine(v))
	}
	return out
}

func toURLs(values []string) admindomain.URLList {
	if len(values) == 0 {
		return nil
	}
	out := make(admindomain.URLList, 0, len(values))
	for _, v := range values {
		out = append(out, admindomain.URL(v))
	}
	return out
}
