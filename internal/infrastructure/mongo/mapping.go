package mongo

import (
	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	"github.com/sngm3741/halal-food-club/api/internal/geo"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

func toSubmissionDocument(s *admindomain.Submission) SubmissionDocument {
	return SubmissionDocument{
		Name:             s.Name,
		Cuisines:         s.Cuisines.Strings(),
		Address:          s.Address,
		Postcode:         s.Postcode.String(),
		Location:         LocationDocument{Lat: s.Location.Lat, Lng: s.Location.Lng},
		Phone:            s.Phone.String(),
		Website:          s.Website.String(),
		HalalCertified:   s.HalalCertified,
		HygieneRating:    s.HygieneRating.String(),
		Menu:             toMenuDocuments(s.Menu),
		BestItems:        toBestItemDocuments(s.BestItems),
		Socials:          toSocialsDocument(s.Socials),
		Gallery:          s.Gallery.Strings(),
		Videos:           s.Videos.Strings(),
		OwnerUID:         s.OwnerUID,
		Email:            s.Email.String(),
		WhyUs:            s.WhyUs,
		OpeningHours:     s.OpeningHours,
		Status:           string(s.Status),
		Paid:             s.Paid,
		PaymentReference: s.PaymentReference,
		RestaurantID:     s.RestaurantID,
		RejectReason:     s.RejectReason,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func mapSubmissionDocument(doc SubmissionDocument) admindomain.Submission {
	return admindomain.Submission{
		ID:               doc.ID.Hex(),
		Name:             doc.Name,
		Cuisines:         toCuisineList(doc.Cuisines),
		Address:          doc.Address,
		Postcode:         admindomain.Postcode(doc.Postcode),
		Location:         geo.Coordinate{Lat: doc.Location.Lat, Lng: doc.Location.Lng},
		Phone:            admindomain.Phone(doc.Phone),
		Website:          admindomain.URL(doc.Website),
		HalalCertified:   doc.HalalCertified,
		HygieneRating:    admindomain.HygieneRating(doc.HygieneRating),
		Menu:             mapMenuDocuments(doc.Menu),
		BestItems:        mapBestItemDocuments(doc.BestItems),
		Socials:          mapSocialsDocument(doc.Socials),
		Gallery:          toURLList(doc.Gallery),
		Videos:           toURLList(doc.Videos),
		OwnerUID:         doc.OwnerUID,
		Email:            admindomain.Email(doc.Email),
		WhyUs:            doc.WhyUs,
		OpeningHours:     doc.OpeningHours,
		Status:           admindomain.SubmissionStatus(doc.Status),
		Paid:             doc.Paid,
		PaymentReference: doc.PaymentReference,
		RestaurantID:     doc.RestaurantID,
		RejectReason:     doc.RejectReason,
		CreatedAt:        doc.CreatedAt.UTC(),
		UpdatedAt:        doc.UpdatedAt.UTC(),
	}
}

func toRestaurantDocument(r *admindomain.Restaurant) RestaurantDocument {
	return RestaurantDocument{
		SubmissionID:   r.SubmissionID,
		Name:           r.Name,
		Cuisines:       r.Cuisines.Strings(),
		Address:        r.Address,
		Postcode:       r.Postcode.String(),
		Location:       LocationDocument{Lat: r.Location.Lat, Lng: r.Location.Lng},
		Phone:          r.Phone.String(),
		Website:        r.Website.String(),
		HalalCertified: r.HalalCertified,
		Menu:           toMenuDocuments(r.Menu),
		BestItems:      toBestItemDocuments(r.BestItems),
		Socials:        toSocialsDocument(r.Socials),
		Gallery:        r.Gallery.Strings(),
		Videos:         r.Videos.Strings(),
		OwnerUID:       r.OwnerUID,
		RatingAvg:      r.RatingAvg,
		RatingCount:    r.RatingCount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func mapAdminRestaurant(doc RestaurantDocument) admindomain.Restaurant {
	return admindomain.Restaurant{
		ID:             doc.ID.Hex(),
		SubmissionID:   doc.SubmissionID,
		Name:           doc.Name,
		Cuisines:       toCuisineList(doc.Cuisines),
		Address:        doc.Address,
		Postcode:       admindomain.Postcode(doc.Postcode),
		Location:       geo.Coordinate{Lat: doc.Location.Lat, Lng: doc.Location.Lng},
		Phone:          admindomain.Phone(doc.Phone),
		Website:        admindomain.URL(doc.Website),
		HalalCertified: doc.HalalCertified,
		Menu:           mapMenuDocuments(doc.Menu),
		BestItems:      mapBestItemDocuments(doc.BestItems),
		Socials:        mapSocialsDocument(doc.Socials),
		Gallery:        toURLList(doc.Gallery),
		Videos:         toURLList(doc.Videos),
		OwnerUID:       doc.OwnerUID,
		RatingAvg:      doc.RatingAvg,
		RatingCount:    doc.RatingCount,
		CreatedAt:      doc.CreatedAt.UTC(),
		UpdatedAt:      doc.UpdatedAt.UTC(),
	}
}

func mapPublicRestaurant(doc RestaurantDocument) publicdomain.Restaurant {
	menu := make([]publicdomain.MenuSection, 0, len(doc.Menu))
	for _, section := range doc.Menu {
		items := make([]publicdomain.MenuItem, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, publicdomain.MenuItem{Name: item.Name, Price: item.Price, Description: item.Description})
		}
		menu = append(menu, publicdomain.MenuSection{Section: section.Section, Items: items})
	}
	bestItems := make([]publicdomain.BestItem, 0, len(doc.BestItems))
	for _, item := range doc.BestItems {
		bestItems = append(bestItems, publicdomain.BestItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			ImageURL:    item.ImageURL,
			Description: item.Description,
		})
	}

	return publicdomain.Restaurant{
		ID:             doc.ID.Hex(),
		SubmissionID:   doc.SubmissionID,
		Name:           doc.Name,
		Cuisines:       append([]string{}, doc.Cuisines...),
		Address:        doc.Address,
		Postcode:       doc.Postcode,
		Location:       geo.Coordinate{Lat: doc.Location.Lat, Lng: doc.Location.Lng},
		Phone:          doc.Phone,
		Website:        doc.Website,
		HalalCertified: doc.HalalCertified,
		Menu:           menu,
		BestItems:      bestItems,
		Socials: publicdomain.SocialLinks{
			Instagram: doc.Socials.Instagram,
			TikTok:    doc.Socials.TikTok,
			YouTube:   doc.Socials.YouTube,
			Facebook:  doc.Socials.Facebook,
		},
		Gallery:     append([]string{}, doc.Gallery...),
		Videos:      append([]string{}, doc.Videos...),
		OwnerUID:    doc.OwnerUID,
		RatingAvg:   doc.RatingAvg,
		RatingCount: doc.RatingCount,
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}
}

func mapReviewDocument(doc ReviewDocument) publicdomain.Review {
	return publicdomain.Review{
		ID:           doc.ID.Hex(),
		RestaurantID: doc.RestaurantID,
		UID:          doc.UID,
		DisplayName:  doc.DisplayName,
		Rating:       doc.Rating,
		Text:         doc.Text,
		Photos:       append([]string{}, doc.Photos...),
		CreatedAt:    doc.CreatedAt.UTC(),
	}
}

func toMenuDocuments(menu []admindomain.MenuSection) []MenuSectionDocument {
	if len(menu) == 0 {
		return nil
	}
	docs := make([]MenuSectionDocument, 0, len(menu))
	for _, section := range menu {
		items := make([]MenuItemDocument, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, MenuItemDocument{Name: item.Name, Price: item.Price.Float64(), Description: item.Description})
		}
		docs = append(docs, MenuSectionDocument{Section: section.Section, Items: items})
	}
	return docs
}

func mapMenuDocuments(docs []MenuSectionDocument) []admindomain.MenuSection {
	if len(docs) == 0 {
		return nil
	}
	menu := make([]admindomain.MenuSection, 0, len(docs))
	for _, doc := range docs {
		items := make([]admindomain.MenuItem, 0, len(doc.Items))
		for _, item := range doc.Items {
			items = append(items, admindomain.MenuItem{Name: item.Name, Price: admindomain.Price(item.Price), Description: item.Description})
		}
		menu = append(menu, admindomain.MenuSection{Section: doc.Section, Items: items})
	}
	return menu
}

func toBestItemDocuments(items []admindomain.BestItem) []BestItemDocument {
	if len(items) == 0 {
		return nil
	}
	docs := make([]BestItemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, BestItemDocument{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price.Float64(),
			ImageURL:    item.ImageURL.String(),
			Description: item.Description,
		})
	}
	return docs
}

func mapBestItemDocuments(docs []BestItemDocument) []admindomain.BestItem {
	if len(docs) == 0 {
		return nil
	}
	items := make([]admindomain.BestItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, admindomain.BestItem{
			ID:          doc.ID,
			Name:        doc.Name,
			Price:       admindomain.Price(doc.Price),
			ImageURL:    admindomain.URL(doc.ImageURL),
			Description: doc.Description,
		})
	}
	return items
}

func toSocialsDocument(s admindomain.SocialLinks) SocialsDocument {
	return SocialsDocument{
		Instagram: s.Instagram.String(),
		TikTok:    s.TikTok.String(),
		YouTube:   s.YouTube.String(),
		Facebook:  s.Facebook.String(),
	}
}

func mapSocialsDocument(doc SocialsDocument) admindomain.SocialLinks {
	return admindomain.SocialLinks{
		Instagram: admindomain.URL(doc.Instagram),
		TikTok:    admindomain.URL(doc.TikTok),
		YouTube:   admindomain.URL(doc.YouTube),
		Facebook:  admindomain.URL(doc.Facebook),
	}
}

func toCuisineList(values []string) admindomain.CuisineList {
	list := make(admindomain.CuisineList, 0, len(values))
	for _, v := range values {
		list = append(list, admindomain.Cuisine(v))
	}
	return list
}

func toURLList(values []string) admindomain.URLList {
	if len(values) == 0 {
		return nil
	}
	list := make(admindomain.URLList, 0, len(values))
	for _, v := range values {
		list = append(list, admindomain.URL(v))
	}
	return list
}
