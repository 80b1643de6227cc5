package application

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	"github.com/sngm3741/halal-food-club/api/internal/geo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs tag validation and reports the first failure as a domain ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return admindomain.NewValidationError(lowerFirst(fe.Field()), "failed %q validation", fe.Tag())
	}
	return admindomain.NewValidationError("", "%v", err)
}

// buildSubmission turns a validated command into a pending, unpaid submission.
func buildSubmission(cmd SubmitCommand) (*admindomain.Submission, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, admindomain.NewValidationError("name", "name is required")
	}
	address := strings.TrimSpace(cmd.Address)
	if address == "" {
		return nil, admindomain.NewValidationError("address", "address is required")
	}
	cuisines, err := admindomain.NewCuisineList(cmd.Cuisines)
	if err != nil {
		return nil, err
	}
	postcode, err := admindomain.NewPostcode(cmd.Postcode)
	if err != nil {
		return nil, err
	}
	location := geo.Coordinate{Lat: cmd.Lat, Lng: cmd.Lng}
	if err := location.Validate(); err != nil {
		return nil, admindomain.NewValidationError("location", "%v", err)
	}
	phone, err := admindomain.NewPhone(cmd.Phone)
	if err != nil {
		return nil, err
	}
	website, err := admindomain.NewURL("website", cmd.Website)
	if err != nil {
		return nil, err
	}
	hygiene, err := admindomain.NewHygieneRating(cmd.HygieneRating)
	if err != nil {
		return nil, err
	}
	menu, err := mapMenuCommands(cmd.Menu)
	if err != nil {
		return nil, err
	}
	bestItems, err := mapBestItemCommands(cmd.BestItems)
	if err != nil {
		return nil, err
	}
	socials, err := admindomain.NewSocialLinks(cmd.Socials.Instagram, cmd.Socials.TikTok, cmd.Socials.YouTube, cmd.Socials.Facebook)
	if err != nil {
		return nil, err
	}
	gallery, err := admindomain.NewURLList("gallery", cmd.Gallery, admindomain.MaxGalleryPhotos)
	if err != nil {
		return nil, err
	}
	videos, err := admindomain.NewURLList("videos", cmd.Videos, admindomain.MaxVideoLinks)
	if err != nil {
		return nil, err
	}
	email, err := admindomain.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	return &admindomain.Submission{
		Name:           name,
		Cuisines:       cuisines,
		Address:        address,
		Postcode:       postcode,
		Location:       location,
		Phone:          phone,
		Website:        website,
		HalalCertified: cmd.HalalCertified,
		HygieneRating:  hygiene,
		Menu:           menu,
		BestItems:      bestItems,
		Socials:        socials,
		Gallery:        gallery,
		Videos:         videos,
		OwnerUID:       strings.TrimSpace(cmd.OwnerUID),
		Email:          email,
		WhyUs:          strings.TrimSpace(cmd.WhyUs),
		OpeningHours:   strings.TrimSpace(cmd.OpeningHours),
		Status:         admindomain.StatusPending,
		Paid:           false,
	}, nil
}

func mapMenuCommands(inputs []MenuSectionCommand) ([]admindomain.MenuSection, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	sections := make([]admindomain.MenuSection, 0, len(inputs))
	for _, input := range inputs {
		items := make([]admindomain.MenuItem, 0, len(input.Items))
		for _, item := range input.Items {
			price, err := admindomain.NewPrice("menu.items.price", item.Price)
			if err != nil {
				return nil, err
			}
			items = append(items, admindomain.MenuItem{
				Name:        strings.TrimSpace(item.Name),
				Price:       price,
				Description: strings.TrimSpace(item.Description),
			})
		}
		sections = append(sections, admindomain.MenuSection{
			Section: strings.TrimSpace(input.Section),
			Items:   items,
		})
	}
	return sections, nil
}

func mapBestItemCommands(inputs []BestItemCommand) ([]admindomain.BestItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	items := make([]admindomain.BestItem, 0, len(inputs))
	for _, input := range inputs {
		price, err := admindomain.NewPrice("bestItems.price", input.Price)
		if err != nil {
			return nil, err
		}
		imageURL, err := admindomain.NewURL("bestItems.imageUrl", input.ImageURL)
		if err != nil {
			return nil, err
		}
		items = append(items, admindomain.BestItem{
			ID:          strings.TrimSpace(input.ID),
			Name:        strings.TrimSpace(input.Name),
			Price:       price,
			ImageURL:    imageURL,
			Description: strings.TrimSpace(input.Description),
		})
	}
	return items, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
