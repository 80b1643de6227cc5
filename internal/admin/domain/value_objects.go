package domain

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

const (
	// MaxGalleryPhotos caps the gallery attached to a listing.
	MaxGalleryPhotos = 10
	// MaxVideoLinks caps the video links attached to a listing.
	MaxVideoLinks = 5
)

var (
	ukPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)
	phonePattern      = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

	allowedHygieneRatings = []string{"0", "1", "2", "3", "4", "5", "Awaiting Inspection", "Exempt"}
)

type Cuisine string

func NewCuisine(value string) (Cuisine, error) {
	trimmed := strings.Join(strings.Fields(value), " ")
	if trimmed == "" {
		return "", NewValidationError("cuisines", "cuisine must not be blank")
	}
	if len(trimmed) > 40 {
		return "", NewValidationError("cuisines", "cuisine %q is too long", trimmed)
	}
	return Cuisine(trimmed), nil
}

type CuisineList []Cuisine

// NewCuisineList trims, de-duplicates (case-insensitively) and requires at least one cuisine.
func NewCuisineList(values []string) (CuisineList, error) {
	result := make([]Cuisine, 0, len(values))
	seen := make(map[string]struct{})
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		value, err := NewCuisine(raw)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(string(value))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, value)
	}
	if len(result) == 0 {
		return nil, NewValidationError("cuisines", "at least one cuisine is required")
	}
	return CuisineList(result), nil
}

func (l CuisineList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

type Postcode string

// NewPostcode accepts UK postcodes in any case, with or without the inner space.
func NewPostcode(value string) (Postcode, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(value), ""))
	if cleaned == "" {
		return "", NewValidationError("postcode", "postcode is required")
	}
	if !ukPostcodePattern.MatchString(cleaned) {
		return "", NewValidationError("postcode", "%q is not a valid UK postcode", value)
	}
	return Postcode(cleaned[:len(cleaned)-3] + " " + cleaned[len(cleaned)-3:]), nil
}

func (p Postcode) String() string {
	return string(p)
}

type Phone string

func NewPhone(value string) (Phone, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError("phone", "phone is required")
	}
	if !phonePattern.MatchString(trimmed) {
		return "", NewValidationError("phone", "%q is not a valid phone number", trimmed)
	}
	return Phone(trimmed), nil
}

func (p Phone) String() string {
	return string(p)
}

type HygieneRating string

func NewHygieneRating(value string) (HygieneRating, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidationError("hygieneRating", "hygiene rating is required")
	}
	for _, allowed := range allowedHygieneRatings {
		if strings.EqualFold(allowed, trimmed) {
			return HygieneRating(allowed), nil
		}
	}
	return "", NewValidationError("hygieneRating", "invalid hygiene rating: %s", trimmed)
}

func (h HygieneRating) String() string {
	return string(h)
}

type Email string

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", NewValidationError("email", "email too long")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", NewValidationError("email", "invalid email: %v", err)
	}
	return Email(trimmed), nil
}

func (e Email) String() string {
	return string(e)
}

type Price float64

func NewPrice(field string, value float64) (Price, error) {
	if value < 0 {
		return 0, NewValidationError(field, "price must be >= 0")
	}
	return Price(value), nil
}

func (p Price) Float64() float64 {
	return float64(p)
}

type URL string

func NewURL(field, value string) (URL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 2048 {
		return "", NewValidationError(field, "URL too long")
	}
	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", NewValidationError(field, "invalid URL: %s", trimmed)
	}
	return URL(trimmed), nil
}

func (u URL) String() string {
	return string(u)
}

type URLList []URL

// NewURLList drops blanks and duplicates and enforces limit when positive.
func NewURLList(field string, values []string, limit int) (URLList, error) {
	if len(values) == 0 {
		return nil, nil
	}
	result := make([]URL, 0, len(values))
	seen := make(map[URL]struct{})
	for _, raw := range values {
		value, err := NewURL(field, raw)
		if err != nil {
			return nil, err
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	if limit > 0 && len(result) > limit {
		return nil, NewValidationError(field, "must contain at most %d links", limit)
	}
	return URLList(result), nil
}

func (l URLList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}

// SocialLinks holds the listing's social profiles.
type SocialLinks struct {
	Instagram URL
	TikTok    URL
	YouTube   URL
	Facebook  URL
}

func NewSocialLinks(instagram, tiktok, youtube, facebook string) (SocialLinks, error) {
	insta, err := NewURL("socials.instagram", instagram)
	if err != nil {
		return SocialLinks{}, err
	}
	tk, err := NewURL("socials.tiktok", tiktok)
	if err != nil {
		return SocialLinks{}, err
	}
	yt, err := NewURL("socials.youtube", youtube)
	if err != nil {
		return SocialLinks{}, err
	}
	fb, err := NewURL("socials.facebook", facebook)
	if err != nil {
		return SocialLinks{}, err
	}
	return SocialLinks{
		Instagram: insta,
		TikTok:    tk,
		YouTube:   yt,
		Facebook:  fb,
	}, nil
}

// MenuSection groups menu items under a heading such as "Grills".
type MenuSection struct {
	Section string
	Items   []MenuItem
}

type MenuItem struct {
	Name        string
	Price       Price
	Description string
}

// BestItem is a highlighted dish shown on the listing card.
type BestItem struct {
	ID          string
	Name        string
	Price       Price
	ImageURL    URL
	Description string
}

func cloneMenu(menu []MenuSection) []MenuSection {
	if menu == nil {
		return nil
	}
	result := make([]MenuSection, 0, len(menu))
	for _, section := range menu {
		result = append(result, MenuSection{
			Section: section.Section,
			Items:   append([]MenuItem(nil), section.Items...),
		})
	}
	return result
}
