package domain

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a consumer rating of a published restaurant.
type Review struct {
	ID           string
	RestaurantID string
	UID          string
	DisplayName  string
	Rating       int
	Text         string
	Photos       []string
	CreatedAt    time.Time
}

// RatingSummary is the aggregate kept on the restaurant.
// Avg is the mean of all review ratings and is 0 when Count is 0.
type RatingSummary struct {
	Avg   float64
	Count int
}

// Summarize computes the aggregate for ratings.
func Summarize(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RatingSummary{Avg: float64(sum) / float64(len(ratings)), Count: len(ratings)}
}
