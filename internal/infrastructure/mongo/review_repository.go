package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// ReviewRepository stores reviews and maintains the rating aggregate on restaurants.
type ReviewRepository struct {
	reviews     *mongo.Collection
	restaurants *mongo.Collection
}

func NewReviewRepository(db *mongo.Database, reviewCollection, restaurantCollection string) *ReviewRepository {
	return &ReviewRepository{
		reviews:     db.Collection(reviewCollection),
		restaurants: db.Collection(restaurantCollection),
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *publicdomain.Review) error {
	doc := ReviewDocument{
		ID:           primitive.NewObjectID(),
		RestaurantID: review.RestaurantID,
		UID:          review.UID,
		DisplayName:  review.DisplayName,
		Rating:       review.Rating,
		Text:         review.Text,
		Photos:       review.Photos,
		CreatedAt:    review.CreatedAt,
	}
	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	review.ID = doc.ID.Hex()
	return nil
}

// FindByRestaurant returns reviews newest first.
func (r *ReviewRepository) FindByRestaurant(ctx context.Context, restaurantID string) ([]publicdomain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.M{"restaurantId": restaurantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]publicdomain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// RecalculateRating aggregates the restaurant's reviews and writes the result
// back onto the restaurant document.
func (r *ReviewRepository) RecalculateRating(ctx context.Context, restaurantID string) (publicdomain.RatingSummary, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(restaurantID))
	if err != nil {
		return publicdomain.RatingSummary{}, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, restaurantID)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"restaurantId": restaurantID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return publicdomain.RatingSummary{}, err
	}
	defer cursor.Close(ctx)

	var summary publicdomain.RatingSummary
	if cursor.Next(ctx) {
		var row struct {
			Avg   float64 `bson:"avg"`
			Count int     `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return publicdomain.RatingSummary{}, err
		}
		summary = publicdomain.RatingSummary{Avg: row.Avg, Count: row.Count}
	}
	if err := cursor.Err(); err != nil {
		return publicdomain.RatingSummary{}, err
	}

	result, err := r.restaurants.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"ratingAvg":   summary.Avg,
		"ratingCount": summary.Count,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return publicdomain.RatingSummary{}, err
	}
	if result.MatchedCount == 0 {
		return publicdomain.RatingSummary{}, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, restaurantID)
	}
	return summary, nil
}
