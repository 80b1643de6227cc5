package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/sngm3741/halal-food-club/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/halal-food-club/api/internal/public/domain"
)

// AdminRestaurantRepository is the lifecycle-facing restaurant repository.
type AdminRestaurantRepository struct {
	collection *mongo.Collection
}

func NewAdminRestaurantRepository(db *mongo.Database, collectionName string) *AdminRestaurantRepository {
	return &AdminRestaurantRepository{collection: db.Collection(collectionName)}
}

// Create inserts the restaurant. The unique submissionId index turns a second
// publication of the same submission into ErrAlreadyPublished.
func (r *AdminRestaurantRepository) Create(ctx context.Context, restaurant *admindomain.Restaurant) error {
	doc := toRestaurantDocument(restaurant)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: submission %s", admindomain.ErrAlreadyPublished, restaurant.SubmissionID)
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	restaurant.ID = doc.ID.Hex()
	return nil
}

func (r *AdminRestaurantRepository) FindByID(ctx context.Context, id string) (*admindomain.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: restaurant %s", admindomain.ErrNotFound, id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID}, "restaurant "+id)
}

func (r *AdminRestaurantRepository) FindBySubmissionID(ctx context.Context, submissionID string) (*admindomain.Restaurant, error) {
	return r.findOne(ctx, bson.M{"submissionId": submissionID}, "restaurant for submission "+submissionID)
}

func (r *AdminRestaurantRepository) findOne(ctx context.Context, filter bson.M, what string) (*admindomain.Restaurant, error) {
	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", admindomain.ErrNotFound, what)
		}
		return nil, err
	}
	restaurant := mapAdminRestaurant(doc)
	return &restaurant, nil
}

// PublicRestaurantRepository serves the discovery read model.
type PublicRestaurantRepository struct {
	collection *mongo.Collection
}

func NewPublicRestaurantRepository(db *mongo.Database, collectionName string) *PublicRestaurantRepository {
	return &PublicRestaurantRepository{collection: db.Collection(collectionName)}
}

// FindAll returns every published restaurant.
func (r *PublicRestaurantRepository) FindAll(ctx context.Context) ([]publicdomain.Restaurant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := make([]publicdomain.Restaurant, 0)
	for cursor.Next(ctx) {
		var doc RestaurantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, mapPublicRestaurant(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *PublicRestaurantRepository) FindByID(ctx context.Context, id string) (*publicdomain.Restaurant, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, id)
	}
	var doc RestaurantDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: restaurant %s", publicdomain.ErrNotFound, id)
		}
		return nil, err
	}
	restaurant := mapPublicRestaurant(doc)
	return &restaurant, nil
}
