package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errNoIndexes = errors.New("mongo: database is nil")

// Collections names the collections the adapters use.
type Collections struct {
	Submissions string
	Restaurants string
	Reviews     string
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// submissionId index is what makes restaurant publication idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, names Collections) error {
	if db == nil {
		return errNoIndexes
	}
	specs := map[string][]mongo.IndexModel{
		names.Restaurants: {
			{Keys: bson.D{{Key: "submissionId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_submission")},
		},
		names.Submissions: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}}, Options: options.Index().SetName("status_updated")},
			{Keys: bson.D{{Key: "ownerUid", Value: 1}}, Options: options.Index().SetName("owner")},
		},
		names.Reviews: {
			{Keys: bson.D{{Key: "restaurantId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("restaurant_created")},
		},
	}
	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
