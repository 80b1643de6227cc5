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
)

// SubmissionRepository implements the admin SubmissionRepository port using MongoDB.
type SubmissionRepository struct {
	collection *mongo.Collection
}

// NewSubmissionRepository binds the repository to a collection.
func NewSubmissionRepository(db *mongo.Database, collectionName string) *SubmissionRepository {
	return &SubmissionRepository{collection: db.Collection(collectionName)}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *admindomain.Submission) error {
	doc := toSubmissionDocument(submission)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	submission.ID = doc.ID.Hex()
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*admindomain.Submission, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	var doc SubmissionDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
		}
		return nil, err
	}
	submission := mapSubmissionDocument(doc)
	return &submission, nil
}

// FindByStatus returns submissions oldest first.
func (r *SubmissionRepository) FindByStatus(ctx context.Context, status admindomain.SubmissionStatus) ([]admindomain.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": string(status)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]admindomain.Submission, 0)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, mapSubmissionDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

// Update applies patch in a single guarded UpdateOne. The filter carries the
// expected (status, paid) pair so a concurrent writer causes ErrStateConflict.
func (r *SubmissionRepository) Update(ctx context.Context, id string, expected admindomain.SubmissionState, patch admindomain.SubmissionPatch) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}

	set := bson.M{}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Paid != nil {
		set["paid"] = *patch.Paid
	}
	if patch.PaymentReference != nil {
		set["paymentReference"] = *patch.PaymentReference
	}
	if patch.RestaurantID != nil {
		set["restaurantId"] = *patch.RestaurantID
	}
	if patch.RejectReason != nil {
		set["rejectReason"] = *patch.RejectReason
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if !patch.UpdatedAt.IsZero() {
		update["$max"] = bson.M{"updatedAt": patch.UpdatedAt}
	}

	filter := bson.M{
		"_id":    objectID,
		"status": string(expected.Status),
		"paid":   expected.Paid,
	}
	if len(update) == 0 {
		count, err := r.collection.CountDocuments(ctx, filter)
		if err != nil {
			return err
		}
		if count == 0 {
			return r.missOrConflict(ctx, objectID, id, expected)
		}
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update submission %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return r.missOrConflict(ctx, objectID, id, expected)
	}
	return nil
}

func (r *SubmissionRepository) missOrConflict(ctx context.Context, objectID primitive.ObjectID, id string, expected admindomain.SubmissionState) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: submission %s no longer %s", admindomain.ErrStateConflict, id, expected)
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("delete submission %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: submission %s", admindomain.ErrNotFound, id)
	}
	return nil
}
