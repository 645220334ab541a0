package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishRepository struct {
	collection *mongo.Collection
}

func NewWishRepository(db *mongo.Database) *WishRepository {
	return &WishRepository{collection: db.Collection("wishes")}
}

func (r *WishRepository) CreateWish(ctx context.Context, wish *models.Wish) (*models.Wish, error) {
	wish.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, wish)
	if err != nil {
		return nil, fmt.Errorf("failed to create wish: %v", err)
	}

	wish.ID = result.InsertedID.(primitive.ObjectID)
	return wish, nil
}

func (r *WishRepository) GetWishBySlug(ctx context.Context, slug string) (*models.Wish, error) {
	var wish models.Wish
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&wish)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wish: %v", err)
	}
	return &wish, nil
}

func (r *WishRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, fmt.Errorf("failed to count slugs: %v", err)
	}
	return count > 0, nil
}

// IncrementViews is a single conditional update-and-return: the filter
// excludes deleted wishes and wishes already at their view ceiling, so of
// two concurrent requests for the last remaining view only one gets a
// document back. No lock is held across unrelated wishes.
func (r *WishRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.Wish, error) {
	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
		"$or": []bson.M{
			{"max_views": bson.M{"$exists": false}},
			{"max_views": nil},
			{"$expr": bson.M{"$lt": bson.A{"$current_views", "$max_views"}}},
		},
	}
	update := bson.M{"$inc": bson.M{"current_views": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Wish
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		logrus.WithError(err).Error("Failed to increment wish views")
		return nil, fmt.Errorf("failed to increment views: %v", err)
	}

	return &updated, nil
}

// SoftDelete only matches wishes not yet deleted, so repeating it never
// resets is_deleted or moves deleted_at.
func (r *WishRepository) SoftDelete(ctx context.Context, id primitive.ObjectID, now time.Time) error {
	filter := bson.M{"_id": id, "is_deleted": false}
	update := bson.M{"$set": bson.M{"is_deleted": true, "deleted_at": now}}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to soft delete wish: %v", err)
	}
	return nil
}

func (r *WishRepository) DeleteWish(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete wish: %v", err)
	}
	return nil
}

func (r *WishRepository) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.Wish, error) {
	filter := bson.M{"is_deleted": true, "deleted_at": bson.M{"$lt": cutoff}}
	return r.findWishes(ctx, filter)
}

func (r *WishRepository) FindSilentlyExpired(ctx context.Context, now time.Time) ([]models.Wish, error) {
	filter := bson.M{"is_deleted": false, "expires_at": bson.M{"$lt": now}}
	return r.findWishes(ctx, filter)
}

func (r *WishRepository) findWishes(ctx context.Context, filter bson.M) ([]models.Wish, error) {
	var wishes []models.Wish
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find wishes: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var wish models.Wish
		if err := cursor.Decode(&wish); err != nil {
			return nil, err
		}
		wishes = append(wishes, wish)
	}

	return wishes, nil
}
