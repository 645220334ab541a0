package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ImageRepository struct {
	collection *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{collection: db.Collection("wish_images")}
}

func (r *ImageRepository) CreateImage(ctx context.Context, image *models.WishImage) (*models.WishImage, error) {
	image.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to create image record: %v", err)
	}

	image.ID = result.InsertedID.(primitive.ObjectID)
	return image, nil
}

func (r *ImageRepository) GetImage(ctx context.Context, id, wishID primitive.ObjectID) (*models.WishImage, error) {
	var image models.WishImage
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "wish_id": wishID}).Decode(&image)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %v", err)
	}
	return &image, nil
}

func (r *ImageRepository) ListImagesByWish(ctx context.Context, wishID primitive.ObjectID) ([]models.WishImage, error) {
	var images []models.WishImage
	cursor, err := r.collection.Find(ctx, bson.M{"wish_id": wishID})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var image models.WishImage
		if err := cursor.Decode(&image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	return images, nil
}

func (r *ImageRepository) CountImagesByWish(ctx context.Context, wishID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"wish_id": wishID})
	if err != nil {
		return 0, fmt.Errorf("failed to count images: %v", err)
	}
	return count, nil
}

func (r *ImageRepository) DeleteImage(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete image record: %v", err)
	}
	return nil
}

func (r *ImageRepository) DeleteImagesByWish(ctx context.Context, wishID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"wish_id": wishID})
	if err != nil {
		return fmt.Errorf("failed to delete image records: %v", err)
	}
	return nil
}
