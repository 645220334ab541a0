package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB connects to MongoDB and ensures the indexes the service relies on.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.DBName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	// Slug uniqueness is enforced by the store, not just the generator.
	_, err := db.Collection("wishes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create slug index: %v", err)
	}

	_, err = db.Collection("wish_images").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "wish_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create wish_id index: %v", err)
	}

	return nil
}
