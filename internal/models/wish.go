package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wish is a short-lived shareable message addressed by its slug.
// It expires by time (ExpiresAt) or view count (MaxViews) and is
// soft-deleted on expiry; the cleanup sweeper hard-deletes it later.
type Wish struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug         string             `bson:"slug" json:"slug"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	Message      string             `bson:"message" json:"message"`
	Theme        string             `bson:"theme,omitempty" json:"theme,omitempty"`
	ExpiresAt    *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	MaxViews     *int               `bson:"max_views,omitempty" json:"max_views,omitempty"`
	CurrentViews int                `bson:"current_views" json:"current_views"`
	IsDeleted    bool               `bson:"is_deleted" json:"-"`
	DeletedAt    *time.Time         `bson:"deleted_at,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// WishImage is a normalized image file owned by exactly one wish.
// Path is always relative to the storage root.
type WishImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WishID    primitive.ObjectID `bson:"wish_id" json:"wish_id"`
	Path      string             `bson:"path" json:"path"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
