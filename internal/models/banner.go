package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Banner associates a promotional image with exactly one category.
type Banner struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Category  string             `json:"category" bson:"category" binding:"required"`
	BannerURL string             `json:"banner_url" bson:"banner_url" binding:"required"`
}
