package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category represents a catalog category stored in MongoDB
type Category struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	ImageURL  string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CategoryRequest defines the request body for creating or updating a category
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=80"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
