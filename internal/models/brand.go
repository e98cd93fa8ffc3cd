package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand represents a product brand stored in MongoDB
type Brand struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	LogoURL   string             `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// BrandRequest defines the request body for creating or updating a brand
type BrandRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=80"`
	LogoURL string `json:"logo_url,omitempty" validate:"omitempty,url"`
}
