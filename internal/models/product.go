package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog product stored in MongoDB
type Product struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name"`
	Description       string             `json:"description,omitempty" bson:"description,omitempty"`
	Price             float64            `json:"price" bson:"price"`
	Stock             int                `json:"stock" bson:"stock"`
	LowStockThreshold int                `json:"low_stock_threshold" bson:"low_stock_threshold"`
	ImageURLs         []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	CategoryID        string             `json:"category_id,omitempty" bson:"category_id,omitempty"`
	BrandID           string             `json:"brand_id,omitempty" bson:"brand_id,omitempty"`
	Active            bool               `json:"active" bson:"active"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateProductRequest defines the request body for creating a new product
type CreateProductRequest struct {
	Name              string   `json:"name" validate:"required,min=1,max=120"`
	Description       string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price             float64  `json:"price" validate:"required,gt=0"`
	Stock             int      `json:"stock" validate:"min=0"`
	LowStockThreshold int      `json:"low_stock_threshold,omitempty" validate:"min=0"`
	ImageURLs         []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	CategoryID        string   `json:"category_id,omitempty"`
	BrandID           string   `json:"brand_id,omitempty"`
}

// UpdateProductRequest defines the request body for updating an existing product
type UpdateProductRequest struct {
	Name              string   `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description       string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock             *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	ImageURLs         []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	CategoryID        string   `json:"category_id,omitempty"`
	BrandID           string   `json:"brand_id,omitempty"`
}
